package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cart store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	ListenAddr     string `yaml:"listen_addr"`
	BackendBaseURL string `yaml:"backend_base_url"`
	CartStore      string `yaml:"cart_store"`
	RedisAddr      string `yaml:"redis_addr"`
	AMQPURL        string `yaml:"amqp_url"`
	AdminToken     string `yaml:"admin_token"`
}

// Load reads an optional YAML file and applies environment overrides on
// top. Postgres connection settings stay env-only (see pkg/db).
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr: ":8080",
		CartStore:  StoreMemory,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	overrideEnv(&cfg.ListenAddr, "STOREFRONT_LISTEN_ADDR")
	overrideEnv(&cfg.BackendBaseURL, "BACKEND_BASE_URL")
	overrideEnv(&cfg.CartStore, "CART_STORE")
	overrideEnv(&cfg.RedisAddr, "REDIS_ADDR")
	overrideEnv(&cfg.AMQPURL, "AMQP_URL")
	overrideEnv(&cfg.AdminToken, "ADMIN_API_TOKEN")

	if cfg.BackendBaseURL == "" {
		return Config{}, fmt.Errorf("backend_base_url is required")
	}
	switch cfg.CartStore {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return Config{}, fmt.Errorf("unknown cart_store %q", cfg.CartStore)
	}
	if cfg.CartStore == StoreRedis && cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("redis_addr is required for the redis cart store")
	}
	return cfg, nil
}

func overrideEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
