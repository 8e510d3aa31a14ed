package db

import (
	"os"
	"strconv"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LoadPostgresConfig reads connection settings from the environment, with
// local-development defaults for host, port and ssl mode.
func LoadPostgresConfig() (PostgresConfig, error) {
	cfg := PostgresConfig{
		Host:    "localhost",
		Port:    5432,
		SSLMode: "disable",
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port, err := strconv.Atoi(os.Getenv("DB_PORT")); err == nil && port > 0 {
		cfg.Port = port
	}
	if mode := os.Getenv("DB_SSLMODE"); mode != "" {
		cfg.SSLMode = mode
	}
	cfg.User = os.Getenv("DB_USER")
	cfg.Password = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	return cfg, nil
}
