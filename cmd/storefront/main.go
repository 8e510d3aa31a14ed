package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/saydulla27/foodapp-frontend/internal/api"
	"github.com/saydulla27/foodapp-frontend/internal/api/middleware"
	"github.com/saydulla27/foodapp-frontend/internal/backend"
	"github.com/saydulla27/foodapp-frontend/internal/cart"
	"github.com/saydulla27/foodapp-frontend/internal/config"
	"github.com/saydulla27/foodapp-frontend/internal/events"
	"github.com/saydulla27/foodapp-frontend/internal/repository"
	"github.com/saydulla27/foodapp-frontend/pkg/db"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// pick the cart store backend
	var store cart.Store
	switch cfg.CartStore {
	case config.StorePostgres:
		pgCfg, _ := db.LoadPostgresConfig()
		conn, err := db.NewPostgresConnection(pgCfg)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer conn.Close()
		repo := repository.NewCartRepo(conn)
		if err := repo.Init(context.Background()); err != nil {
			log.Fatalf("db init: %v", err)
		}
		store = repo
	case config.StoreRedis:
		rs, err := cart.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer rs.Close()
		store = rs
	default:
		store = cart.NewMemoryStore()
	}

	tokens := backend.NewTokenStore()
	if cfg.AdminToken != "" {
		tokens.Set(cfg.AdminToken)
	}
	client := backend.New(cfg.BackendBaseURL, tokens)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("rabbitmq connect: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	handler := api.NewRouter(store, client, publisher)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Mount("/", handler)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("starting storefront on %s (cart store: %s)", cfg.ListenAddr, cfg.CartStore)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %s\n", err)
	}

	<-idleConnsClosed
	log.Println("server stopped")
}
