package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/cache"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/catalog"
	h "github.com/rickardsteinwig/ucp-acp-integration-kit/internal/http"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/publisher"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/service"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/store"
)

type Config struct {
	HTTPPort        string
	PublicBaseURL   string
	CatalogDBPath   string
	MigrationsPath  string
	RedisAddr       string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/catalog/migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("Checkout server started")

	cfg := loadConfig()

	// Catalog: sqlite when a DB path is configured, otherwise in-memory samples
	var cat catalog.Catalog
	if cfg.CatalogDBPath != "" {
		repo, err := catalog.NewRepository(cfg.CatalogDBPath)
		if err != nil {
			log.Fatalf("Failed to open catalog database: %v", err)
		}
		if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
		cat = repo
	} else {
		cat = catalog.NewMemoryCatalog(catalog.SampleProducts())
	}
	defer cat.Close()

	st := store.NewMemoryStore()
	defer st.Close()

	// Session cache is optional
	var sessionCache cache.SessionCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		sessionCache = cache.NewRedisCache(client)
		log.Printf("Session cache enabled, redis at %s", cfg.RedisAddr)
	}

	checkout := service.NewCheckoutService(st, cat, sessionCache, cfg.PublicBaseURL)

	// Outbox poller publishes completed-order events to Kafka
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	if len(cfg.KafkaBrokers) > 0 {
		poller := publisher.NewOutboxPoller(st, cfg.KafkaBrokers...)
		defer poller.Close()
		go poller.Run(pollerCtx)
		log.Printf("Outbox poller started, brokers %v", cfg.KafkaBrokers)
	}

	router := h.NewRouter(checkout, cfg.PublicBaseURL, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "checkout-server"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Checkout server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
