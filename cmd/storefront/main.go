package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Pedr0sc/techstore/internal/address"
	"github.com/Pedr0sc/techstore/internal/api"
	"github.com/Pedr0sc/techstore/internal/cart"
	"github.com/Pedr0sc/techstore/internal/catalog"
	"github.com/Pedr0sc/techstore/internal/snapshot"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	RedisPassword   string
	CatalogDBPath   string
	MigrationsDir   string
	ViaCEPBaseURL   string
	RequestTimeout  time.Duration
	HandlerTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogDBPath:   getEnv("CATALOG_DB", ""),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "migrations"),
		ViaCEPBaseURL:   getEnv("VIACEP_BASE_URL", "https://viacep.com.br/ws"),
		RequestTimeout:  30 * time.Second,
		HandlerTimeout:  10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Catalog: sqlite-backed when a DB path is configured, otherwise the
	// built-in product list
	var cat catalog.Catalog
	if cfg.CatalogDBPath != "" {
		repo, err := catalog.NewRepository(cfg.CatalogDBPath)
		if err != nil {
			logger.Fatal("failed to open catalog database", zap.Error(err))
		}
		defer repo.Close()

		if err := repo.RunMigrations(cfg.MigrationsDir); err != nil {
			logger.Fatal("failed to run catalog migrations", zap.Error(err))
		}
		logger.Info("catalog backed by sqlite", zap.String("path", cfg.CatalogDBPath))
		cat = repo
	} else {
		cat = catalog.NewMemory(catalog.DefaultProducts())
		logger.Info("catalog backed by in-memory product list")
	}

	// Snapshot store: redis when configured, otherwise in-memory (snapshots
	// then survive page navigation but not process restarts)
	var store snapshot.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		logger.Info("snapshot store backed by redis", zap.String("addr", cfg.RedisAddr))
		store = snapshot.NewRedisStore(redisClient)
	} else {
		store = snapshot.NewMemoryStore()
		logger.Info("snapshot store backed by memory")
	}

	lookup := address.NewClient(cfg.ViaCEPBaseURL, cfg.HandlerTimeout, logger)
	carts := cart.NewService(cat, logger)

	products := api.NewProductHandler(cat, cfg.HandlerTimeout)
	cartHandler := api.NewCartHandler(carts, cfg.HandlerTimeout)
	checkouts := api.NewCheckoutHandler(carts, cat, store, lookup, logger, cfg.HandlerTimeout)

	router := api.NewRouter(products, cartHandler, checkouts, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
