package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"record-service/internal/api"
	"record-service/internal/cache"
	"record-service/internal/catalog"
	"record-service/internal/config"
	"record-service/internal/resilience"
	"record-service/internal/storage/sqlite"
)

func main() {
	cfg := config.NewCatalogConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("Catalog service stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.CatalogConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting Catalog Service", "port", cfg.HTTPPort, "db", cfg.DBPath)

	store, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	var (
		opts    []catalog.Option
		limiter api.RateLimiter
	)
	if cfg.RedisAddr != "" {
		var redisClient *cache.Client
		err := resilience.Retry(ctx, 3, time.Second, func() error {
			var err error
			redisClient, err = cache.NewClient(ctx, cfg.RedisAddr, cache.WithRateLimit(cfg.RateLimit, cfg.RateWindow))
			return err
		})
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		slog.Info("Connected to Redis", "addr", cfg.RedisAddr)

		opts = append(opts, catalog.WithCache(redisClient, cfg.CacheTTL))
		if cfg.RateLimit > 0 {
			limiter = redisClient
		}
	}

	svc := catalog.NewService(store, opts...)
	handler := api.NewCatalogServer(api.NewCatalogHandler(svc), limiter)

	return serve(ctx, ":"+cfg.HTTPPort, handler, cfg.ShutdownTimeout)
}

func serve(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
