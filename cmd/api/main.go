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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/domain-tracker/internal/adapter/hugedomains"
	"github.com/user/domain-tracker/internal/adapter/postgres"
	redis_adapter "github.com/user/domain-tracker/internal/adapter/redis"
	"github.com/user/domain-tracker/internal/delivery/http/handler"
	"github.com/user/domain-tracker/internal/delivery/http/router"
	"github.com/user/domain-tracker/internal/usecase"
	"github.com/user/domain-tracker/pkg/config"
	"github.com/user/domain-tracker/pkg/logger"
	"github.com/user/domain-tracker/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Database Connections ---
	ctx := context.Background()

	// PostgreSQL
	pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	dbpool, err := pgxpool.New(ctx, pgConnString)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	if err := postgres.InitSchema(ctx, dbpool); err != nil {
		slog.Error("Unable to initialize schema", "error", err)
		os.Exit(1)
	}
	slog.Info("PostgreSQL connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// --- Repositories ---
	snapshotRepo := postgres.NewSnapshotRepo(dbpool)
	rowRepo := postgres.NewRowRepo(dbpool)
	seenRepo := redis_adapter.NewSeenDomainRepo(rdb)
	extractor := hugedomains.NewExtractor(hugedomains.Config{
		MaxConcurrentShards: cfg.MaxConcurrentShards,
		MaxDomainLength:     cfg.MaxDomainLength,
		PageLoadTimeout:     cfg.PageLoadTimeout,
		FetchRetries:        cfg.FetchRetries,
		FetchRetryPause:     cfg.FetchRetryPause,
	})

	// --- Use Cases ---
	registry := usecase.NewSnapshotRegistry(snapshotRepo)
	rowQuery := usecase.NewRowQuery(snapshotRepo, rowRepo)
	diff := usecase.NewDiff(snapshotRepo, rowRepo)
	history := usecase.NewHistory(snapshotRepo, rowRepo)
	session := usecase.NewSessionController(extractor, seenRepo, snapshotRepo)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(registry, rowQuery, diff, history, session)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
			os.Exit(1)
		}
	}()

	// A running extraction session is stopped (and committed) before the
	// process exits, so an operator shutdown never loses a session.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := session.Stop(shutdownCtx); err != nil && !errors.Is(err, usecase.ErrNotRunning) {
		slog.Warn("Failed to stop extraction session cleanly", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
