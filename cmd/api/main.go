// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Baking Atlas HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and an optional .env).
//  3. Open the Entity Store (SQLite or PostgreSQL).
//  4. Run database migrations (idempotent).
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arjuju98/the-baking-atlas/internal/api"
	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/core/country"
	"github.com/arjuju98/the-baking-atlas/internal/core/story"
	"github.com/arjuju98/the-baking-atlas/internal/core/tag"
	"github.com/arjuju98/the-baking-atlas/internal/platform/config"
	"github.com/arjuju98/the-baking-atlas/internal/platform/constants"
	"github.com/arjuju98/the-baking-atlas/internal/platform/metrics"
	"github.com/arjuju98/the-baking-atlas/internal/platform/migration"
	pgstore "github.com/arjuju98/the-baking-atlas/internal/platform/postgres"
	litestore "github.com/arjuju98/the-baking-atlas/internal/platform/sqlite"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("database_driver", cfg.DatabaseDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3 & 4. Entity Store and Migrations ────────────────────────────────
	store := openStore(startupCtx, cfg, log)
	defer func() {
		log.Info("closing_store", slog.String("driver", cfg.DatabaseDriver))
		if cerr := store.Close(); cerr != nil {
			log.Error("store_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StoreName:  cfg.DatabaseDriver,
		CheckStore: store.Ping,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.New(),
		Country:   country.NewHandler(country.NewService(store, log)),
		Story:     story.NewHandler(story.NewService(store, log)),
		Tag:       tag.NewHandler(tag.NewService(store, log)),
	}

	// Background work (the rate limiter janitor) stops with this context.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger every component shares.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// openStore connects the configured backend and brings its schema up to date.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) catalog.Store {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		if cfg.RunMigrations {
			must(log, migration.RunUp(cfg.DatabaseDriver, cfg.DatabaseURL, log), "run migrations")
		}
		store, err := pgstore.Open(ctx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		return store

	default:
		// Opening first creates the data directory the migrator needs.
		store, err := litestore.Open(ctx, cfg.SQLitePath, log)
		must(log, err, "open sqlite database")
		if cfg.RunMigrations {
			must(log, migration.RunUp(cfg.DatabaseDriver, cfg.SQLitePath, log), "run migrations")
		}
		return store
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly (never panic).
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
