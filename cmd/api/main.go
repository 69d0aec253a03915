// Command api is the TuS Cricket stats API server.
//
// Usage:
//
//	clubstats-api
//	API_PORT=8080 clubstats-api

// @title TuS Cricket Stats API
// @version 1.0.0
// @description Club stats ingestion and leaderboard API: scrapes CricClubs league pages, reconciles name aliases, and serves per-season player totals.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name TuS Cricket
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/tuscricket/clubstats/internal/api"
	"github.com/tuscricket/clubstats/internal/cache"
	"github.com/tuscricket/clubstats/internal/config"
	"github.com/tuscricket/clubstats/internal/cricclubs"
	"github.com/tuscricket/clubstats/internal/db"
	"github.com/tuscricket/clubstats/internal/ingest"
	"github.com/tuscricket/clubstats/internal/schedule"
	"github.com/tuscricket/clubstats/internal/store"

	_ "github.com/tuscricket/clubstats/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Wire the sync pipeline
	st := store.New(pool.Pool)
	source := cricclubs.NewClient(cfg, logger)
	orch := ingest.New(st, source, cfg.SyncToken, logger)

	// Daily unattended sync
	go schedule.Start(ctx, orch, schedule.Config{
		Enabled: cfg.ScheduleEnabled,
		HourUTC: cfg.ScheduleHourUTC,
	}, logger)

	// Create router
	router := api.NewRouter(pool.Pool, appCache, cfg, orch, st)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // a full scrape runs inside one request
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting TuS Cricket Stats API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
