// Package main is the entry point for the ProductPulse HTTP service.
// It turns marketplace listings for a product into a BUY / WAIT / DONT_BUY
// recommendation backed by a structured market analysis.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/productpulse/internal/config"
	"github.com/aristath/productpulse/internal/di"
	"github.com/aristath/productpulse/internal/server"
	"github.com/aristath/productpulse/pkg/logger"
)

// main orchestrates startup:
// 1. Loads configuration from environment variables (.env supported)
// 2. Initializes logging
// 3. Wires databases, clients and services via the DI container
// 4. Starts the maintenance scheduler and the HTTP server
// 5. Waits for a shutdown signal and shuts down gracefully
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	if version := os.Getenv("VERSION"); version != "" {
		server.Version = version
	}
	log.Info().Str("version", server.Version).Msg("Starting ProductPulse")

	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer container.Close()

	// Expired cache rows left over from the last run are removed right away
	if err := container.Scheduler.RunNow(jobs.CacheCleanup); err != nil {
		log.Warn().Err(err).Msg("Initial cache cleanup failed")
	}
	container.Scheduler.Start()

	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		DevMode:   cfg.DevMode,
		Container: container,
		Jobs:      jobs,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	container.Scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
