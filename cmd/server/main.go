// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package main is the entry point for the Cinelens server.
//
// Cinelens is a self-hosted movie recommendation service over
// MovieLens-format datasets. It blends collaborative filtering
// (truncated SVD over the rating matrix) with content-based genre
// similarity (TF-IDF vectors) and exposes the results through a REST
// API with catalog analytics.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from environment variables and
//     config files (Koanf v2)
//  2. Logging: zerolog with configured level and format
//  3. Result cache: bounded LRU with single-flight computation
//  4. Engine: catalog loader plus collaborative and content model
//     factories
//  5. Initial catalog load: parse the dataset and build both models
//  6. HTTP server: Chi router with the REST API and Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (MOVIE_FILE, HTTP_PORT, SVD_FACTORS, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting new connections and waits for in-flight requests up to the
// configured shutdown timeout.
//
// # Example Usage
//
// Serve the MovieLens 100K dataset:
//
//	export MOVIE_FILE=/data/ml-100k/u.item
//	export RATING_FILE=/data/ml-100k/u.data
//	./cinelens
//
// Tune the models:
//
//	export SVD_FACTORS=50
//	export SVD_ITERATIONS=40
//	export HYBRID_DEFAULT_WEIGHT=0.7
//	./cinelens
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cinelens/internal/api"
	"github.com/tomtom215/cinelens/internal/config"
	"github.com/tomtom215/cinelens/internal/logging"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("movie_file", cfg.Data.MovieFile).
		Str("rating_file", cfg.Data.RatingFile).
		Msg("Starting Cinelens")

	engine, err := buildEngine(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	// Context canceled on shutdown signal
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the catalog and build both models before accepting traffic.
	if err := engine.Reload(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Initial catalog load failed")
	}

	router := api.NewRouter(engine, cfg.API)
	server := &http.Server{
		Addr:         cfg.Server.ListenAddr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Graceful shutdown failed")
		}
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
