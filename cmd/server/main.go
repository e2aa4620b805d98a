// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package main is the entry point for the Reelrank server.
//
// Reelrank is a self-hosted movie recommendation service. It loads a movie
// catalog and a ratings table from CSV at startup, builds a hybrid
// recommendation engine (TF-IDF content similarity plus non-negative matrix
// factorization over the rating matrix), and serves recommendations over a
// REST API.
//
// # Startup order
//
//  1. Configuration: Koanf v2 layered sources (defaults, config.yaml,
//     environment variables)
//  2. Logging: global zerolog logger per the logging config
//  3. Dataset: movies.csv and ratings.csv loaded and validated
//  4. Engine: similarity index and rating factorization built in memory
//  5. Supervisor: Suture tree running the HTTP server and the dataset
//     reload watcher
//
// # Signal handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops accepting
// connections and waits for in-flight requests up to the configured
// shutdown timeout. SIGHUP triggers a dataset reload: the CSVs are re-read
// and a fresh engine is swapped in atomically; requests in flight keep the
// engine they started with, and a failed reload leaves the old engine
// serving.
//
// # Example usage
//
//	export MOVIES_PATH=/data/movies.csv
//	export RATINGS_PATH=/data/ratings.csv
//	export HTTP_PORT=8080
//	./reelrank
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/reelrank/reelrank/internal/api"
	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/logging"
	"github.com/reelrank/reelrank/internal/recommend"
	"github.com/reelrank/reelrank/internal/supervisor"
	"github.com/reelrank/reelrank/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("movies", cfg.Dataset.MoviesPath).
		Str("ratings", cfg.Dataset.RatingsPath).
		Msg("Starting Reelrank")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initial engine build. Startup fails if the dataset is unusable;
	// later reloads keep the old engine on failure instead.
	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	var current atomic.Pointer[recommend.Engine]
	current.Store(engine)

	handler := api.NewHandler(current.Load, logging.Logger())
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddEngineService(services.NewReloadService(newEngineReloader(cfg, &current)))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
	return nil
}
