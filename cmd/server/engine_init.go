// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/reelrank/reelrank/internal/catalog"
	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/dataset"
	"github.com/reelrank/reelrank/internal/logging"
	"github.com/reelrank/reelrank/internal/metrics"
	"github.com/reelrank/reelrank/internal/ratings"
	"github.com/reelrank/reelrank/internal/recommend"
	"github.com/reelrank/reelrank/internal/recommend/algorithms"
	"github.com/reelrank/reelrank/internal/recommend/storage"
)

// buildEngine loads the dataset from disk and constructs a recommendation
// engine. It is used both for the initial build at startup and for SIGHUP
// reloads; nothing here mutates shared state, so a failed build leaves the
// process untouched.
func buildEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
	started := time.Now()

	movies, err := dataset.LoadMovies(cfg.Dataset.MoviesPath)
	if err != nil {
		return nil, fmt.Errorf("loading movies: %w", err)
	}
	rows, err := dataset.LoadRatings(cfg.Dataset.RatingsPath)
	if err != nil {
		return nil, fmt.Errorf("loading ratings: %w", err)
	}

	store, err := catalog.New(movies)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	matrix, err := ratings.Build(rows)
	if err != nil {
		return nil, fmt.Errorf("building rating matrix: %w", err)
	}

	engineCfg := &recommend.Config{
		Rank:                cfg.Engine.Rank,
		Iterations:          cfg.Engine.Iterations,
		Seed:                cfg.Engine.Seed,
		CFWeight:            cfg.Engine.CFWeight,
		CBWeight:            cfg.Engine.CBWeight,
		DefaultLimit:        cfg.Engine.DefaultLimit,
		MaxLimit:            cfg.Engine.MaxLimit,
		CandidateMultiplier: cfg.Engine.CandidateMultiplier,
	}

	engine, err := buildOrRestore(ctx, cfg, engineCfg, store, matrix)
	metrics.RecordModelBuild("engine", time.Since(started), err)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	metrics.SetDatasetGauges(store.Len(), matrix.NumUsers(), len(rows))

	logging.Info().
		Int("movies", store.Len()).
		Int("users", matrix.NumUsers()).
		Int("ratings", len(rows)).
		Dur("elapsed", time.Since(started)).
		Msg("Recommendation engine built")

	return engine, nil
}

// modelName is the key the fitted factors are stored under in ModelDir.
const modelName = "nmf"

// buildOrRestore returns an engine restored from cached model factors when
// ModelDir is configured and holds factors matching the current dataset
// fingerprint, and trains from scratch otherwise. Cache failures are never
// fatal: a miss, mismatch, or corrupt file just means training.
func buildOrRestore(ctx context.Context, cfg *config.Config, engineCfg *recommend.Config,
	store *catalog.Store, matrix *ratings.Matrix) (*recommend.Engine, error) {
	if cfg.Engine.ModelDir == "" {
		return recommend.New(ctx, engineCfg, store, matrix, logging.Logger())
	}

	modelStore, err := storage.NewStore(cfg.Engine.ModelDir)
	if err != nil {
		logging.Warn().Err(err).Str("dir", cfg.Engine.ModelDir).
			Msg("Model cache unavailable, training from scratch")
		return recommend.New(ctx, engineCfg, store, matrix, logging.Logger())
	}

	fingerprint, err := datasetFingerprint(cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("Dataset fingerprint failed, training from scratch")
		return recommend.New(ctx, engineCfg, store, matrix, logging.Logger())
	}

	var snap algorithms.FactorSnapshot
	if _, err := modelStore.Load(ctx, modelName, fingerprint, &snap); err == nil {
		engine, restoreErr := recommend.NewFromSnapshot(engineCfg, store, matrix, snap, logging.Logger())
		if restoreErr == nil {
			logging.Info().Str("fingerprint", fingerprint[:12]).
				Msg("Restored model factors from cache")
			return engine, nil
		}
		logging.Warn().Err(restoreErr).Msg("Cached model factors unusable, training from scratch")
	} else if !errors.Is(err, os.ErrNotExist) {
		logging.Debug().Err(err).Msg("Model cache miss")
	}

	engine, err := recommend.New(ctx, engineCfg, store, matrix, logging.Logger())
	if err != nil {
		return nil, err
	}
	if saveErr := modelStore.Save(ctx, modelName, fingerprint, engine.FactorSnapshot()); saveErr != nil {
		logging.Warn().Err(saveErr).Msg("Failed to cache model factors")
	}
	return engine, nil
}

// datasetFingerprint hashes the dataset files together with the training
// parameters. Any change to either invalidates cached model factors.
func datasetFingerprint(cfg *config.Config) (string, error) {
	h := sha256.New()
	for _, path := range []string{cfg.Dataset.MoviesPath, cfg.Dataset.RatingsPath} {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("fingerprinting %s: %w", path, err)
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("fingerprinting %s: %w", path, err)
		}
	}
	fmt.Fprintf(h, "rank=%d iterations=%d seed=%d",
		cfg.Engine.Rank, cfg.Engine.Iterations, cfg.Engine.Seed)
	return hex.EncodeToString(h.Sum(nil)), nil
}
