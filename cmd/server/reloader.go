// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/logging"
	"github.com/reelrank/reelrank/internal/recommend"
)

// engineReloader rebuilds the engine from the on-disk dataset when the
// process receives SIGHUP. Swaps are atomic: readers resolve the engine
// through the shared pointer per request, so a request in flight keeps the
// engine it started with. When a rebuild fails the old engine stays in
// place.
type engineReloader struct {
	cfg     *config.Config
	current *atomic.Pointer[recommend.Engine]
	signals chan os.Signal

	// build is swappable for tests; it defaults to buildEngine.
	build func(ctx context.Context, cfg *config.Config) (*recommend.Engine, error)
}

func newEngineReloader(cfg *config.Config, current *atomic.Pointer[recommend.Engine]) *engineReloader {
	return &engineReloader{
		cfg:     cfg,
		current: current,
		signals: make(chan os.Signal, 1),
		build:   buildEngine,
	}
}

// Run implements the supervisor's EngineReloader contract. It blocks
// waiting for SIGHUP until the context is canceled.
func (r *engineReloader) Run(ctx context.Context) error {
	signal.Notify(r.signals, syscall.SIGHUP)
	defer signal.Stop(r.signals)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.signals:
			r.reload(ctx)
		}
	}
}

func (r *engineReloader) reload(ctx context.Context) {
	started := time.Now()
	logging.Info().Msg("Dataset reload triggered")

	engine, err := r.build(ctx, r.cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Dataset reload failed, keeping current engine")
		return
	}

	r.current.Store(engine)
	logging.Info().Dur("elapsed", time.Since(started)).Msg("Dataset reload complete")
}
