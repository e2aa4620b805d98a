// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package services

import (
	"context"
)

// EngineReloader matches the dataset reload watcher's Run method.
//
// The small interface keeps this package free of the reload
// implementation; anything with a context-bound Run loop satisfies it.
type EngineReloader interface {
	// Run blocks processing reload triggers until the context is canceled.
	Run(ctx context.Context) error
}

// ReloadService wraps the dataset reload watcher as a supervised service.
// If the watcher crashes the supervisor restarts it; the currently served
// engine is untouched because the watcher only swaps engines on success.
type ReloadService struct {
	reloader EngineReloader
	name     string
}

// NewReloadService creates a reload watcher service wrapper.
func NewReloadService(reloader EngineReloader) *ReloadService {
	return &ReloadService{
		reloader: reloader,
		name:     "dataset-reload",
	}
}

// Serve implements suture.Service. It returns ctx.Err() on normal shutdown.
func (s *ReloadService) Serve(ctx context.Context) error {
	return s.reloader.Run(ctx)
}

// String implements fmt.Stringer; suture uses it in event logs.
func (s *ReloadService) String() string {
	return s.name
}
