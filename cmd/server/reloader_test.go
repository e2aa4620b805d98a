// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package main

import (
	"context"
	"errors"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/recommend"
)

func TestReloaderSwapsEngineOnSignal(t *testing.T) {
	old := &recommend.Engine{}
	fresh := &recommend.Engine{}

	var current atomic.Pointer[recommend.Engine]
	current.Store(old)

	r := newEngineReloader(&config.Config{}, &current)
	r.build = func(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
		return fresh, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	r.signals <- syscall.SIGHUP

	deadline := time.After(2 * time.Second)
	for current.Load() != fresh {
		select {
		case <-deadline:
			t.Fatal("engine was not swapped after signal")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestReloaderKeepsEngineOnFailure(t *testing.T) {
	old := &recommend.Engine{}

	var current atomic.Pointer[recommend.Engine]
	current.Store(old)

	var builds atomic.Int32
	r := newEngineReloader(&config.Config{}, &current)
	r.build = func(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
		builds.Add(1)
		return nil, errors.New("dataset unreadable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	r.signals <- syscall.SIGHUP

	deadline := time.After(2 * time.Second)
	for builds.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("build was not attempted after signal")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if current.Load() != old {
		t.Error("engine was replaced despite failed rebuild")
	}

	cancel()
	<-done
}
