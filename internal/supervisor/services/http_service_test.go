// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer implements HTTPServer for testing.
type mockHTTPServer struct {
	listenErr    error
	shutdownErr  error
	shutdownSeen atomic.Bool
	closed       chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{closed: make(chan struct{})}
}

func (m *mockHTTPServer) ListenAndServe() error {
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.closed
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(ctx context.Context) error {
	m.shutdownSeen.Store(true)
	close(m.closed)
	return m.shutdownErr
}

func TestHTTPServerServiceInterface(t *testing.T) {
	t.Parallel()

	var _ suture.Service = (*HTTPServerService)(nil)
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	t.Parallel()

	server := newMockHTTPServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// Give ListenAndServe a moment to start before triggering shutdown.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}

	if !server.shutdownSeen.Load() {
		t.Error("Shutdown was not called")
	}
}

func TestHTTPServerServiceListenFailure(t *testing.T) {
	t.Parallel()

	server := newMockHTTPServer()
	server.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, server.listenErr) {
		t.Errorf("Serve() error = %v, want wrapped listen error", err)
	}
}

func TestHTTPServerServiceShutdownFailure(t *testing.T) {
	t.Parallel()

	server := newMockHTTPServer()
	server.shutdownErr = errors.New("connections still active")
	svc := NewHTTPServerService(server, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil || !errors.Is(err, server.shutdownErr) {
			t.Errorf("Serve() error = %v, want wrapped shutdown error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestHTTPServerServiceDefaultTimeout(t *testing.T) {
	t.Parallel()

	svc := NewHTTPServerService(newMockHTTPServer(), 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s default", svc.shutdownTimeout)
	}
}

func TestHTTPServerServiceString(t *testing.T) {
	t.Parallel()

	svc := NewHTTPServerService(newMockHTTPServer(), time.Second)
	if svc.String() != "http-server" {
		t.Errorf("String() = %q, want http-server", svc.String())
	}
}
