// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelrank/reelrank/internal/middleware"
)

// RouterConfig holds the HTTP middleware configuration.
type RouterConfig struct {
	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string

	// RateLimitReqs is the allowed request count per window per client IP.
	// Zero disables rate limiting.
	RateLimitReqs int

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration
}

// NewRouter wires the full route tree with its middleware stack.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health endpoints stay outside rate limiting so probes never starve.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/search", h.SearchMovies)
			r.Get("/popular", h.PopularMovies)
			r.Get("/{movieID}", h.GetMovie)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/content-based", h.ContentBased)
			r.Get("/collaborative", h.Collaborative)
			r.Get("/hybrid", h.Hybrid)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
