// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package metrics provides Prometheus instrumentation for the API surface
// and the recommendation engine. All collectors register themselves on the
// default registry via promauto and are served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Engine query metrics
	EngineQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_queries_total",
			Help: "Total number of recommendation engine queries",
		},
		[]string{"query", "outcome"}, // outcome: "ok", "not_found", "error"
	)

	EngineQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_query_duration_seconds",
			Help:    "Recommendation engine query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	// Model build metrics
	ModelBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_build_duration_seconds",
			Help:    "Model build duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"model"}, // "similarity", "factorization"
	)

	ModelBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_builds_total",
			Help: "Total number of model builds",
		},
		[]string{"outcome"}, // "ok", "error"
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	MatrixUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rating_matrix_users",
			Help: "Number of users in the rating matrix",
		},
	)

	MatrixRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rating_matrix_ratings",
			Help: "Number of raw rating rows loaded",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordEngineQuery records one engine query with its outcome.
func RecordEngineQuery(query, outcome string, duration time.Duration) {
	EngineQueriesTotal.WithLabelValues(query, outcome).Inc()
	EngineQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// RecordModelBuild records one model build.
func RecordModelBuild(model string, duration time.Duration, err error) {
	ModelBuildDuration.WithLabelValues(model).Observe(duration.Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ModelBuildsTotal.WithLabelValues(outcome).Inc()
}

// SetDatasetGauges publishes the loaded dataset dimensions.
func SetDatasetGauges(movies, users, ratingRows int) {
	CatalogMovies.Set(float64(movies))
	MatrixUsers.Set(float64(users))
	MatrixRatings.Set(float64(ratingRows))
}
