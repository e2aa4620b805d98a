// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package api provides the HTTP surface of the recommendation service,
// built on the chi router.
//
// # Endpoints
//
//	GET /api/v1/movies/{movieID}                     catalog lookup
//	GET /api/v1/movies/search?q=&limit=              title/genre substring search
//	GET /api/v1/movies/popular?limit=                rating-count popularity ranking
//	GET /api/v1/recommendations/content-based?movie_id=&limit=&diversity=
//	GET /api/v1/recommendations/collaborative?user_id=&limit=
//	GET /api/v1/recommendations/hybrid?user_id=&movie_id=&limit=
//	GET /api/v1/health/live                          liveness probe
//	GET /api/v1/health/ready                         readiness probe
//	GET /metrics                                     Prometheus metrics
//
// All API responses share the envelope {status, data, metadata, error}.
// Validation failures return 400 VALIDATION_ERROR and unexpected failures
// return 500 ENGINE_ERROR. Only the direct catalog lookup 404s on an
// unknown id; list queries degrade to 200 with an empty list.
//
// The handler resolves its engine through a provider function on every
// request, so a dataset reload can swap in a freshly built engine without
// restarting the server.
package api
