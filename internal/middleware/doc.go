// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package middleware provides HTTP middleware shared by the API router:
// request ID propagation and Prometheus request instrumentation.
package middleware
