// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package services contains suture.Service wrappers that adapt Reelrank's
// long-running components to the supervisor's context-aware Serve pattern.
// Each wrapper depends on a small interface rather than a concrete type so
// it can be exercised with mocks.
package services
