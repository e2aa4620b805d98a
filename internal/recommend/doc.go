// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package recommend implements the hybrid movie recommendation engine.
//
// The engine combines two models built once at construction time:
//
//   - Content path: TF-IDF vectors over each movie's genre string feed a
//     precomputed cosine similarity index (ContentBased).
//   - Collaborative path: seeded NMF of the user x movie rating matrix
//     predicts ratings for movies a user has not rated (Collaborative).
//
// Hybrid blends both paths: each contributes an oversampled candidate pool,
// candidates are merged by movieId, and the blend CFWeight*cf + CBWeight*cb
// ranks the final cut. Popular, Search, and GetMovie answer the non-model
// queries from rating aggregates and the catalog.
//
// All model state is immutable after New returns, so an Engine may serve
// queries from any number of goroutines. Swapping in fresh data means
// building a new Engine and replacing the pointer.
package recommend
