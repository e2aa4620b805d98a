// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package algorithms implements the model-building primitives behind the
// recommendation engine: a TF-IDF vectorizer over genre text, a pairwise
// cosine similarity index, and non-negative matrix factorization (NMF) of
// the user x movie rating matrix.
//
// # Models
//
// Content path:
//   - Vectorizer: genre strings -> L2-normalized sparse TF-IDF vectors
//   - SimilarityIndex: precomputed movie x movie cosine similarity
//
// Collaborative path:
//   - NMF: rating matrix R (users x movies) factorized as W * H with
//     multiplicative updates; W*H reconstructs predicted affinity scores
//
// All linear algebra is hand-rolled on [][]float64 slices. The matrices
// involved (thousands of movies, tens of latent factors) are small enough
// that a dedicated numerics dependency would not pay for itself.
//
// # Determinism
//
// NMF factor matrices are initialized from a seeded PRNG. Identical
// (seed, rank, iterations, input matrix) always produce identical factors
// and therefore identical predictions, which keeps recommendation output
// stable across process restarts.
//
// # Thread Safety
//
// Models are built once at load time and read-only afterwards, so queries
// may run concurrently without locking.
package algorithms
