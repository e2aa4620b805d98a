// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package algorithms

import (
	"context"
	"fmt"
	"math/rand"
)

// nmfEpsilon guards multiplicative-update denominators against division
// by zero.
const nmfEpsilon = 1e-9

// NMFConfig contains configuration for non-negative matrix factorization.
type NMFConfig struct {
	// Rank is the number of latent factors.
	Rank int

	// Iterations is the number of multiplicative update rounds.
	Iterations int

	// Seed initializes the PRNG for the factor matrices. The same seed on
	// the same input always reproduces the same model.
	Seed int64
}

// DefaultNMFConfig returns the default NMF configuration.
func DefaultNMFConfig() NMFConfig {
	return NMFConfig{
		Rank:       20,
		Iterations: 200,
		Seed:       42,
	}
}

// NMF factorizes a non-negative matrix R (users x movies) into W * H with
// W (users x rank) and H (rank x movies), using Lee-Seung multiplicative
// updates:
//
//	H <- H .* (W'R)  ./ (W'WH + eps)
//	W <- W .* (RH')  ./ (WHH' + eps)
//
// Both factors stay non-negative given a non-negative R and non-negative
// initialization. The reconstruction W*H fills the zero cells of R with
// predicted affinity scores.
type NMF struct {
	config NMFConfig

	// W is the user factor matrix (numRows x rank).
	W [][]float64

	// H is the movie factor matrix (rank x numCols).
	H [][]float64

	numRows int
	numCols int
}

// NewNMF creates an NMF model, applying defaults for non-positive
// config values. A zero Seed is kept as given; zero is a valid seed.
func NewNMF(cfg NMFConfig) *NMF {
	if cfg.Rank <= 0 {
		cfg.Rank = 20
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 200
	}
	return &NMF{config: cfg}
}

// Fit factorizes R. Rows and columns of R must be rectangular; cells must
// be non-negative. Fit may be cancelled between iterations via ctx.
func (n *NMF) Fit(ctx context.Context, r [][]float64) error {
	if len(r) == 0 || len(r[0]) == 0 {
		return fmt.Errorf("nmf: empty input matrix")
	}

	n.numRows = len(r)
	n.numCols = len(r[0])
	rank := n.config.Rank

	for i := range r {
		if len(r[i]) != n.numCols {
			return fmt.Errorf("nmf: ragged input matrix at row %d", i)
		}
		for j, v := range r[i] {
			if v < 0 {
				return fmt.Errorf("nmf: negative value at (%d, %d)", i, j)
			}
		}
	}

	// Seeded uniform [0, 1) initialization. Row-major fill order makes the
	// init independent of iteration details.
	rng := rand.New(rand.NewSource(n.config.Seed))
	n.W = randomMatrix(rng, n.numRows, rank)
	n.H = randomMatrix(rng, rank, n.numCols)

	for iter := 0; iter < n.config.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		n.updateH(r)
		n.updateW(r)
	}

	return nil
}

// randomMatrix returns a rows x cols matrix of uniform [0, 1) values.
func randomMatrix(rng *rand.Rand, rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = rng.Float64()
		}
	}
	return m
}

// updateH applies H <- H .* (W'R) ./ (W'WH + eps).
func (n *NMF) updateH(r [][]float64) {
	rank := n.config.Rank

	// W'W is rank x rank, cheap to precompute. Rows are allocated up
	// front because the symmetric fill writes below the diagonal.
	wtw := make([][]float64, rank)
	for f1 := range wtw {
		wtw[f1] = make([]float64, rank)
	}
	for f1 := 0; f1 < rank; f1++ {
		for f2 := f1; f2 < rank; f2++ {
			var sum float64
			for u := 0; u < n.numRows; u++ {
				sum += n.W[u][f1] * n.W[u][f2]
			}
			wtw[f1][f2] = sum
			wtw[f2][f1] = sum
		}
	}

	for f := 0; f < rank; f++ {
		for j := 0; j < n.numCols; j++ {
			var num float64
			for u := 0; u < n.numRows; u++ {
				num += n.W[u][f] * r[u][j]
			}

			var den float64
			for f2 := 0; f2 < rank; f2++ {
				den += wtw[f][f2] * n.H[f2][j]
			}

			n.H[f][j] *= num / (den + nmfEpsilon)
		}
	}
}

// updateW applies W <- W .* (RH') ./ (WHH' + eps).
func (n *NMF) updateW(r [][]float64) {
	rank := n.config.Rank

	// HH' is rank x rank, rows allocated up front as in updateH.
	hht := make([][]float64, rank)
	for f1 := range hht {
		hht[f1] = make([]float64, rank)
	}
	for f1 := 0; f1 < rank; f1++ {
		for f2 := f1; f2 < rank; f2++ {
			var sum float64
			for j := 0; j < n.numCols; j++ {
				sum += n.H[f1][j] * n.H[f2][j]
			}
			hht[f1][f2] = sum
			hht[f2][f1] = sum
		}
	}

	for u := 0; u < n.numRows; u++ {
		for f := 0; f < rank; f++ {
			var num float64
			for j := 0; j < n.numCols; j++ {
				num += r[u][j] * n.H[f][j]
			}

			var den float64
			for f2 := 0; f2 < rank; f2++ {
				den += n.W[u][f2] * hht[f2][f]
			}

			n.W[u][f] *= num / (den + nmfEpsilon)
		}
	}
}

// PredictRow reconstructs one row of W*H: the predicted affinity of the
// user at row for every movie column.
func (n *NMF) PredictRow(row int) []float64 {
	if n.W == nil || row < 0 || row >= n.numRows {
		return nil
	}

	userVec := n.W[row]
	out := make([]float64, n.numCols)
	for j := 0; j < n.numCols; j++ {
		var sum float64
		for f := range userVec {
			sum += userVec[f] * n.H[f][j]
		}
		out[j] = sum
	}
	return out
}

// PredictAt reconstructs a single cell of W*H.
func (n *NMF) PredictAt(row, col int) float64 {
	if n.W == nil || row < 0 || row >= n.numRows || col < 0 || col >= n.numCols {
		return 0
	}

	var sum float64
	for f := range n.W[row] {
		sum += n.W[row][f] * n.H[f][col]
	}
	return sum
}

// Rank returns the configured number of latent factors.
func (n *NMF) Rank() int {
	return n.config.Rank
}

// FactorSnapshot is the serializable state of a fitted model, suitable for
// gob encoding. Restoring a snapshot reproduces PredictRow and PredictAt
// exactly, so a persisted factorization can stand in for retraining when
// the input matrix has not changed.
type FactorSnapshot struct {
	Config NMFConfig
	W      [][]float64
	H      [][]float64
}

// Snapshot captures the fitted factors. It returns the zero snapshot if
// the model has not been fitted.
func (n *NMF) Snapshot() FactorSnapshot {
	return FactorSnapshot{
		Config: n.config,
		W:      n.W,
		H:      n.H,
	}
}

// Restore replaces the model state with a snapshot, validating that the
// factor shapes are rectangular and mutually consistent.
func (n *NMF) Restore(s FactorSnapshot) error {
	if len(s.W) == 0 || len(s.H) == 0 {
		return fmt.Errorf("nmf: snapshot has empty factors")
	}

	rank := len(s.H)
	for i := range s.W {
		if len(s.W[i]) != rank {
			return fmt.Errorf("nmf: snapshot W row %d has %d factors, want %d", i, len(s.W[i]), rank)
		}
	}
	cols := len(s.H[0])
	if cols == 0 {
		return fmt.Errorf("nmf: snapshot has no movie columns")
	}
	for f := range s.H {
		if len(s.H[f]) != cols {
			return fmt.Errorf("nmf: snapshot H row %d has %d columns, want %d", f, len(s.H[f]), cols)
		}
	}
	if s.Config.Rank != rank {
		return fmt.Errorf("nmf: snapshot rank %d does not match factors (%d)", s.Config.Rank, rank)
	}

	n.config = s.Config
	n.W = s.W
	n.H = s.H
	n.numRows = len(s.W)
	n.numCols = cols
	return nil
}

// Dims returns the fitted matrix dimensions (users, movies).
func (n *NMF) Dims() (rows, cols int) {
	return n.numRows, n.numCols
}
