// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

import "fmt"

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Rank is the number of NMF latent factors.
	Rank int `json:"rank"`

	// Iterations is the number of NMF training iterations.
	Iterations int `json:"iterations"`

	// Seed is the random seed for deterministic factorization.
	Seed int64 `json:"seed"`

	// CFWeight is the collaborative component weight in hybrid scoring.
	CFWeight float64 `json:"cf_weight"`

	// CBWeight is the content component weight in hybrid scoring.
	CBWeight float64 `json:"cb_weight"`

	// DefaultLimit is the result count used when a query asks for zero or
	// negative results.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the result count of any single query.
	MaxLimit int `json:"max_limit"`

	// CandidateMultiplier scales the per-source candidate pool for hybrid
	// queries: each source contributes multiplier * n candidates before
	// the blended ranking is cut to n.
	CandidateMultiplier int `json:"candidate_multiplier"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Rank:                20,
		Iterations:          200,
		Seed:                42,
		CFWeight:            0.6,
		CBWeight:            0.4,
		DefaultLimit:        10,
		MaxLimit:            100,
		CandidateMultiplier: 2,
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Rank <= 0 {
		return fmt.Errorf("rank must be positive, got %d", c.Rank)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.CFWeight < 0 || c.CBWeight < 0 {
		return fmt.Errorf("hybrid weights must be non-negative, got cf=%v cb=%v", c.CFWeight, c.CBWeight)
	}
	if c.CFWeight+c.CBWeight <= 0 {
		return fmt.Errorf("hybrid weights must not both be zero")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit %d must be >= default_limit %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.CandidateMultiplier < 1 {
		return fmt.Errorf("candidate_multiplier must be >= 1, got %d", c.CandidateMultiplier)
	}
	return nil
}

// clampLimit folds a requested result count into [1, MaxLimit], substituting
// DefaultLimit for zero or negative requests.
func (c *Config) clampLimit(n int) int {
	if n <= 0 {
		return c.DefaultLimit
	}
	if n > c.MaxLimit {
		return c.MaxLimit
	}
	return n
}
