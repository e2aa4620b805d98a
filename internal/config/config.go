// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package config loads Reelrank configuration from layered sources with
// clear precedence: environment variables > YAML config file > built-in
// defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Dataset DatasetConfig `koanf:"dataset"`
	Engine  EngineConfig  `koanf:"engine"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// DatasetConfig locates the CSV inputs loaded at startup.
type DatasetConfig struct {
	// MoviesPath is the movies CSV file (movieId, title, genres).
	MoviesPath string `koanf:"movies_path"`

	// RatingsPath is the ratings CSV file (userId, movieId, rating).
	RatingsPath string `koanf:"ratings_path"`
}

// EngineConfig holds recommendation engine parameters.
type EngineConfig struct {
	// Rank is the number of NMF latent factors.
	Rank int `koanf:"rank"`

	// Iterations is the number of NMF training iterations.
	Iterations int `koanf:"iterations"`

	// Seed is the random seed for deterministic factorization.
	Seed int64 `koanf:"seed"`

	// CFWeight is the collaborative component weight in hybrid scoring.
	CFWeight float64 `koanf:"cf_weight"`

	// CBWeight is the content component weight in hybrid scoring.
	CBWeight float64 `koanf:"cb_weight"`

	// DefaultLimit is the result count for queries that omit one.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the result count of any single query.
	MaxLimit int `koanf:"max_limit"`

	// CandidateMultiplier scales the per-source candidate pool for hybrid
	// queries.
	CandidateMultiplier int `koanf:"candidate_multiplier"`

	// ModelDir caches fitted model factors on disk, keyed by a dataset
	// fingerprint, so restarts with unchanged inputs skip training.
	// Empty disables the cache.
	ModelDir string `koanf:"model_dir"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// ReadTimeout bounds request reading.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response writing. Model-backed queries are fast,
	// so a short timeout is safe.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the allowed request count per window per client IP.
	// Zero disables rate limiting.
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds logging parameters.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line in logs.
	Caller bool `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			MoviesPath:  "data/movies.csv",
			RatingsPath: "data/ratings.csv",
		},
		Engine: EngineConfig{
			Rank:                20,
			Iterations:          200,
			Seed:                42,
			CFWeight:            0.6,
			CBWeight:            0.4,
			DefaultLimit:        10,
			MaxLimit:            100,
			CandidateMultiplier: 2,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Dataset.MoviesPath == "" {
		return fmt.Errorf("dataset.movies_path must not be empty")
	}
	if c.Dataset.RatingsPath == "" {
		return fmt.Errorf("dataset.ratings_path must not be empty")
	}
	if c.Engine.Rank <= 0 {
		return fmt.Errorf("engine.rank must be positive, got %d", c.Engine.Rank)
	}
	if c.Engine.Iterations <= 0 {
		return fmt.Errorf("engine.iterations must be positive, got %d", c.Engine.Iterations)
	}
	if c.Engine.CFWeight < 0 || c.Engine.CBWeight < 0 {
		return fmt.Errorf("engine weights must be non-negative")
	}
	if c.Engine.CFWeight+c.Engine.CBWeight <= 0 {
		return fmt.Errorf("engine weights must not both be zero")
	}
	if c.Engine.DefaultLimit <= 0 {
		return fmt.Errorf("engine.default_limit must be positive, got %d", c.Engine.DefaultLimit)
	}
	if c.Engine.MaxLimit < c.Engine.DefaultLimit {
		return fmt.Errorf("engine.max_limit %d must be >= engine.default_limit %d",
			c.Engine.MaxLimit, c.Engine.DefaultLimit)
	}
	if c.Engine.CandidateMultiplier < 1 {
		return fmt.Errorf("engine.candidate_multiplier must be >= 1, got %d", c.Engine.CandidateMultiplier)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.RateLimitReqs < 0 {
		return fmt.Errorf("server.rate_limit_reqs must not be negative, got %d", c.Server.RateLimitReqs)
	}
	if c.Server.RateLimitReqs > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is enabled")
	}
	return nil
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
