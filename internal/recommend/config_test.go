// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "zero rank", mutate: func(c *Config) { c.Rank = 0 }, wantErr: true},
		{name: "negative iterations", mutate: func(c *Config) { c.Iterations = -1 }, wantErr: true},
		{name: "negative cf weight", mutate: func(c *Config) { c.CFWeight = -0.1 }, wantErr: true},
		{name: "both weights zero", mutate: func(c *Config) { c.CFWeight, c.CBWeight = 0, 0 }, wantErr: true},
		{name: "cb-only weights", mutate: func(c *Config) { c.CFWeight = 0 }, wantErr: false},
		{name: "zero default limit", mutate: func(c *Config) { c.DefaultLimit = 0 }, wantErr: true},
		{name: "max below default", mutate: func(c *Config) { c.MaxLimit = c.DefaultLimit - 1 }, wantErr: true},
		{name: "zero candidate multiplier", mutate: func(c *Config) { c.CandidateMultiplier = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	cfg := &Config{DefaultLimit: 10, MaxLimit: 100}

	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 10},
		{n: -5, want: 10},
		{n: 7, want: 7},
		{n: 100, want: 100},
		{n: 101, want: 100},
	}

	for _, tt := range tests {
		if got := cfg.clampLimit(tt.n); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
