// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package reranking

import (
	"testing"
)

func testCandidates() []Candidate {
	return []Candidate{
		{Genres: "Action|Thriller", Score: 0.95},
		{Genres: "Action|Thriller", Score: 0.90},
		{Genres: "Comedy|Romance", Score: 0.85},
		{Genres: "Action|Crime", Score: 0.80},
		{Genres: "Documentary", Score: 0.75},
	}
}

func TestNewMMRClampsLambda(t *testing.T) {
	tests := []struct {
		name   string
		lambda float64
		want   float64
	}{
		{"negative", -0.5, 0},
		{"zero", 0, 0},
		{"mid", 0.7, 0.7},
		{"above one", 1.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewMMR(tt.lambda).Lambda(); got != tt.want {
				t.Errorf("Lambda() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRerankPureRelevanceKeepsOrder(t *testing.T) {
	order := NewMMR(1.0).Rerank(testCandidates(), 3)

	want := []int{0, 1, 2}
	if len(order) != len(want) {
		t.Fatalf("Rerank() returned %d indices, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestRerankPromotesDiversity(t *testing.T) {
	// With heavy diversity weighting the near-duplicate second item should
	// be displaced by genre-distinct candidates.
	order := NewMMR(0.3).Rerank(testCandidates(), 3)

	if len(order) != 3 {
		t.Fatalf("Rerank() returned %d indices, want 3", len(order))
	}
	if order[0] != 0 {
		t.Errorf("first pick = %d, want the top-scored item 0", order[0])
	}
	for _, idx := range order {
		if idx == 1 {
			t.Error("near-duplicate item 1 selected despite diversity weighting")
		}
	}
}

func TestRerankBounds(t *testing.T) {
	m := NewMMR(0.5)

	if got := m.Rerank(nil, 3); got != nil {
		t.Errorf("Rerank(nil) = %v, want nil", got)
	}
	if got := m.Rerank(testCandidates(), 0); got != nil {
		t.Errorf("Rerank(k=0) = %v, want nil", got)
	}
	if got := m.Rerank(testCandidates(), 100); len(got) != 5 {
		t.Errorf("Rerank(k=100) returned %d indices, want all 5", len(got))
	}
}

func TestRerankIndicesUnique(t *testing.T) {
	order := NewMMR(0.5).Rerank(testCandidates(), 5)

	seen := make(map[int]struct{})
	for _, idx := range order {
		if _, dup := seen[idx]; dup {
			t.Fatalf("index %d selected twice", idx)
		}
		seen[idx] = struct{}{}
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Action|Thriller", "Action|Thriller", 1.0},
		{"disjoint", "Comedy", "Horror", 0.0},
		{"partial", "Action|Thriller", "Action|Crime", 1.0 / 3.0},
		{"case insensitive", "ACTION", "action", 1.0},
		{"both empty", "", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jaccard(genreSet(tt.a), genreSet(tt.b))
			if got != tt.want {
				t.Errorf("jaccard(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
