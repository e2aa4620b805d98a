// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package algorithms

import (
	"math"
	"testing"
)

func testIndex() *SimilarityIndex {
	return NewSimilarityIndex(NewVectorizer([]string{
		"Action|Adventure",   // 0
		"Action|Adventure",   // 1, identical to 0
		"Comedy|Romance",     // 2
		"Action|Comedy",      // 3
		"(no genres listed)", // 4, tokens shared with nothing else
	}))
}

func TestSimilarityMatrixProperties(t *testing.T) {
	idx := testIndex()

	if idx.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", idx.Len())
	}

	for i := 0; i < idx.Len(); i++ {
		if got := idx.Similarity(i, i); got != 1.0 {
			t.Errorf("Similarity(%d, %d) = %v, want 1.0", i, i, got)
		}
		for j := 0; j < idx.Len(); j++ {
			if got, mirrored := idx.Similarity(i, j), idx.Similarity(j, i); got != mirrored {
				t.Errorf("Similarity(%d, %d) = %v, Similarity(%d, %d) = %v, want symmetric", i, j, got, j, i, mirrored)
			}
		}
	}

	if got := idx.Similarity(0, 1); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Similarity(0, 1) = %v, want 1.0 for identical genre sets", got)
	}
	if got := idx.Similarity(0, 4); got != 0 {
		t.Errorf("Similarity(0, 4) = %v, want 0 for disjoint genre sets", got)
	}
}

func TestSimilarTo(t *testing.T) {
	idx := testIndex()

	got := idx.SimilarTo(0, 3)
	if len(got) != 3 {
		t.Fatalf("SimilarTo(0, 3) returned %d results, want 3", len(got))
	}

	// Top result is the identical document; self is never returned.
	if got[0].Index != 1 {
		t.Errorf("SimilarTo(0, 3)[0].Index = %d, want 1", got[0].Index)
	}
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("SimilarTo(0, 3)[0].Score = %v, want 1.0", got[0].Score)
	}
	for _, r := range got {
		if r.Index == 0 {
			t.Error("SimilarTo(0, 3) returned the query document itself")
		}
	}

	// Scores are non-increasing.
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("SimilarTo(0, 3) scores not sorted: %v before %v", got[i-1].Score, got[i].Score)
		}
	}
}

func TestSimilarToRanksOnRawScores(t *testing.T) {
	// Scores 0.5004 and 0.5001 would collapse into a tie if ranking
	// rounded first; the raw ordering must win.
	idx := &SimilarityIndex{matrix: [][]float64{
		{1.0, 0.5001, 0.5004, 0.9},
		{0.5001, 1.0, 0, 0},
		{0.5004, 0, 1.0, 0},
		{0.9, 0, 0, 1.0},
	}}

	got := idx.SimilarTo(0, 3)
	if len(got) != 3 {
		t.Fatalf("SimilarTo(0, 3) returned %d results, want 3", len(got))
	}
	wantOrder := []int{3, 2, 1}
	for i, want := range wantOrder {
		if got[i].Index != want {
			t.Fatalf("order = [%d %d %d], want [3 2 1]",
				got[0].Index, got[1].Index, got[2].Index)
		}
	}
	if got[1].Score != 0.5004 || got[2].Score != 0.5001 {
		t.Errorf("scores = %v, %v; raw scores must be preserved", got[1].Score, got[2].Score)
	}
}

func TestSimilarToStableTies(t *testing.T) {
	// Documents 1 and 2 are both identical to 0, so they tie at 1.0 and
	// must keep corpus order.
	idx := NewSimilarityIndex(NewVectorizer([]string{
		"Action",
		"Action",
		"Action",
		"Comedy",
	}))

	got := idx.SimilarTo(0, 2)
	if len(got) != 2 {
		t.Fatalf("SimilarTo(0, 2) returned %d results, want 2", len(got))
	}
	if got[0].Index != 1 || got[1].Index != 2 {
		t.Errorf("tie order = [%d, %d], want [1, 2]", got[0].Index, got[1].Index)
	}
}

func TestSimilarToBounds(t *testing.T) {
	idx := testIndex()

	if got := idx.SimilarTo(-1, 3); got != nil {
		t.Errorf("SimilarTo(-1, 3) = %v, want nil", got)
	}
	if got := idx.SimilarTo(99, 3); got != nil {
		t.Errorf("SimilarTo(99, 3) = %v, want nil", got)
	}
	if got := idx.SimilarTo(0, 0); got != nil {
		t.Errorf("SimilarTo(0, 0) = %v, want nil", got)
	}
	if got := idx.SimilarTo(0, 100); len(got) != 4 {
		t.Errorf("SimilarTo(0, 100) returned %d results, want 4", len(got))
	}
}
