// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package algorithms

import (
	"sort"
)

// ScoredIndex pairs a document position with a similarity or prediction
// score.
type ScoredIndex struct {
	Index int
	Score float64
}

// SimilarityIndex holds the precomputed pairwise cosine similarity of a
// fitted document corpus. Built once, read-only afterwards.
type SimilarityIndex struct {
	matrix [][]float64
}

// NewSimilarityIndex computes the full pairwise cosine similarity matrix of
// the vectorizer's documents. The diagonal is set to exactly 1.0 even for
// empty documents, matching self-similarity by definition.
func NewSimilarityIndex(v *Vectorizer) *SimilarityIndex {
	n := v.NumDocuments()
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		matrix[i][i] = 1.0
		vi := v.Vector(i)
		for j := i + 1; j < n; j++ {
			sim := vi.Dot(v.Vector(j))
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}

	return &SimilarityIndex{matrix: matrix}
}

// Len returns the number of indexed documents.
func (s *SimilarityIndex) Len() int {
	return len(s.matrix)
}

// Similarity returns the cosine similarity between documents i and j.
func (s *SimilarityIndex) Similarity(i, j int) float64 {
	return s.matrix[i][j]
}

// SimilarTo returns up to n documents most similar to the document at pos,
// excluding pos itself. Ranking uses the raw scores; rounding is left to
// the presentation layer. The sort is stable, so documents with equal
// scores keep their corpus order.
func (s *SimilarityIndex) SimilarTo(pos, n int) []ScoredIndex {
	if pos < 0 || pos >= len(s.matrix) || n <= 0 {
		return nil
	}

	row := s.matrix[pos]
	scored := make([]ScoredIndex, 0, len(row)-1)
	for j, sim := range row {
		if j == pos {
			continue
		}
		scored = append(scored, ScoredIndex{Index: j, Score: sim})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
