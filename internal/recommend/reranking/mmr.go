// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package reranking implements post-processing that trades a little
// relevance for genre diversity in recommendation lists.
package reranking

import (
	"strings"

	"github.com/reelrank/reelrank/internal/models"
)

// Candidate is a scored movie eligible for reranking.
type Candidate struct {
	// Genres is the raw pipe-delimited genre column.
	Genres string

	// Score is the relevance score from the upstream ranker, expected in
	// a comparable range across the whole list.
	Score float64
}

// MMR implements Maximal Marginal Relevance reranking. It iteratively
// selects items that are both relevant and dissimilar to what has already
// been picked:
//
//	MMR = argmax[lambda*score(i) - (1-lambda)*max(sim(i, s)) for s in selected]
//
// lambda 1.0 is pure relevance, 0.0 pure diversity. Similarity between two
// movies is the Jaccard coefficient over their genre token sets.
//
// Reference: Carbonell & Goldstein, "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries", SIGIR 1998.
type MMR struct {
	lambda float64
}

// NewMMR creates an MMR reranker, clamping lambda to [0, 1].
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Lambda returns the relevance/diversity balance in use.
func (m *MMR) Lambda() float64 {
	return m.lambda
}

// Rerank returns the indices of up to k candidates in MMR selection order.
// Returning indices instead of values lets callers rerank any result type
// whose elements they can project into Candidate.
func (m *MMR) Rerank(items []Candidate, k int) []int {
	if len(items) == 0 || k <= 0 {
		return nil
	}
	if k > len(items) {
		k = len(items)
	}

	// Pure relevance keeps the incoming order.
	if m.lambda >= 1.0 {
		order := make([]int, k)
		for i := range order {
			order[i] = i
		}
		return order
	}

	similarities := genreSimilarityMatrix(items)

	order := make([]int, 0, k)
	selected := make(map[int]struct{}, k)

	for len(order) < k {
		bestIdx := -1
		bestScore := 0.0

		for i, item := range items {
			if _, ok := selected[i]; ok {
				continue
			}

			maxSim := 0.0
			for j := range selected {
				if sim := similarities[i][j]; sim > maxSim {
					maxSim = sim
				}
			}

			score := m.lambda*item.Score - (1-m.lambda)*maxSim
			if bestIdx < 0 || score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}
		order = append(order, bestIdx)
		selected[bestIdx] = struct{}{}
	}

	return order
}

// genreSimilarityMatrix computes pairwise Jaccard similarity over genre
// token sets.
func genreSimilarityMatrix(items []Candidate) [][]float64 {
	n := len(items)
	similarities := make([][]float64, n)
	for i := range similarities {
		similarities[i] = make([]float64, n)
	}

	sets := make([]map[string]struct{}, n)
	for i, item := range items {
		sets[i] = genreSet(item.Genres)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := jaccard(sets[i], sets[j])
			similarities[i][j] = sim
			similarities[j][i] = sim
		}
	}
	return similarities
}

func genreSet(genres string) map[string]struct{} {
	set := make(map[string]struct{})
	if genres == "" {
		return set
	}
	for _, g := range strings.Split(genres, models.GenreDelimiter) {
		set[strings.ToLower(g)] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for g := range a {
		if _, ok := b[g]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
