// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package algorithms

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "pipe delimited genres",
			doc:  "Adventure|Animation|Children",
			want: []string{"adventure", "animation", "children"},
		},
		{
			name: "hyphenated genre splits",
			doc:  "Sci-Fi|Film-Noir",
			want: []string{"sci", "fi", "film", "noir"},
		},
		{
			name: "stopwords and short tokens removed",
			doc:  "(no genres listed)",
			want: []string{"genres", "listed"},
		},
		{
			name: "empty document",
			doc:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.doc)
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize(%q) = %v, want %v", tt.doc, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.doc, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestVectorizerUnitNorm(t *testing.T) {
	v := NewVectorizer([]string{
		"Action|Adventure",
		"Comedy|Romance",
		"Action|Comedy",
	})

	for i := 0; i < v.NumDocuments(); i++ {
		vec := v.Vector(i)
		var norm float64
		for _, val := range vec.Values {
			norm += val * val
		}
		if math.Abs(norm-1.0) > 1e-9 {
			t.Errorf("document %d squared norm = %v, want 1.0", i, norm)
		}
	}
}

func TestVectorizerEmptyDocument(t *testing.T) {
	v := NewVectorizer([]string{"Action", ""})

	vec := v.Vector(1)
	if len(vec.Indices) != 0 {
		t.Errorf("empty document vector has %d features, want 0", len(vec.Indices))
	}
}

func TestVectorizerVocabulary(t *testing.T) {
	v := NewVectorizer([]string{
		"Action|Adventure",
		"Adventure|Comedy",
	})

	if got := v.VocabularySize(); got != 3 {
		t.Errorf("VocabularySize() = %d, want 3", got)
	}
	if got := v.NumDocuments(); got != 2 {
		t.Errorf("NumDocuments() = %d, want 2", got)
	}
}

func TestSparseVectorDot(t *testing.T) {
	tests := []struct {
		name string
		a, b SparseVector
		want float64
	}{
		{
			name: "disjoint indices",
			a:    SparseVector{Indices: []int{0, 2}, Values: []float64{1, 1}},
			b:    SparseVector{Indices: []int{1, 3}, Values: []float64{1, 1}},
			want: 0,
		},
		{
			name: "overlapping indices",
			a:    SparseVector{Indices: []int{0, 1, 4}, Values: []float64{0.5, 0.5, 1}},
			b:    SparseVector{Indices: []int{1, 4}, Values: []float64{2, 3}},
			want: 4,
		},
		{
			name: "empty vector",
			a:    SparseVector{},
			b:    SparseVector{Indices: []int{0}, Values: []float64{1}},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Dot(tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Dot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorizerIdenticalDocuments(t *testing.T) {
	v := NewVectorizer([]string{
		"Action|Thriller",
		"Action|Thriller",
		"Documentary",
	})

	if got := v.Vector(0).Dot(v.Vector(1)); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical documents dot = %v, want 1.0", got)
	}
	if got := v.Vector(0).Dot(v.Vector(2)); got != 0 {
		t.Errorf("disjoint documents dot = %v, want 0", got)
	}
}
