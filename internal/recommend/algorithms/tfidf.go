// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package algorithms

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vectorizer converts documents into L2-normalized sparse TF-IDF vectors.
//
// The pipeline is: lowercase, split on non-alphanumeric runes, drop tokens
// shorter than two characters and English stopwords, count term frequency,
// weight by smoothed inverse document frequency, normalize to unit length.
// Smoothed IDF is ln((1+n)/(1+df)) + 1 so unseen-document terms never
// divide by zero and every term keeps positive weight.
type Vectorizer struct {
	// vocabulary maps a term to its dense feature index.
	vocabulary map[string]int

	// idf holds the inverse document frequency per feature index.
	idf []float64

	// vectors holds one sparse vector per fitted document.
	vectors []SparseVector
}

// SparseVector is an L2-normalized sparse feature vector. Indices are
// strictly ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot returns the inner product of two sparse vectors. For unit-length
// vectors this is their cosine similarity.
func (v SparseVector) Dot(other SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] < other.Indices[j]:
			i++
		case v.Indices[i] > other.Indices[j]:
			j++
		default:
			sum += v.Values[i] * other.Values[j]
			i++
			j++
		}
	}
	return sum
}

// tokenize lowercases the document and splits it on non-alphanumeric runes,
// dropping stopwords and tokens shorter than two characters.
func tokenize(doc string) []string {
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) < 2 || isStopword(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// NewVectorizer fits a TF-IDF model over the documents and transforms them.
// Document order is preserved: Vector(i) corresponds to docs[i].
func NewVectorizer(docs []string) *Vectorizer {
	v := &Vectorizer{
		vocabulary: make(map[string]int),
	}

	// Tokenize once, building the vocabulary in first-seen order, and
	// count document frequency per term.
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for d, doc := range docs {
		tokens := tokenize(doc)
		tokenized[d] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := v.vocabulary[tok]; !ok {
				v.vocabulary[tok] = len(v.vocabulary)
			}
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(v.vocabulary))
	for term, idx := range v.vocabulary {
		v.idf[idx] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v.vectors = make([]SparseVector, len(docs))
	for d, tokens := range tokenized {
		v.vectors[d] = v.transform(tokens)
	}

	return v
}

// transform builds the normalized TF-IDF vector of one tokenized document.
func (v *Vectorizer) transform(tokens []string) SparseVector {
	tf := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		tf[v.vocabulary[tok]]++
	}

	vec := SparseVector{
		Indices: make([]int, 0, len(tf)),
		Values:  make([]float64, 0, len(tf)),
	}
	for idx := range tf {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	var norm float64
	for _, idx := range vec.Indices {
		w := tf[idx] * v.idf[idx]
		vec.Values = append(vec.Values, w)
		norm += w * w
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}

	return vec
}

// Vector returns the fitted vector of document i.
func (v *Vectorizer) Vector(i int) SparseVector {
	return v.vectors[i]
}

// NumDocuments returns the number of fitted documents.
func (v *Vectorizer) NumDocuments() int {
	return len(v.vectors)
}

// VocabularySize returns the number of distinct terms in the fitted corpus.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}
