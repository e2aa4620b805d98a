// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package catalog indexes the movie table for lookup and search.
//
// The store is built once from the loaded movies table and is immutable
// afterwards, so all methods are safe for concurrent use. Each movie keeps
// both its identifier and its dense position in table order; the dense
// position doubles as the row/column index in the similarity matrix.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reelrank/reelrank/internal/models"
)

// ErrNotFound is returned by direct single-movie lookups with no match.
var ErrNotFound = errors.New("movie not found")

// Store is an immutable, indexed view of the movies table.
type Store struct {
	movies []models.Movie
	byID   map[int]int // movieId -> dense position in table order
}

// New builds a store from the loaded movies table.
// The input order is preserved; it defines the dense position of each movie.
func New(movies []models.Movie) (*Store, error) {
	if len(movies) == 0 {
		return nil, fmt.Errorf("catalog: no movies")
	}

	byID := make(map[int]int, len(movies))
	for i, m := range movies {
		if _, dup := byID[m.MovieID]; dup {
			return nil, fmt.Errorf("catalog: duplicate movieId %d", m.MovieID)
		}
		byID[m.MovieID] = i
	}

	return &Store{movies: movies, byID: byID}, nil
}

// Len returns the number of movies in the catalog.
func (s *Store) Len() int {
	return len(s.movies)
}

// ByID returns the movie with the given identifier.
// Returns ErrNotFound if the identifier is not in the catalog.
func (s *Store) ByID(movieID int) (models.Movie, error) {
	i, ok := s.byID[movieID]
	if !ok {
		return models.Movie{}, fmt.Errorf("movieId %d: %w", movieID, ErrNotFound)
	}
	return s.movies[i], nil
}

// Position returns the dense table position of the given movie.
func (s *Store) Position(movieID int) (int, bool) {
	i, ok := s.byID[movieID]
	return i, ok
}

// At returns the movie at the given dense position.
// Position must be in [0, Len()).
func (s *Store) At(position int) models.Movie {
	return s.movies[position]
}

// Movies returns the catalog in table order.
// The returned slice is shared and must not be modified.
func (s *Store) Movies() []models.Movie {
	return s.movies
}

// Search returns up to limit movies whose title or genre string contains
// query, compared case-insensitively. Results keep original table order and
// are deduplicated by construction (each movie is visited once); matches are
// not relevance-ranked. An empty query matches nothing.
func (s *Store) Search(query string, limit int) []models.Movie {
	results := []models.Movie{}
	if query == "" || limit <= 0 {
		return results
	}

	q := strings.ToLower(query)
	for _, m := range s.movies {
		if strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(strings.ToLower(m.Genres), q) {
			results = append(results, m)
			if len(results) == limit {
				break
			}
		}
	}
	return results
}
