// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package ratings builds the dense user x movie rating matrix.
//
// Rows are distinct userIds sorted ascending, columns are distinct movieIds
// sorted ascending, and a cell holds the user's rating for the movie or 0.0
// when no rating row exists.
//
// Known modeling defect, preserved for compatibility with the source data
// pipeline: a cell value of exactly zero means "unrated". An explicit rating
// of 0 would be indistinguishable from the sentinel and therefore treated as
// unrated everywhere downstream. Do not "fix" this silently; rating scales in
// the supported datasets start above zero.
package ratings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/reelrank/reelrank/internal/models"
)

// ErrUnknownUser is returned when a userId has no row in the matrix.
var ErrUnknownUser = errors.New("unknown user")

// MovieStats aggregates the raw rating rows of one movie.
type MovieStats struct {
	// MovieID is the movie the stats belong to.
	MovieID int

	// Count is the number of rating rows for the movie.
	Count int

	// Mean is the arithmetic mean of the movie's ratings.
	Mean float64
}

// Matrix is the immutable dense user x movie rating matrix.
type Matrix struct {
	users  []int // sorted ascending, row order
	movies []int // sorted ascending, column order

	userRow  map[int]int // userId -> row
	movieCol map[int]int // movieId -> column

	cells [][]float64 // len(users) rows x len(movies) columns

	stats []MovieStats // per-movie aggregates from raw rows, column order
}

// Build pivots the rating rows into a dense matrix.
// Cells without a rating row default to 0.0 (the unrated sentinel).
func Build(rows []models.Rating) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("ratings: no rating rows")
	}

	userSet := make(map[int]struct{})
	movieSet := make(map[int]struct{})
	for _, r := range rows {
		userSet[r.UserID] = struct{}{}
		movieSet[r.MovieID] = struct{}{}
	}

	m := &Matrix{
		users:    sortedKeys(userSet),
		movies:   sortedKeys(movieSet),
		userRow:  make(map[int]int, len(userSet)),
		movieCol: make(map[int]int, len(movieSet)),
	}
	for i, id := range m.users {
		m.userRow[id] = i
	}
	for j, id := range m.movies {
		m.movieCol[id] = j
	}

	m.cells = make([][]float64, len(m.users))
	for i := range m.cells {
		m.cells[i] = make([]float64, len(m.movies))
	}

	counts := make([]int, len(m.movies))
	sums := make([]float64, len(m.movies))
	for _, r := range rows {
		i := m.userRow[r.UserID]
		j := m.movieCol[r.MovieID]
		m.cells[i][j] = r.Rating
		counts[j]++
		sums[j] += r.Rating
	}

	m.stats = make([]MovieStats, len(m.movies))
	for j, id := range m.movies {
		m.stats[j] = MovieStats{
			MovieID: id,
			Count:   counts[j],
			Mean:    sums[j] / float64(counts[j]),
		}
	}

	return m, nil
}

// sortedKeys returns the map keys in ascending order.
func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Users returns the row userIds in ascending order.
// The returned slice is shared and must not be modified.
func (m *Matrix) Users() []int {
	return m.users
}

// Movies returns the column movieIds in ascending order.
// The returned slice is shared and must not be modified.
func (m *Matrix) Movies() []int {
	return m.movies
}

// NumUsers returns the number of matrix rows.
func (m *Matrix) NumUsers() int {
	return len(m.users)
}

// NumMovies returns the number of matrix columns.
func (m *Matrix) NumMovies() int {
	return len(m.movies)
}

// HasUser reports whether userId has a row in the matrix.
func (m *Matrix) HasUser(userID int) bool {
	_, ok := m.userRow[userID]
	return ok
}

// UserRow returns the dense row index of userId.
func (m *Matrix) UserRow(userID int) (int, bool) {
	i, ok := m.userRow[userID]
	return i, ok
}

// MovieCol returns the dense column index of movieId.
func (m *Matrix) MovieCol(movieID int) (int, bool) {
	j, ok := m.movieCol[movieID]
	return j, ok
}

// MovieAt returns the movieId of the given column.
func (m *Matrix) MovieAt(col int) int {
	return m.movies[col]
}

// RowFor returns the rating vector of userId, one cell per matrix column.
// Returns ErrUnknownUser if the user has no row.
// The returned slice is shared and must not be modified.
func (m *Matrix) RowFor(userID int) ([]float64, error) {
	i, ok := m.userRow[userID]
	if !ok {
		return nil, fmt.Errorf("userId %d: %w", userID, ErrUnknownUser)
	}
	return m.cells[i], nil
}

// UnratedColumns returns the column indices with an exact-zero cell in the
// user's row, i.e. the movies the user has not rated. Returns ErrUnknownUser
// if the user has no row.
func (m *Matrix) UnratedColumns(userID int) ([]int, error) {
	row, err := m.RowFor(userID)
	if err != nil {
		return nil, err
	}

	cols := make([]int, 0, len(row))
	for j, v := range row {
		if v == 0 {
			cols = append(cols, j)
		}
	}
	return cols, nil
}

// Cells returns the full dense matrix, rows in user order, columns in movie
// order. The returned slices are shared and must not be modified.
func (m *Matrix) Cells() [][]float64 {
	return m.cells
}

// Stats returns per-movie rating aggregates in column order, computed from
// the raw rating rows rather than the pivoted cells.
// The returned slice is shared and must not be modified.
func (m *Matrix) Stats() []MovieStats {
	return m.stats
}
