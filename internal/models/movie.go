// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package models

import "strings"

// GenreDelimiter separates genre tokens in the raw genres column.
const GenreDelimiter = "|"

// Movie is an immutable catalog record loaded once at startup.
type Movie struct {
	// MovieID is the unique catalog identifier (primary key).
	MovieID int `json:"movieId"`

	// Title is the display title, typically suffixed with the release year.
	Title string `json:"title"`

	// Genres is the raw pipe-delimited genre token list, e.g.
	// "Adventure|Animation|Children".
	Genres string `json:"genres"`

	// Year is the release year.
	Year int `json:"year"`
}

// GenreList splits the raw genres column into its ordered tokens.
// An empty genres column yields an empty slice, not [""].
func (m Movie) GenreList() []string {
	if m.Genres == "" {
		return nil
	}
	return strings.Split(m.Genres, GenreDelimiter)
}

// Rating is an immutable (user, movie, rating) triple from the ratings table.
// The source data carries at most one row per (user, movie) pair.
type Rating struct {
	// UserID is the rating user's identifier.
	UserID int `json:"userId"`

	// MovieID is the rated movie's identifier.
	MovieID int `json:"movieId"`

	// Rating is the star value given by the user.
	Rating float64 `json:"rating"`
}
