// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package dataset loads the two source tables the engine is built from.
//
// Both tables are plain CSV with a header row:
//
//	movies.csv:  movieId,title,genres,year
//	ratings.csv: userId,movieId,rating
//
// Loading is strict: a missing file, missing column, or unparseable cell is
// fatal and the partially read data is discarded. The engine must never be
// constructed from a partially loaded dataset.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/reelrank/reelrank/internal/models"
)

// LoadMovies reads and parses the movies table from path.
func LoadMovies(path string) ([]models.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open movies table: %w", err)
	}
	defer f.Close()

	movies, err := ReadMovies(f)
	if err != nil {
		return nil, fmt.Errorf("parse movies table %s: %w", path, err)
	}
	return movies, nil
}

// LoadRatings reads and parses the ratings table from path.
func LoadRatings(path string) ([]models.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings table: %w", err)
	}
	defer f.Close()

	ratings, err := ReadRatings(f)
	if err != nil {
		return nil, fmt.Errorf("parse ratings table %s: %w", path, err)
	}
	return ratings, nil
}

// ReadMovies parses the movies table from r.
// Column order is taken from the header row, so extra columns are tolerated
// while missing required columns are an error.
func ReadMovies(r io.Reader) ([]models.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // header determines the required columns

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndex(header, "movieId", "title", "genres", "year")
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	seen := make(map[int]struct{})
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		movieID, err := intCell(record, cols["movieId"], line, "movieId")
		if err != nil {
			return nil, err
		}
		if _, dup := seen[movieID]; dup {
			return nil, fmt.Errorf("line %d: duplicate movieId %d", line, movieID)
		}
		seen[movieID] = struct{}{}

		year, err := intCell(record, cols["year"], line, "year")
		if err != nil {
			return nil, err
		}

		movies = append(movies, models.Movie{
			MovieID: movieID,
			Title:   cell(record, cols["title"]),
			Genres:  cell(record, cols["genres"]),
			Year:    year,
		})
	}

	if len(movies) == 0 {
		return nil, fmt.Errorf("movies table is empty")
	}
	return movies, nil
}

// ReadRatings parses the ratings table from r.
func ReadRatings(r io.Reader) ([]models.Rating, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndex(header, "userId", "movieId", "rating")
	if err != nil {
		return nil, err
	}

	var ratings []models.Rating
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		userID, err := intCell(record, cols["userId"], line, "userId")
		if err != nil {
			return nil, err
		}
		movieID, err := intCell(record, cols["movieId"], line, "movieId")
		if err != nil {
			return nil, err
		}
		value, err := floatCell(record, cols["rating"], line, "rating")
		if err != nil {
			return nil, err
		}

		ratings = append(ratings, models.Rating{
			UserID:  userID,
			MovieID: movieID,
			Rating:  value,
		})
	}

	if len(ratings) == 0 {
		return nil, fmt.Errorf("ratings table is empty")
	}
	return ratings, nil
}

// columnIndex maps each required column name to its position in the header.
// Matching is case-insensitive to tolerate re-exported datasets.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make(map[string]int, len(required))
	for _, name := range required {
		idx, ok := positions[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		cols[name] = idx
	}
	return cols, nil
}

// cell returns the trimmed value at idx, or "" when the record is short.
func cell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// intCell parses an integer cell, reporting line and column on failure.
func intCell(record []string, idx, line int, name string) (int, error) {
	raw := cell(record, idx)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: invalid integer %q", line, name, raw)
	}
	return v, nil
}

// floatCell parses a float cell, reporting line and column on failure.
func floatCell(record []string, idx, line int, name string) (float64, error) {
	raw := cell(record, idx)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: invalid number %q", line, name, raw)
	}
	return v, nil
}
