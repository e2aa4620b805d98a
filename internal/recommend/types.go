// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

// ContentRecommendation is one result of a content-based similarity query.
type ContentRecommendation struct {
	// MovieID identifies the recommended movie.
	MovieID int `json:"movieId"`

	// Title is the movie's display title.
	Title string `json:"title"`

	// Genres is the raw pipe-delimited genre string.
	Genres string `json:"genres"`

	// Similarity is the cosine similarity to the query movie, rounded to
	// three decimal places.
	Similarity float64 `json:"similarity_score"`
}

// CollabRecommendation is one result of a collaborative filtering query.
type CollabRecommendation struct {
	// MovieID identifies the recommended movie.
	MovieID int `json:"movieId"`

	// Title is the movie's display title.
	Title string `json:"title"`

	// Genres is the raw pipe-delimited genre string.
	Genres string `json:"genres"`

	// PredictedRating is the reconstructed affinity score, rounded to two
	// decimal places. It lives on the rating scale's shape but is not
	// clamped to its bounds.
	PredictedRating float64 `json:"predicted_rating"`
}

// HybridRecommendation is one result of a hybrid query blending the
// collaborative and content-based scores.
type HybridRecommendation struct {
	// MovieID identifies the recommended movie.
	MovieID int `json:"movieId"`

	// Title is the movie's display title.
	Title string `json:"title"`

	// Genres is the raw pipe-delimited genre string.
	Genres string `json:"genres"`

	// CFScore is the collaborative component, zero when the movie only
	// surfaced through content similarity.
	CFScore float64 `json:"cf_score"`

	// CBScore is the content component, zero when the movie only surfaced
	// through collaborative filtering.
	CBScore float64 `json:"cb_score"`

	// HybridScore is the weighted blend used for ranking.
	HybridScore float64 `json:"hybrid_score"`
}

// PopularMovie is one result of a popularity query.
type PopularMovie struct {
	// MovieID identifies the movie.
	MovieID int `json:"movieId"`

	// Title is the movie's display title.
	Title string `json:"title"`

	// Genres is the raw pipe-delimited genre string.
	Genres string `json:"genres"`

	// RatingCount is the number of ratings the movie received.
	RatingCount int `json:"rating_count"`

	// MeanRating is the arithmetic mean of the movie's ratings.
	MeanRating float64 `json:"rating_mean"`
}
