// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/reelrank/reelrank/internal/catalog"
	"github.com/reelrank/reelrank/internal/metrics"
	"github.com/reelrank/reelrank/internal/models"
	"github.com/reelrank/reelrank/internal/ratings"
	"github.com/reelrank/reelrank/internal/recommend"
	"github.com/reelrank/reelrank/internal/validation"
)

// EngineProvider resolves the current engine. Indirection through a
// function lets a dataset reload swap in a fresh engine atomically.
type EngineProvider func() *recommend.Engine

// Handler serves the recommendation API.
type Handler struct {
	engine EngineProvider
	logger zerolog.Logger
}

// NewHandler creates a Handler resolving its engine through provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(provider EngineProvider, logger zerolog.Logger) *Handler {
	return &Handler{
		engine: provider,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]interface{}{"alive": true}, time.Now())
}

// HealthReady reports whether the engine is built and serving.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	e := h.engine()
	if e == nil {
		respondError(w, http.StatusServiceUnavailable, &models.APIError{
			Code:    "NOT_READY",
			Message: "recommendation engine not ready",
		})
		return
	}
	respondData(w, map[string]interface{}{
		"ready":    true,
		"built_at": e.BuiltAt().UTC(),
	}, time.Now())
}

// GetMovie handles GET /api/v1/movies/{movieID}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	movieID, err := strconv.Atoi(chi.URLParam(r, "movieID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "movieID must be an integer",
		})
		return
	}

	params := struct {
		MovieID int `validate:"gt=0"`
	}{MovieID: movieID}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, verr)
		return
	}

	movie, err := h.engine().GetMovie(movieID)
	metrics.RecordEngineQuery("get_movie", outcomeFor(err), time.Since(started))
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondData(w, movie, started)
}

// SearchMovies handles GET /api/v1/movies/search.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "limit must be an integer",
		})
		return
	}

	params := struct {
		Query string `validate:"required"`
		Limit int    `validate:"gte=0"`
	}{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: limit,
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, verr)
		return
	}

	results := h.engine().Search(params.Query, params.Limit)
	metrics.RecordEngineQuery("search", "ok", time.Since(started))

	respondData(w, results, started)
}

// PopularMovies handles GET /api/v1/movies/popular.
func (h *Handler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "limit must be an integer",
		})
		return
	}

	params := struct {
		Limit int `validate:"gte=0"`
	}{Limit: limit}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, verr)
		return
	}

	results := h.engine().Popular(params.Limit)
	metrics.RecordEngineQuery("popular", "ok", time.Since(started))

	respondData(w, results, started)
}

// ContentBased handles GET /api/v1/recommendations/content-based.
func (h *Handler) ContentBased(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	movieID, err := queryInt(r, "movie_id", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "movie_id must be an integer",
		})
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "limit must be an integer",
		})
		return
	}

	diversity, hasDiversity, err := queryFloat(r, "diversity")
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "diversity must be a number",
		})
		return
	}

	params := struct {
		MovieID   int     `validate:"gt=0"`
		Limit     int     `validate:"gte=0"`
		Diversity float64 `validate:"gte=0,lte=1"`
	}{MovieID: movieID, Limit: limit, Diversity: diversity}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, verr)
		return
	}

	var results []recommend.ContentRecommendation
	if hasDiversity {
		results, err = h.engine().ContentBasedDiverse(params.MovieID, params.Limit, params.Diversity)
	} else {
		results, err = h.engine().ContentBased(params.MovieID, params.Limit)
	}
	metrics.RecordEngineQuery("content_based", outcomeFor(err), time.Since(started))
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondData(w, results, started)
}

// Collaborative handles GET /api/v1/recommendations/collaborative.
func (h *Handler) Collaborative(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID, err := queryInt(r, "user_id", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "user_id must be an integer",
		})
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "limit must be an integer",
		})
		return
	}

	params := struct {
		UserID int `validate:"gt=0"`
		Limit  int `validate:"gte=0"`
	}{UserID: userID, Limit: limit}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, verr)
		return
	}

	results, err := h.engine().Collaborative(params.UserID, params.Limit)
	metrics.RecordEngineQuery("collaborative", outcomeFor(err), time.Since(started))
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondData(w, results, started)
}

// Hybrid handles GET /api/v1/recommendations/hybrid. The movieId parameter
// is optional; without it the ranking degenerates to pure collaborative
// filtering.
func (h *Handler) Hybrid(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID, err := queryInt(r, "user_id", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "user_id must be an integer",
		})
		return
	}
	movieID, err := queryInt(r, "movie_id", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "movie_id must be an integer",
		})
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "limit must be an integer",
		})
		return
	}

	params := struct {
		UserID  int `validate:"gt=0"`
		MovieID int `validate:"gte=0"`
		Limit   int `validate:"gte=0"`
	}{UserID: userID, MovieID: movieID, Limit: limit}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, verr)
		return
	}

	results, err := h.engine().Hybrid(params.UserID, params.MovieID, params.Limit)
	metrics.RecordEngineQuery("hybrid", outcomeFor(err), time.Since(started))
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondData(w, results, started)
}

// respondValidationError translates a validation failure into a 400.
func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, http.StatusBadRequest, &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	})
}

// respondEngineError maps engine errors onto HTTP statuses: unknown-id
// sentinels are 404, everything else is 500. List queries answer unknown
// ids with empty results, so in practice only the catalog lookup 404s.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, ratings.ErrUnknownUser) {
		respondError(w, http.StatusNotFound, &models.APIError{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
		return
	}

	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("engine query failed")
	respondError(w, http.StatusInternalServerError, &models.APIError{
		Code:    "ENGINE_ERROR",
		Message: "internal error",
	})
}

// outcomeFor classifies an engine error for metrics labels.
func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, ratings.ErrUnknownUser):
		return "not_found"
	default:
		return "error"
	}
}
