// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelrank/reelrank/internal/cache"
	"github.com/reelrank/reelrank/internal/catalog"
	"github.com/reelrank/reelrank/internal/models"
	"github.com/reelrank/reelrank/internal/ratings"
	"github.com/reelrank/reelrank/internal/recommend/algorithms"
	"github.com/reelrank/reelrank/internal/recommend/reranking"
)

// Engine answers recommendation queries against models built once at
// construction time. It is safe for concurrent use: all model state is
// read-only after New returns.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog *catalog.Store
	matrix  *ratings.Matrix

	similarity *algorithms.SimilarityIndex
	factors    *algorithms.NMF

	// Query result caches keyed by "id:limit". The models are immutable,
	// so entries never go stale within one engine; a reload builds a new
	// engine with empty caches.
	contentCache *cache.LRU[[]ContentRecommendation]
	collabCache  *cache.LRU[[]CollabRecommendation]

	builtAt time.Time
}

// queryCacheSize bounds each per-operation result cache.
const queryCacheSize = 4096

// New builds the content and collaborative models and returns a ready
// engine. Model building is CPU-bound and can be cancelled via ctx.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(ctx context.Context, cfg *Config, store *catalog.Store, matrix *ratings.Matrix, logger zerolog.Logger) (*Engine, error) {
	e, err := newEngine(cfg, store, matrix, logger)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	e.factors = algorithms.NewNMF(algorithms.NMFConfig{
		Rank:       e.config.Rank,
		Iterations: e.config.Iterations,
		Seed:       e.config.Seed,
	})
	if err := e.factors.Fit(ctx, matrix.Cells()); err != nil {
		return nil, fmt.Errorf("factorizing rating matrix: %w", err)
	}
	e.logger.Info().
		Int("users", matrix.NumUsers()).
		Int("movies", matrix.NumMovies()).
		Int("rank", e.config.Rank).
		Int("iterations", e.config.Iterations).
		Dur("elapsed", time.Since(start)).
		Msg("trained latent factor model")

	e.builtAt = time.Now()
	return e, nil
}

// NewFromSnapshot builds an engine restoring its latent factors from a
// persisted snapshot instead of training. The snapshot's factor shape must
// match the rating matrix; a stale snapshot is an error so the caller can
// fall back to a full build.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFromSnapshot(cfg *Config, store *catalog.Store, matrix *ratings.Matrix, snap algorithms.FactorSnapshot, logger zerolog.Logger) (*Engine, error) {
	e, err := newEngine(cfg, store, matrix, logger)
	if err != nil {
		return nil, err
	}

	e.factors = algorithms.NewNMF(snap.Config)
	if err := e.factors.Restore(snap); err != nil {
		return nil, fmt.Errorf("restoring latent factor model: %w", err)
	}
	rows, cols := e.factors.Dims()
	if rows != matrix.NumUsers() || cols != matrix.NumMovies() {
		return nil, fmt.Errorf("snapshot dimensions %dx%d do not match rating matrix %dx%d",
			rows, cols, matrix.NumUsers(), matrix.NumMovies())
	}

	e.logger.Info().
		Int("users", rows).
		Int("movies", cols).
		Int("rank", e.factors.Rank()).
		Msg("restored latent factor model from snapshot")

	e.builtAt = time.Now()
	return e, nil
}

// newEngine validates inputs and builds everything except the latent
// factor model.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newEngine(cfg *Config, store *catalog.Store, matrix *ratings.Matrix, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("nil catalog store")
	}
	if matrix == nil {
		return nil, fmt.Errorf("nil rating matrix")
	}

	e := &Engine{
		config:       cfg,
		logger:       logger.With().Str("component", "recommend").Logger(),
		catalog:      store,
		matrix:       matrix,
		contentCache: cache.NewLRU[[]ContentRecommendation](queryCacheSize, time.Hour),
		collabCache:  cache.NewLRU[[]CollabRecommendation](queryCacheSize, time.Hour),
	}

	start := time.Now()
	docs := make([]string, store.Len())
	for i, m := range store.Movies() {
		docs[i] = m.Genres
	}
	vectorizer := algorithms.NewVectorizer(docs)
	e.similarity = algorithms.NewSimilarityIndex(vectorizer)
	e.logger.Info().
		Int("movies", store.Len()).
		Int("vocabulary", vectorizer.VocabularySize()).
		Dur("elapsed", time.Since(start)).
		Msg("built content similarity index")

	return e, nil
}

// FactorSnapshot exposes the fitted latent factors for persistence.
func (e *Engine) FactorSnapshot() algorithms.FactorSnapshot {
	return e.factors.Snapshot()
}

// BuiltAt returns when model building completed.
func (e *Engine) BuiltAt() time.Time {
	return e.builtAt
}

// ContentBased returns up to n movies with genre profiles most similar to
// movieID, excluding movieID itself. An unknown movieId yields an empty
// result, not an error: list queries degrade softly so callers can render
// an empty list.
func (e *Engine) ContentBased(movieID, n int) ([]ContentRecommendation, error) {
	n = e.config.clampLimit(n)

	key := fmt.Sprintf("%d:%d", movieID, n)
	if cached, ok := e.contentCache.Get(key); ok {
		return append([]ContentRecommendation(nil), cached...), nil
	}

	pos, ok := e.catalog.Position(movieID)
	if !ok {
		return []ContentRecommendation{}, nil
	}

	scored := e.similarity.SimilarTo(pos, n)
	out := make([]ContentRecommendation, len(scored))
	for i, s := range scored {
		m := e.catalog.At(s.Index)
		out[i] = ContentRecommendation{
			MovieID:    m.MovieID,
			Title:      m.Title,
			Genres:     m.Genres,
			Similarity: round3(s.Score),
		}
	}
	// Cache a clone so callers can mutate their result freely.
	e.contentCache.Add(key, append([]ContentRecommendation(nil), out...))
	return out, nil
}

// ContentBasedDiverse returns up to n content recommendations reranked
// with MMR so near-duplicate genre profiles don't crowd the list. lambda
// balances relevance against diversity; 1.0 reproduces ContentBased order.
// The rerank pool is CandidateMultiplier times larger than n, bounded by
// the configured maximum limit.
func (e *Engine) ContentBasedDiverse(movieID, n int, lambda float64) ([]ContentRecommendation, error) {
	n = e.config.clampLimit(n)

	pool, err := e.ContentBased(movieID, n*e.config.CandidateMultiplier)
	if err != nil {
		return nil, err
	}

	candidates := make([]reranking.Candidate, len(pool))
	for i, r := range pool {
		candidates[i] = reranking.Candidate{Genres: r.Genres, Score: r.Similarity}
	}

	order := reranking.NewMMR(lambda).Rerank(candidates, n)
	out := make([]ContentRecommendation, len(order))
	for i, idx := range order {
		out[i] = pool[idx]
	}
	return out, nil
}

// Collaborative returns up to n movies the user has not rated, ranked by
// the latent factor model's predicted rating. A user absent from the rating
// matrix yields an empty result, not an error. Candidates whose movieId has
// no catalog row are dropped after ranking, so fewer than n results may
// come back.
func (e *Engine) Collaborative(userID, n int) ([]CollabRecommendation, error) {
	n = e.config.clampLimit(n)

	key := fmt.Sprintf("%d:%d", userID, n)
	if cached, ok := e.collabCache.Get(key); ok {
		return append([]CollabRecommendation(nil), cached...), nil
	}

	scored, err := e.collabCandidates(userID, n)
	if err != nil {
		return nil, err
	}

	out := make([]CollabRecommendation, 0, len(scored))
	for _, s := range scored {
		m, err := e.catalog.ByID(e.matrix.MovieAt(s.Index))
		if err != nil {
			continue
		}
		out = append(out, CollabRecommendation{
			MovieID:         m.MovieID,
			Title:           m.Title,
			Genres:          m.Genres,
			PredictedRating: round2(s.Score),
		})
	}
	e.collabCache.Add(key, append([]CollabRecommendation(nil), out...))
	return out, nil
}

// collabCandidates ranks the user's unrated matrix columns by raw
// predicted rating and returns the top n. The sort is stable, so equal
// predictions keep ascending movieId order. An unknown user yields no
// candidates. Rounding is left to result construction.
func (e *Engine) collabCandidates(userID, n int) ([]algorithms.ScoredIndex, error) {
	row, ok := e.matrix.UserRow(userID)
	if !ok {
		return nil, nil
	}

	preds := e.factors.PredictRow(row)
	cols, err := e.matrix.UnratedColumns(userID)
	if err != nil {
		return nil, err
	}

	scored := make([]algorithms.ScoredIndex, len(cols))
	for i, col := range cols {
		scored[i] = algorithms.ScoredIndex{Index: col, Score: preds[col]}
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}

// hybridEntry accumulates per-movie component scores during the hybrid
// merge.
type hybridEntry struct {
	movieID int
	cf      float64
	cb      float64
	hasCF   bool
	hasCB   bool
}

// Hybrid blends collaborative and content-based candidates into a single
// ranking for the user. Each source contributes CandidateMultiplier * n
// candidates; the blend score is CFWeight*cf + CBWeight*cb with a missing
// component treated as zero. Collaborative candidates are merged first, so
// at equal blend scores they rank ahead of content-only candidates.
//
// movieID anchors the content component. Pass movieID <= 0 to skip it; the
// ranking then degenerates to the collaborative prediction carried into the
// hybrid result shape. Unknown ids degrade softly: an unknown user leaves
// only the content side, an unknown anchor movie leaves only the
// collaborative side, and both unknown yields an empty result.
func (e *Engine) Hybrid(userID, movieID, n int) ([]HybridRecommendation, error) {
	n = e.config.clampLimit(n)
	pool := n * e.config.CandidateMultiplier

	cf, err := e.collabCandidates(userID, pool)
	if err != nil {
		return nil, err
	}

	if movieID <= 0 {
		return e.hybridFromCollabOnly(cf, n), nil
	}

	// An unknown anchor movie contributes an empty content side; the
	// merge then carries collaborative candidates at CFWeight alone.
	var cb []algorithms.ScoredIndex
	if pos, ok := e.catalog.Position(movieID); ok {
		cb = e.similarity.SimilarTo(pos, pool)
	}

	// Two-pass ordered merge keyed by movieId.
	entries := make([]hybridEntry, 0, len(cf)+len(cb))
	index := make(map[int]int, len(cf)+len(cb))

	for _, s := range cf {
		id := e.matrix.MovieAt(s.Index)
		index[id] = len(entries)
		entries = append(entries, hybridEntry{movieID: id, cf: s.Score, hasCF: true})
	}
	for _, s := range cb {
		id := e.catalog.At(s.Index).MovieID
		if i, ok := index[id]; ok {
			entries[i].cb = s.Score
			entries[i].hasCB = true
			continue
		}
		index[id] = len(entries)
		entries = append(entries, hybridEntry{movieID: id, cb: s.Score, hasCB: true})
	}

	// Rank on the raw blend, then round for presentation.
	ranked := entries[:0]
	for _, en := range entries {
		if _, ok := e.catalog.Position(en.movieID); ok {
			ranked = append(ranked, en)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return e.blend(ranked[a]) > e.blend(ranked[b])
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]HybridRecommendation, 0, len(ranked))
	for _, en := range ranked {
		m, err := e.catalog.ByID(en.movieID)
		if err != nil {
			continue
		}
		out = append(out, HybridRecommendation{
			MovieID:     m.MovieID,
			Title:       m.Title,
			Genres:      m.Genres,
			CFScore:     round2(en.cf),
			CBScore:     round3(en.cb),
			HybridScore: round2(e.blend(en)),
		})
	}
	return out, nil
}

// blend computes the raw hybrid score of an entry.
func (e *Engine) blend(en hybridEntry) float64 {
	return e.config.CFWeight*en.cf + e.config.CBWeight*en.cb
}

// hybridFromCollabOnly carries pure collaborative predictions into the
// hybrid result shape: the predicted rating stands as both the CF component
// and the blend score.
func (e *Engine) hybridFromCollabOnly(cf []algorithms.ScoredIndex, n int) []HybridRecommendation {
	if len(cf) > n {
		cf = cf[:n]
	}

	out := make([]HybridRecommendation, 0, len(cf))
	for _, s := range cf {
		m, err := e.catalog.ByID(e.matrix.MovieAt(s.Index))
		if err != nil {
			continue
		}
		out = append(out, HybridRecommendation{
			MovieID:     m.MovieID,
			Title:       m.Title,
			Genres:      m.Genres,
			CFScore:     round2(s.Score),
			HybridScore: round2(s.Score),
		})
	}
	return out
}

// Popular returns up to n movies ranked by rating count descending, ties
// broken by ascending movieId. Mean ratings are rounded to two decimal
// places. Movies absent from the catalog are dropped after ranking.
func (e *Engine) Popular(n int) []PopularMovie {
	n = e.config.clampLimit(n)

	stats := e.matrix.Stats()
	ranked := make([]ratings.MovieStats, len(stats))
	copy(ranked, stats)

	// Stats come in ascending movieId order, so a stable sort on count
	// yields the tie-break for free.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Count > ranked[b].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]PopularMovie, 0, len(ranked))
	for _, s := range ranked {
		m, err := e.catalog.ByID(s.MovieID)
		if err != nil {
			continue
		}
		out = append(out, PopularMovie{
			MovieID:     m.MovieID,
			Title:       m.Title,
			Genres:      m.Genres,
			RatingCount: s.Count,
			MeanRating:  round2(s.Mean),
		})
	}
	return out
}

// Search returns up to n catalog movies whose title or genre string
// contains the query, case-insensitively, in catalog order.
func (e *Engine) Search(query string, n int) []models.Movie {
	return e.catalog.Search(query, e.config.clampLimit(n))
}

// GetMovie returns the catalog row of movieID. Returns catalog.ErrNotFound
// (wrapped) for an unknown movie.
func (e *Engine) GetMovie(movieID int) (models.Movie, error) {
	return e.catalog.ByID(movieID)
}

// round2 rounds to two decimal places, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// round3 rounds to three decimal places, half away from zero.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
