// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinelens/internal/cache"
	"github.com/tomtom215/cinelens/internal/catalog"
)

// Config controls engine behavior.
type Config struct {
	// DefaultN is the result count used when a request leaves N unset
	// at the API layer.
	DefaultN int

	// MaxN caps the result count per request, bounding the candidate
	// lists and therefore per-request cost.
	MaxN int

	// CandidateMultiplier sizes the oversized per-model candidate
	// lists fetched for hybrid blending (N * CandidateMultiplier
	// from each model, to survive deduplication).
	CandidateMultiplier int

	// DefaultWeight is the blend weight used when a hybrid request
	// does not specify one. 1.0 is fully collaborative, 0.0 fully
	// content-based.
	DefaultWeight float64

	// CacheEnabled toggles memoization of model builds and
	// recommendation lists.
	CacheEnabled bool
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		DefaultN:            10,
		MaxN:                100,
		CandidateMultiplier: 2,
		DefaultWeight:       0.5,
		CacheEnabled:        true,
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.DefaultN <= 0 {
		c.DefaultN = def.DefaultN
	}
	if c.MaxN <= 0 {
		c.MaxN = def.MaxN
	}
	if c.CandidateMultiplier < 1 {
		c.CandidateMultiplier = def.CandidateMultiplier
	}
	if c.DefaultWeight < 0 || c.DefaultWeight > 1 {
		c.DefaultWeight = def.DefaultWeight
	}
}

// CatalogLoader loads a fresh catalog from the configured sources.
type CatalogLoader func(ctx context.Context) (*catalog.Catalog, error)

// snapshot is the immutable unit of engine state: one catalog version
// with its built models. Published atomically; never mutated after
// publication.
type snapshot struct {
	catalog  *catalog.Catalog
	collab   UserModel
	content  ItemModel
	loadedAt time.Time
}

// Stats summarizes engine state for stats endpoints.
type Stats struct {
	Catalog  catalog.Stats `json:"catalog"`
	Cache    cache.Stats   `json:"cache"`
	Reloads  int64         `json:"reloads"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// Engine answers recommendation requests against an immutable
// snapshot of the catalog and its models. Safe for concurrent use;
// Reload swaps snapshots atomically while requests in flight keep the
// snapshot they captured.
type Engine struct {
	cfg       Config
	loader    CatalogLoader
	factories Factories
	cache     *cache.ResultCache
	logger    zerolog.Logger

	snap     atomic.Pointer[snapshot]
	reloadMu sync.Mutex
	reloads  atomic.Int64
}

// NewEngine creates an engine. The engine is not ready until the
// first successful Reload.
func NewEngine(cfg Config, loader CatalogLoader, factories Factories, rc *cache.ResultCache, logger zerolog.Logger) (*Engine, error) {
	if loader == nil {
		return nil, fmt.Errorf("catalog loader is required")
	}
	if factories.Collaborative == nil || factories.Content == nil {
		return nil, fmt.Errorf("both model factories are required")
	}
	if rc == nil {
		return nil, fmt.Errorf("result cache is required")
	}
	cfg.normalize()
	return &Engine{
		cfg:       cfg,
		loader:    loader,
		factories: factories,
		cache:     rc,
		logger:    logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Config returns the engine configuration after normalization.
func (e *Engine) Config() Config { return e.cfg }

// Ready reports whether the engine has a loaded snapshot.
func (e *Engine) Ready() bool { return e.snap.Load() != nil }

// Reload loads the catalog and builds both models, then atomically
// swaps the new snapshot in and drops derived cache entries. On any
// failure the previous snapshot stays in place untouched.
//
// Only one reload runs at a time; concurrent calls fail fast with
// ErrReloadInProgress.
func (e *Engine) Reload(ctx context.Context) error {
	if !e.reloadMu.TryLock() {
		return ErrReloadInProgress
	}
	defer e.reloadMu.Unlock()

	start := time.Now()
	cat, err := e.loader(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	collab, err := e.buildUserModel(ctx, cat)
	if err != nil {
		return err
	}
	content, err := e.buildItemModel(ctx, cat)
	if err != nil {
		return err
	}

	e.snap.Store(&snapshot{
		catalog:  cat,
		collab:   collab,
		content:  content,
		loadedAt: time.Now(),
	})
	// Entries for the previous snapshot are keyed by its fingerprint
	// and would never be requested again; drop them eagerly.
	e.cache.Clear()
	e.reloads.Add(1)

	stats := cat.Stats()
	e.logger.Info().
		Str("catalog_fingerprint", cat.Fingerprint()[:12]).
		Int("movies", stats.Movies).
		Int("users", stats.Users).
		Int("ratings", stats.Ratings).
		Dur("duration", time.Since(start)).
		Msg("Snapshot reloaded")
	return nil
}

// buildUserModel constructs and fits a fresh collaborative model.
// The fit goes through the cache so concurrent reloads against the
// same catalog version factorize once.
func (e *Engine) buildUserModel(ctx context.Context, cat *catalog.Catalog) (UserModel, error) {
	m := e.factories.Collaborative()
	build := func() (any, error) {
		start := time.Now()
		if err := m.Build(ctx, cat); err != nil {
			return nil, err
		}
		e.logger.Debug().
			Str("model", m.Name()).
			Dur("duration", time.Since(start)).
			Msg("Model built")
		return m, nil
	}

	if !e.cfg.CacheEnabled {
		if _, err := build(); err != nil {
			return nil, fmt.Errorf("build %s model: %w", m.Name(), err)
		}
		return m, nil
	}

	key := cache.Fingerprint("model:"+m.Name(), cat.Fingerprint(), m.Fingerprint())
	v, err := e.cache.GetOrCompute(key, build)
	if err != nil {
		return nil, fmt.Errorf("build %s model: %w", m.Name(), err)
	}
	return v.(UserModel), nil
}

// buildItemModel constructs and fits a fresh content model.
func (e *Engine) buildItemModel(ctx context.Context, cat *catalog.Catalog) (ItemModel, error) {
	m := e.factories.Content()
	build := func() (any, error) {
		start := time.Now()
		if err := m.Build(ctx, cat); err != nil {
			return nil, err
		}
		e.logger.Debug().
			Str("model", m.Name()).
			Dur("duration", time.Since(start)).
			Msg("Model built")
		return m, nil
	}

	if !e.cfg.CacheEnabled {
		if _, err := build(); err != nil {
			return nil, fmt.Errorf("build %s model: %w", m.Name(), err)
		}
		return m, nil
	}

	key := cache.Fingerprint("model:"+m.Name(), cat.Fingerprint(), m.Fingerprint())
	v, err := e.cache.GetOrCompute(key, build)
	if err != nil {
		return nil, fmt.Errorf("build %s model: %w", m.Name(), err)
	}
	return v.(ItemModel), nil
}

// Recommend answers a request against the current snapshot. Request
// failures are local: they never corrupt cached state or affect other
// requests.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]Result, error) {
	snap := e.snap.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case req.UserID != nil && req.MovieID != nil:
		return e.hybrid(snap, *req.UserID, *req.MovieID, req.Weight, req.N)
	case req.UserID != nil:
		scored, err := e.userScores(snap, *req.UserID, req.N)
		if err != nil {
			return nil, err
		}
		return materialize(snap.catalog, scored, SourceCollaborative), nil
	default:
		scored, err := e.itemScores(snap, *req.MovieID, req.N)
		if err != nil {
			return nil, err
		}
		return materialize(snap.catalog, scored, SourceContent), nil
	}
}

// validateRequest rejects malformed requests before any computation.
func validateRequest(req Request) error {
	if req.UserID == nil && req.MovieID == nil {
		return &InvalidRequestError{Reason: "either user_id or movie_id must be provided"}
	}
	if req.Weight < 0 || req.Weight > 1 {
		return &InvalidRequestError{Reason: fmt.Sprintf("weight %g outside [0,1]", req.Weight)}
	}
	if req.N <= 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("n must be positive, got %d", req.N)}
	}
	return nil
}

// hybrid fetches oversized candidate lists from both models and
// blends them. A weight of 1.0 reproduces the collaborative ranking,
// 0.0 the content ranking.
func (e *Engine) hybrid(snap *snapshot, userID, movieID int, weight float64, n int) ([]Result, error) {
	candN := n * e.cfg.CandidateMultiplier

	collab, err := e.userScores(snap, userID, candN)
	if err != nil {
		return nil, err
	}
	content, err := e.itemScores(snap, movieID, candN)
	if err != nil {
		return nil, err
	}

	blended := blendCandidates(collab, content, weight, n)
	out := make([]Result, 0, len(blended))
	for _, b := range blended {
		m, ok := snap.catalog.Movie(b.MovieID)
		if !ok {
			continue
		}
		out = append(out, Result{
			MovieID:     m.ID,
			Title:       m.Title,
			Genres:      m.Genres,
			MeanRating:  m.MeanRating,
			RatingCount: m.RatingCount,
			Score:       b.Score,
			Source:      b.Source,
		})
	}
	return out, nil
}

// userScores returns the collaborative candidate list, memoized per
// (catalog version, model parameters, user, n).
func (e *Engine) userScores(snap *snapshot, userID, n int) ([]Scored, error) {
	if !e.cfg.CacheEnabled {
		return snap.collab.Recommend(userID, n)
	}
	key := cache.Fingerprint("recs:"+snap.collab.Name(),
		snap.catalog.Fingerprint(), snap.collab.Fingerprint(), userID, n)
	v, err := e.cache.GetOrCompute(key, func() (any, error) {
		scored, err := snap.collab.Recommend(userID, n)
		if err != nil {
			return nil, err
		}
		return scored, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Scored), nil
}

// itemScores returns the content candidate list, memoized per
// (catalog version, model parameters, movie, n).
func (e *Engine) itemScores(snap *snapshot, movieID, n int) ([]Scored, error) {
	if !e.cfg.CacheEnabled {
		return snap.content.Recommend(movieID, n)
	}
	key := cache.Fingerprint("recs:"+snap.content.Name(),
		snap.catalog.Fingerprint(), snap.content.Fingerprint(), movieID, n)
	v, err := e.cache.GetOrCompute(key, func() (any, error) {
		scored, err := snap.content.Recommend(movieID, n)
		if err != nil {
			return nil, err
		}
		return scored, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Scored), nil
}

// materialize resolves scored ids into full results using the
// snapshot's catalog.
func materialize(c *catalog.Catalog, items []Scored, src Source) []Result {
	out := make([]Result, 0, len(items))
	for _, it := range items {
		m, ok := c.Movie(it.MovieID)
		if !ok {
			continue
		}
		out = append(out, Result{
			MovieID:     m.ID,
			Title:       m.Title,
			Genres:      m.Genres,
			MeanRating:  m.MeanRating,
			RatingCount: m.RatingCount,
			Score:       it.Score,
			Source:      src,
		})
	}
	return out
}

// Catalog returns the current snapshot's catalog for read-only
// analytics queries.
func (e *Engine) Catalog() (*catalog.Catalog, error) {
	snap := e.snap.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap.catalog, nil
}

// Stats returns engine statistics for the stats endpoint.
func (e *Engine) Stats() (Stats, error) {
	snap := e.snap.Load()
	if snap == nil {
		return Stats{}, ErrNotReady
	}
	return Stats{
		Catalog:  snap.catalog.Stats(),
		Cache:    e.cache.Stats(),
		Reloads:  e.reloads.Load(),
		LoadedAt: snap.loadedAt,
	}, nil
}
