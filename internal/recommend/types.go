// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"context"

	"github.com/tomtom215/cinelens/internal/catalog"
)

// Source identifies which model produced a result.
type Source string

// Result sources. Hybrid marks results with contributions from both
// models.
const (
	SourceCollaborative Source = "collaborative"
	SourceContent       Source = "content"
	SourceHybrid        Source = "hybrid"
)

// Scored is a bare (movie, score) pair produced by a model. Scores
// are model-relative and only comparable within one list.
type Scored struct {
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// Result is a fully materialized recommendation returned to callers.
// Ephemeral, produced per request, never persisted.
type Result struct {
	MovieID     int      `json:"movie_id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	MeanRating  float64  `json:"mean_rating"`
	RatingCount int      `json:"rating_count"`
	Score       float64  `json:"score"`
	Source      Source   `json:"source"`
}

// Request describes a recommendation query. At least one of UserID
// and MovieID must be set; with both set, Weight controls the blend
// between collaborative (1.0) and content (0.0) signals.
type Request struct {
	UserID  *int    `json:"user_id,omitempty"`
	MovieID *int    `json:"movie_id,omitempty"`
	Weight  float64 `json:"weight"`
	N       int     `json:"n"`
}

// UserModel scores candidate movies for a user. Implementations are
// immutable after Build and safe for concurrent reads.
type UserModel interface {
	// Name identifies the model in logs and cache keys.
	Name() string

	// Fingerprint digests the model parameters. Together with the
	// catalog fingerprint it uniquely keys derived cache entries.
	Fingerprint() string

	// Build fits the model to the catalog. Called once per snapshot,
	// before the model is published.
	Build(ctx context.Context, c *catalog.Catalog) error

	// Recommend returns up to n movies the user has not rated,
	// ordered by descending predicted score, ties by ascending
	// movie id.
	Recommend(userID, n int) ([]Scored, error)
}

// ItemModel scores movies by similarity to an anchor movie.
// Implementations are immutable after Build and safe for concurrent
// reads.
type ItemModel interface {
	Name() string
	Fingerprint() string
	Build(ctx context.Context, c *catalog.Catalog) error

	// Recommend returns up to n movies similar to the anchor,
	// excluding the anchor itself, ordered by descending similarity
	// with rating count as the popularity tie-break.
	Recommend(movieID, n int) ([]Scored, error)
}

// Factories construct fresh model instances for each snapshot build.
type Factories struct {
	Collaborative func() UserModel
	Content       func() ItemModel
}
