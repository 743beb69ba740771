// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend_test

import (
	"bytes"
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/tomtom215/cinelens/internal/cache"
	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/logging"
	"github.com/tomtom215/cinelens/internal/recommend"
	"github.com/tomtom215/cinelens/internal/recommend/algorithms"
)

// newRealEngine wires the engine with the real SVD and TF-IDF models
// over a six-movie fixture.
func newRealEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	loader := func(_ context.Context) (*catalog.Catalog, error) {
		return catalog.New(
			[]catalog.Movie{
				{ID: 1, Title: "Alpha", Genres: []string{"Action", "Thriller"}},
				{ID: 2, Title: "Bravo", Genres: []string{"Action"}},
				{ID: 3, Title: "Charlie", Genres: []string{"Action", "Thriller"}},
				{ID: 4, Title: "Delta", Genres: []string{"Comedy"}},
				{ID: 5, Title: "Echo", Genres: []string{"Comedy", "Romance"}},
				{ID: 6, Title: "Foxtrot", Genres: []string{"Romance"}},
			},
			[]catalog.Rating{
				{UserID: 1, MovieID: 1, Score: 5},
				{UserID: 1, MovieID: 2, Score: 4},
				{UserID: 2, MovieID: 1, Score: 5},
				{UserID: 2, MovieID: 2, Score: 4},
				{UserID: 2, MovieID: 3, Score: 5},
				{UserID: 2, MovieID: 4, Score: 2},
				{UserID: 3, MovieID: 3, Score: 4},
				{UserID: 3, MovieID: 5, Score: 5},
			},
		)
	}
	e, err := recommend.NewEngine(recommend.DefaultConfig(), loader, recommend.Factories{
		Collaborative: func() recommend.UserModel {
			return algorithms.NewCollaborative(algorithms.DefaultCollaborativeConfig())
		},
		Content: func() recommend.ItemModel { return algorithms.NewContent() },
	}, cache.NewResultCache(256, 0), logging.NewTestLogger(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := e.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return e
}

func resultIDs(results []recommend.Result) []int {
	ids := make([]int, len(results))
	for i, r := range results {
		ids[i] = r.MovieID
	}
	return ids
}

func intPtr(v int) *int { return &v }

func TestHybridWeightBoundaries(t *testing.T) {
	e := newRealEngine(t)
	ctx := context.Background()

	collabOnly, err := e.Recommend(ctx, recommend.Request{UserID: intPtr(1), N: 2})
	if err != nil {
		t.Fatalf("collaborative Recommend() error = %v", err)
	}
	contentOnly, err := e.Recommend(ctx, recommend.Request{MovieID: intPtr(1), N: 2})
	if err != nil {
		t.Fatalf("content Recommend() error = %v", err)
	}

	fullCollab, err := e.Recommend(ctx, recommend.Request{
		UserID: intPtr(1), MovieID: intPtr(1), Weight: 1.0, N: 2,
	})
	if err != nil {
		t.Fatalf("hybrid weight=1 Recommend() error = %v", err)
	}
	if !reflect.DeepEqual(resultIDs(fullCollab), resultIDs(collabOnly)) {
		t.Errorf("hybrid weight=1 ids = %v, want collaborative ids %v",
			resultIDs(fullCollab), resultIDs(collabOnly))
	}

	fullContent, err := e.Recommend(ctx, recommend.Request{
		UserID: intPtr(1), MovieID: intPtr(1), Weight: 0.0, N: 2,
	})
	if err != nil {
		t.Fatalf("hybrid weight=0 Recommend() error = %v", err)
	}
	if !reflect.DeepEqual(resultIDs(fullContent), resultIDs(contentOnly)) {
		t.Errorf("hybrid weight=0 ids = %v, want content ids %v",
			resultIDs(fullContent), resultIDs(contentOnly))
	}
}

func TestHybridNoDuplicatesAndSources(t *testing.T) {
	e := newRealEngine(t)

	got, err := e.Recommend(context.Background(), recommend.Request{
		UserID: intPtr(1), MovieID: intPtr(1), Weight: 0.5, N: 5,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("Recommend() returned no results")
	}

	seen := make(map[int]bool)
	for _, r := range got {
		if seen[r.MovieID] {
			t.Errorf("duplicate movie id %d", r.MovieID)
		}
		seen[r.MovieID] = true
		switch r.Source {
		case recommend.SourceCollaborative, recommend.SourceContent, recommend.SourceHybrid:
		default:
			t.Errorf("movie %d has unexpected source %q", r.MovieID, r.Source)
		}
	}
}

func TestReloadIdempotent(t *testing.T) {
	e := newRealEngine(t)
	ctx := context.Background()

	req := recommend.Request{UserID: intPtr(1), MovieID: intPtr(1), Weight: 0.5, N: 3}
	before, err := e.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if err := e.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	after, err := e.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("Recommend() after reload error = %v", err)
	}

	if !reflect.DeepEqual(before, after) {
		t.Errorf("identical data reload changed results:\nbefore %v\nafter  %v", before, after)
	}
}

func TestConcurrentRecommendations(t *testing.T) {
	e := newRealEngine(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				req := recommend.Request{UserID: intPtr(1 + i%3), N: 3}
				if j%2 == 1 {
					req = recommend.Request{MovieID: intPtr(1 + j%6), N: 3, Weight: 0}
				}
				if _, err := e.Recommend(ctx, req); err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Recommend() error = %v", err)
	}
}
