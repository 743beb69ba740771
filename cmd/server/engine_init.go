// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package main

import (
	"context"

	"github.com/tomtom215/cinelens/internal/cache"
	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/config"
	"github.com/tomtom215/cinelens/internal/logging"
	"github.com/tomtom215/cinelens/internal/recommend"
	"github.com/tomtom215/cinelens/internal/recommend/algorithms"
)

// buildEngine wires the recommendation engine from configuration: the
// catalog loader over the configured dataset files, the model
// factories, and the shared result cache.
func buildEngine(cfg *config.Config) (*recommend.Engine, error) {
	loader := func(ctx context.Context) (*catalog.Catalog, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return catalog.Load(cfg.Data.MovieFile, cfg.Data.RatingFile)
	}

	svd := cfg.Recommend.SVD
	factories := recommend.Factories{
		Collaborative: func() recommend.UserModel {
			return algorithms.NewCollaborative(algorithms.CollaborativeConfig{
				Factors:    svd.Factors,
				Iterations: svd.Iterations,
				Seed:       svd.Seed,
			})
		},
		Content: func() recommend.ItemModel {
			return algorithms.NewContent()
		},
	}

	engineCfg := recommend.Config{
		DefaultN:            cfg.Recommend.Limits.DefaultN,
		MaxN:                cfg.Recommend.Limits.MaxN,
		CandidateMultiplier: cfg.Recommend.Hybrid.CandidateMultiplier,
		DefaultWeight:       cfg.Recommend.Hybrid.DefaultWeight,
		CacheEnabled:        cfg.Recommend.Cache.Enabled,
	}

	rc := cache.NewResultCache(cfg.Recommend.Cache.MaxEntries, cfg.Recommend.Cache.TTL)

	return recommend.NewEngine(engineCfg, loader, factories, rc, logging.Logger())
}
