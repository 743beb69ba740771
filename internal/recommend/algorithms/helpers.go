// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/cinelens/internal/recommend"
)

// ContextCancelled returns the context's error if it has been
// cancelled, nil otherwise. Long-running fits call this between
// iterations so a dying process does not finish a doomed build.
func ContextCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// dot computes the dot product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// sortCandidates orders candidates by descending score, ties broken
// by ascending movie id for determinism.
func sortCandidates(items []recommend.Scored) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].MovieID < items[j].MovieID
	})
}
