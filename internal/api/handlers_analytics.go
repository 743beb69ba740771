// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package api

import (
	"net/http"
	"strconv"
)

// AnalyticsGenres handles GET /api/v1/analytics/genres.
// Returns genre frequencies across the catalog, most common first.
func (h *Handler) AnalyticsGenres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	rw.Success(map[string]interface{}{
		"genres": cat.GenreFrequencies(),
	})
}

// AnalyticsRatings handles GET /api/v1/analytics/ratings.
// Returns the score distribution histogram.
func (h *Handler) AnalyticsRatings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	rw.Success(map[string]interface{}{
		"histogram": cat.RatingHistogram(),
	})
}

// AnalyticsGenreMeans handles GET /api/v1/analytics/genre-means.
// Returns mean rating per genre, best first.
func (h *Handler) AnalyticsGenreMeans(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	rw.Success(map[string]interface{}{
		"genre_means": cat.GenreMeanRatings(),
	})
}

// AnalyticsUserActivity handles GET /api/v1/analytics/user-activity.
// Returns rating counts per user, most active first.
func (h *Handler) AnalyticsUserActivity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	rw.Success(map[string]interface{}{
		"users": cat.UserActivity(),
	})
}

// AnalyticsPopularity handles GET /api/v1/analytics/popularity.
// Returns rating count and mean score per movie for popularity scatter
// plots. The min_count query parameter filters out sparsely rated movies.
func (h *Handler) AnalyticsPopularity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	minCount := 1
	if mcStr := r.URL.Query().Get("min_count"); mcStr != "" {
		mc, err := strconv.Atoi(mcStr)
		if err != nil || mc < 1 {
			rw.BadRequest("min_count must be a positive integer")
			return
		}
		minCount = mc
	}

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	rw.Success(map[string]interface{}{
		"points":    cat.PopularityPoints(minCount),
		"min_count": minCount,
	})
}
