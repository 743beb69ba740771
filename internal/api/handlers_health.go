// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package api

import (
	"net/http"

	"github.com/tomtom215/cinelens/internal/logging"
	"github.com/tomtom215/cinelens/internal/metrics"
)

// HealthLive handles GET /api/v1/health/live.
// Liveness only says the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"status": "alive",
	})
}

// HealthReady handles GET /api/v1/health/ready.
// Readiness requires a loaded catalog snapshot.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if !h.engine.Ready() {
		rw.ServiceUnavailable("Catalog not loaded yet")
		return
	}

	rw.Success(map[string]interface{}{
		"status": "ready",
	})
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !h.engine.Ready() {
		status = "starting"
	}

	WriteSuccess(w, r, map[string]interface{}{
		"status": status,
		"ready":  h.engine.Ready(),
	})
}

// Stats handles GET /api/v1/stats.
// Returns catalog, cache, and reload statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	stats, err := h.engine.Stats()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	metrics.UpdateCacheStats(stats.Cache.Hits, stats.Cache.Misses, stats.Cache.Size)
	rw.Success(stats)
}

// Reload handles POST /api/v1/reload.
// Reloads the catalog and rebuilds both models. Concurrent reloads are
// rejected with 409; a failed reload keeps the previous snapshot serving.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := h.engine.Reload(r.Context()); err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	stats, err := h.engine.Stats()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	metrics.RecordCatalogReload(stats.Catalog.Movies, stats.Catalog.Users,
		stats.Catalog.Ratings, stats.Catalog.DroppedRatings)
	logging.Ctx(r.Context()).Info().
		Int("movies", stats.Catalog.Movies).
		Int("ratings", stats.Catalog.Ratings).
		Msg("Catalog reloaded via API")

	rw.Success(stats)
}
