// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for production observability:
// - API endpoint latency and throughput
// - Recommendation request outcomes per source
// - Model build cost
// - Result cache efficiency
// - Catalog size and load cost

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by source",
		},
		[]string{"source"}, // "collaborative", "content", "hybrid"
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"reason"}, // "unknown_user", "unknown_movie", "invalid_request", "internal"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Model Metrics
	ModelBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_build_duration_seconds",
			Help:    "Model fit duration per catalog reload in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"model"}, // "collaborative", "content"
	)

	CatalogReloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Total number of successful catalog reloads",
		},
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the current catalog snapshot",
		},
	)

	CatalogUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_users",
			Help: "Number of users in the current catalog snapshot",
		},
	)

	CatalogRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_ratings",
			Help: "Number of ratings in the current catalog snapshot",
		},
	)

	CatalogDroppedRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_dropped_ratings",
			Help: "Ratings dropped at load for referencing unknown movies",
		},
	)

	// Result Cache Metrics. The cache keeps its own absolute
	// counters; they are mirrored into gauges on update.
	CacheHits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_hits",
			Help: "Cumulative result cache hits as reported by the cache",
		},
	)

	CacheMisses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_misses",
			Help: "Cumulative result cache misses as reported by the cache",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Current number of cached results",
		},
	)
)

// RecordAPIRequest records an API request with its outcome and
// duration.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records a completed recommendation request.
func RecordRecommendation(source string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(source).Inc()
	RecommendationDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordRecommendationError records a failed recommendation request.
func RecordRecommendationError(reason string) {
	RecommendationErrors.WithLabelValues(reason).Inc()
}

// RecordModelBuild records a model fit.
func RecordModelBuild(model string, duration time.Duration) {
	ModelBuildDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordCatalogReload updates catalog gauges after a successful
// reload.
func RecordCatalogReload(movies, users, ratings, dropped int) {
	CatalogReloads.Inc()
	CatalogMovies.Set(float64(movies))
	CatalogUsers.Set(float64(users))
	CatalogRatings.Set(float64(ratings))
	CatalogDroppedRatings.Set(float64(dropped))
}

// UpdateCacheStats mirrors the cache's absolute counters into the
// gauges. Called whenever stats are read.
func UpdateCacheStats(hits, misses int64, entries int) {
	CacheHits.Set(float64(hits))
	CacheMisses.Set(float64(misses))
	CacheEntries.Set(float64(entries))
}

// TrackActiveRequest increments or decrements the active request
// gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
