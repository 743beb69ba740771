// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tomtom215/cinelens/internal/config"
	"github.com/tomtom215/cinelens/internal/middleware"
	"github.com/tomtom215/cinelens/internal/recommend"
)

// Router wires handlers and middleware into an http.Handler.
type Router struct {
	handler *Handler
	cfg     config.APIConfig
}

// NewRouter creates a router serving the given engine.
func NewRouter(engine *recommend.Engine, cfg config.APIConfig) *Router {
	return &Router{
		handler: NewHandler(engine),
		cfg:     cfg,
	}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware stack, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints stay outside rate limiting so orchestrators can
	// probe freely.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if !router.cfg.RateLimitDisabled {
			r.Use(httprate.LimitByIP(router.cfg.RateLimitReqs, router.cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/user/{userID}", router.handler.RecommendForUser)
			r.Get("/similar/{movieID}", router.handler.SimilarMovies)
			r.Get("/hybrid", router.handler.HybridRecommendations)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/random", router.handler.RandomMovie)
			r.Get("/top-rated", router.handler.TopRatedMovie)
			r.Get("/{movieID}", router.handler.GetMovie)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/most-active", router.handler.MostActiveUser)
			r.Get("/random", router.handler.RandomUser)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/genres", router.handler.AnalyticsGenres)
			r.Get("/ratings", router.handler.AnalyticsRatings)
			r.Get("/genre-means", router.handler.AnalyticsGenreMeans)
			r.Get("/user-activity", router.handler.AnalyticsUserActivity)
			r.Get("/popularity", router.handler.AnalyticsPopularity)
		})

		r.Get("/stats", router.handler.Stats)
		r.Post("/reload", router.handler.Reload)
	})

	// Observability
	r.Handle("/metrics", promhttp.Handler())

	return r
}
