// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package api

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tomtom215/cinelens/internal/logging"
	"github.com/tomtom215/cinelens/internal/metrics"
	"github.com/tomtom215/cinelens/internal/recommend"
	"github.com/tomtom215/cinelens/internal/validation"
)

// Handler serves the recommendation and catalog endpoints.
type Handler struct {
	engine *recommend.Engine

	// rand.Rand is not safe for concurrent use
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler creates a handler backed by the given engine.
func NewHandler(engine *recommend.Engine) *Handler {
	return &Handler{
		engine: engine,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // sampling, not crypto
	}
}

// recommendParams holds the query parameters shared by recommendation
// endpoints. N is clamped to the engine's MaxN after validation.
type recommendParams struct {
	N      int     `validate:"min=1"`
	Weight float64 `validate:"min=0,max=1"`
}

// parseRecommendParams reads n and weight from the query string,
// applying engine defaults for absent values.
func (h *Handler) parseRecommendParams(r *http.Request) (recommendParams, error) {
	cfg := h.engine.Config()
	params := recommendParams{
		N:      cfg.DefaultN,
		Weight: cfg.DefaultWeight,
	}

	if nStr := r.URL.Query().Get("n"); nStr != "" {
		n, err := strconv.Atoi(nStr)
		if err != nil {
			return params, errors.New("n must be an integer")
		}
		params.N = n
	}
	if wStr := r.URL.Query().Get("weight"); wStr != "" {
		w, err := strconv.ParseFloat(wStr, 64)
		if err != nil {
			return params, errors.New("weight must be a number")
		}
		params.Weight = w
	}
	return params, nil
}

// RecommendForUser handles GET /api/v1/recommendations/user/{userID}.
// Returns collaborative-filtering recommendations for a user.
func (h *Handler) RecommendForUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		rw.BadRequest("Invalid user ID")
		return
	}

	params, err := h.parseRecommendParams(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	start := time.Now()
	results, err := h.engine.Recommend(r.Context(), recommend.Request{
		UserID: &userID,
		Weight: params.Weight,
		N:      h.clampN(params.N),
	})
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	metrics.RecordRecommendation(string(recommend.SourceCollaborative), time.Since(start))
	rw.Success(map[string]interface{}{
		"user_id": userID,
		"results": results,
		"count":   len(results),
	})
}

// SimilarMovies handles GET /api/v1/recommendations/similar/{movieID}.
// Returns movies with similar genre profiles.
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movieID, err := strconv.Atoi(chi.URLParam(r, "movieID"))
	if err != nil {
		rw.BadRequest("Invalid movie ID")
		return
	}

	params, err := h.parseRecommendParams(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	start := time.Now()
	results, err := h.engine.Recommend(r.Context(), recommend.Request{
		MovieID: &movieID,
		Weight:  params.Weight,
		N:       h.clampN(params.N),
	})
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	metrics.RecordRecommendation(string(recommend.SourceContent), time.Since(start))
	rw.Success(map[string]interface{}{
		"movie_id": movieID,
		"results":  results,
		"count":    len(results),
	})
}

// HybridRecommendations handles GET /api/v1/recommendations/hybrid.
// Blends collaborative and content scores for a (user, movie) anchor
// pair; weight 1.0 is fully collaborative, 0.0 fully content-based.
func (h *Handler) HybridRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := requiredIntQuery(r, "user_id")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	movieID, err := requiredIntQuery(r, "movie_id")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	params, err := h.parseRecommendParams(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	start := time.Now()
	results, err := h.engine.Recommend(r.Context(), recommend.Request{
		UserID:  &userID,
		MovieID: &movieID,
		Weight:  params.Weight,
		N:       h.clampN(params.N),
	})
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	metrics.RecordRecommendation(string(recommend.SourceHybrid), time.Since(start))
	rw.Success(map[string]interface{}{
		"user_id":  userID,
		"movie_id": movieID,
		"weight":   params.Weight,
		"results":  results,
		"count":    len(results),
	})
}

// RandomMovie handles GET /api/v1/movies/random.
func (h *Handler) RandomMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	h.rngMu.Lock()
	movie, ok := cat.RandomMovie(h.rng)
	h.rngMu.Unlock()
	if !ok {
		rw.NotFound("Catalog has no movies")
		return
	}

	rw.Success(movie)
}

// GetMovie handles GET /api/v1/movies/{movieID}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movieID, err := strconv.Atoi(chi.URLParam(r, "movieID"))
	if err != nil {
		rw.BadRequest("Invalid movie ID")
		return
	}

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	movie, ok := cat.Movie(movieID)
	if !ok {
		rw.NotFound("Movie not found")
		return
	}

	rw.Success(movie)
}

// TopRatedMovie handles GET /api/v1/movies/top-rated.
// The min_count query parameter filters out sparsely rated movies.
func (h *Handler) TopRatedMovie(w http.ResponseWriter, r *http.Request) {
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

	movie, ok := cat.TopRatedMovie(minCount)
	if !ok {
		rw.NotFound("No movie satisfies the rating count threshold")
		return
	}

	rw.Success(map[string]interface{}{
		"movie":     movie,
		"min_count": minCount,
	})
}

// MostActiveUser handles GET /api/v1/users/most-active.
func (h *Handler) MostActiveUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	userID, count, ok := cat.MostActiveUser()
	if !ok {
		rw.NotFound("Catalog has no ratings")
		return
	}

	rw.Success(map[string]interface{}{
		"user_id":      userID,
		"rating_count": count,
	})
}

// RandomUser handles GET /api/v1/users/random.
func (h *Handler) RandomUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.engine.Catalog()
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	h.rngMu.Lock()
	userID, ok := cat.RandomUser(h.rng)
	h.rngMu.Unlock()
	if !ok {
		rw.NotFound("Catalog has no users")
		return
	}

	rw.Success(map[string]interface{}{
		"user_id": userID,
	})
}

// clampN bounds the requested result count to the engine's MaxN.
func (h *Handler) clampN(n int) int {
	if maxN := h.engine.Config().MaxN; n > maxN {
		return maxN
	}
	return n
}

// requiredIntQuery parses a mandatory integer query parameter.
func requiredIntQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New(name + " query parameter is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

// writeEngineError maps engine errors to HTTP responses.
func (h *Handler) writeEngineError(rw *ResponseWriter, r *http.Request, err error) {
	var (
		invalidErr   *recommend.InvalidRequestError
		unknownUser  *recommend.UnknownUserError
		unknownMovie *recommend.UnknownMovieError
	)

	switch {
	case errors.Is(err, recommend.ErrNotReady):
		metrics.RecordRecommendationError("not_ready")
		rw.ServiceUnavailable("Recommendation engine has no loaded catalog yet")
	case errors.Is(err, recommend.ErrReloadInProgress):
		metrics.RecordRecommendationError("reload_in_progress")
		rw.Conflict("A catalog reload is already in progress")
	case errors.As(err, &invalidErr):
		metrics.RecordRecommendationError("invalid_request")
		rw.BadRequest(invalidErr.Error())
	case errors.As(err, &unknownUser):
		metrics.RecordRecommendationError("unknown_user")
		rw.NotFound(unknownUser.Error())
	case errors.As(err, &unknownMovie):
		metrics.RecordRecommendationError("unknown_movie")
		rw.NotFound(unknownMovie.Error())
	default:
		metrics.RecordRecommendationError("internal")
		logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation request failed")
		rw.InternalError("Failed to generate recommendations")
	}
}
