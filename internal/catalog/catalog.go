// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package catalog

import (
	"fmt"
	"math/rand"
	"sort"
)

// Movie is an immutable movie record. MeanRating and RatingCount are
// derived aggregates, recomputed whenever ratings are (re)loaded.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	MeanRating  float64  `json:"mean_rating"`
	RatingCount int      `json:"rating_count"`
}

// Rating is an immutable rating record. Score is always within [1,5];
// records outside that range are rejected at load time.
type Rating struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// Stats summarizes a loaded catalog for health and stats endpoints.
type Stats struct {
	Movies         int     `json:"movies"`
	Users          int     `json:"users"`
	Ratings        int     `json:"ratings"`
	DroppedRatings int     `json:"dropped_ratings"`
	MeanScore      float64 `json:"mean_score"`
}

// Catalog owns the movie mapping and the ordered rating sequence, plus
// read-only per-user and per-movie indexes. It is immutable after Load
// returns; all methods are safe for concurrent use.
type Catalog struct {
	movies   map[int]*Movie
	movieIDs []int // ascending
	userIDs  []int // ascending
	ratings  []Rating
	byUser   map[int][]Rating
	byMovie  map[int][]Rating

	dropped     int
	fingerprint string
}

// New builds a Catalog directly from in-memory records, applying the
// same validation as Load: scores must lie in [1,5], ratings for
// unknown movies are dropped and counted, duplicate (user, movie)
// pairs keep the last score. Aggregates on the input movies are
// recomputed from the ratings.
func New(movies []Movie, ratings []Rating) (*Catalog, error) {
	c := &Catalog{
		movies:  make(map[int]*Movie, len(movies)),
		byUser:  make(map[int][]Rating),
		byMovie: make(map[int][]Rating),
	}

	for _, m := range movies {
		m := m
		m.MeanRating = 0
		m.RatingCount = 0
		if _, exists := c.movies[m.ID]; !exists {
			c.movieIDs = append(c.movieIDs, m.ID)
		}
		c.movies[m.ID] = &m
	}

	seen := make(map[[2]int]int, len(ratings))
	for _, r := range ratings {
		if r.Score < minScore || r.Score > maxScore {
			return nil, fmt.Errorf("rating (user %d, movie %d): score %g outside [%g,%g]",
				r.UserID, r.MovieID, r.Score, minScore, maxScore)
		}
		if _, ok := c.movies[r.MovieID]; !ok {
			c.dropped++
			continue
		}
		key := [2]int{r.UserID, r.MovieID}
		if idx, dup := seen[key]; dup {
			c.ratings[idx].Score = r.Score
			continue
		}
		seen[key] = len(c.ratings)
		c.ratings = append(c.ratings, r)
	}

	c.buildIndexes()
	c.fingerprint = c.computeFingerprint()
	return c, nil
}

// Fingerprint returns a deterministic digest of the loaded data.
// Identical input files always produce identical fingerprints, so
// cache keys derived from it survive an idempotent reload.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

// DroppedRatings returns the number of rating records dropped for
// referencing movies absent from the movie file.
func (c *Catalog) DroppedRatings() int { return c.dropped }

// Movie returns the movie with the given id.
func (c *Catalog) Movie(id int) (Movie, bool) {
	m, ok := c.movies[id]
	if !ok {
		return Movie{}, false
	}
	return *m, true
}

// Movies returns all movies in ascending id order.
func (c *Catalog) Movies() []Movie {
	out := make([]Movie, 0, len(c.movieIDs))
	for _, id := range c.movieIDs {
		out = append(out, *c.movies[id])
	}
	return out
}

// MovieIDs returns all movie ids in ascending order. The returned
// slice is shared and must not be mutated.
func (c *Catalog) MovieIDs() []int { return c.movieIDs }

// UserIDs returns all user ids with at least one rating, ascending.
// The returned slice is shared and must not be mutated.
func (c *Catalog) UserIDs() []int { return c.userIDs }

// Ratings returns the ordered rating sequence. The returned slice is
// shared and must not be mutated.
func (c *Catalog) Ratings() []Rating { return c.ratings }

// RatingsForUser returns the ratings submitted by the given user, in
// load order. Returns nil for unknown users.
func (c *Catalog) RatingsForUser(userID int) []Rating { return c.byUser[userID] }

// RatingsForMovie returns the ratings received by the given movie, in
// load order. Returns nil for unknown movies.
func (c *Catalog) RatingsForMovie(movieID int) []Rating { return c.byMovie[movieID] }

// HasUser reports whether the user has at least one rating.
func (c *Catalog) HasUser(userID int) bool {
	_, ok := c.byUser[userID]
	return ok
}

// HasMovie reports whether the movie exists in the catalog.
func (c *Catalog) HasMovie(movieID int) bool {
	_, ok := c.movies[movieID]
	return ok
}

// RandomMovie returns a uniformly random movie using the provided
// source. Returns false when the catalog is empty.
func (c *Catalog) RandomMovie(rng *rand.Rand) (Movie, bool) {
	if len(c.movieIDs) == 0 {
		return Movie{}, false
	}
	id := c.movieIDs[rng.Intn(len(c.movieIDs))]
	return *c.movies[id], true
}

// RandomUser returns a uniformly random user id using the provided
// source. Returns false when no user has ratings.
func (c *Catalog) RandomUser(rng *rand.Rand) (int, bool) {
	if len(c.userIDs) == 0 {
		return 0, false
	}
	return c.userIDs[rng.Intn(len(c.userIDs))], true
}

// TopRatedMovie returns the highest-rated movie among those with at
// least minCount ratings. Ties on mean rating are broken by higher
// rating count, then by lowest id for determinism. Returns false when
// no movie meets the threshold.
func (c *Catalog) TopRatedMovie(minCount int) (Movie, bool) {
	var best *Movie
	for _, id := range c.movieIDs {
		m := c.movies[id]
		if m.RatingCount < minCount {
			continue
		}
		if best == nil || betterRated(m, best) {
			best = m
		}
	}
	if best == nil {
		return Movie{}, false
	}
	return *best, true
}

// betterRated reports whether a outranks b for TopRatedMovie.
// Iteration is in ascending id order, so a strict comparison keeps the
// lowest id on full ties.
func betterRated(a, b *Movie) bool {
	if a.MeanRating != b.MeanRating {
		return a.MeanRating > b.MeanRating
	}
	return a.RatingCount > b.RatingCount
}

// MostActiveUser returns the user with the most ratings and that
// count. Ties are broken by lowest user id. Returns false when the
// catalog has no ratings.
func (c *Catalog) MostActiveUser() (int, int, bool) {
	bestID, bestCount := 0, 0
	for _, id := range c.userIDs {
		if n := len(c.byUser[id]); n > bestCount {
			bestID, bestCount = id, n
		}
	}
	if bestCount == 0 {
		return 0, 0, false
	}
	return bestID, bestCount, true
}

// Stats returns summary counts for the loaded dataset.
func (c *Catalog) Stats() Stats {
	s := Stats{
		Movies:         len(c.movieIDs),
		Users:          len(c.userIDs),
		Ratings:        len(c.ratings),
		DroppedRatings: c.dropped,
	}
	if len(c.ratings) > 0 {
		var sum float64
		for _, r := range c.ratings {
			sum += r.Score
		}
		s.MeanScore = sum / float64(len(c.ratings))
	}
	return s
}

// GenreVocabulary returns the sorted set of distinct genre tokens
// across the catalog. Used by the content model to fix its vector
// dimensions.
func (c *Catalog) GenreVocabulary() []string {
	seen := make(map[string]struct{})
	for _, id := range c.movieIDs {
		for _, g := range c.movies[id].Genres {
			seen[g] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(seen))
	for g := range seen {
		vocab = append(vocab, g)
	}
	sort.Strings(vocab)
	return vocab
}
