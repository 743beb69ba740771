// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/recommend"
)

// Content ranks movies by cosine similarity of TF-IDF weighted genre
// vectors. Genres appearing in almost every movie are downweighted by
// the smoothed inverse document frequency ln((1+N)/(1+df)) + 1;
// vectors are L2-normalized so similarity reduces to a dot product.
//
// A movie with no genres has an all-zero vector and similarity 0 to
// everything, including itself.
//
// Immutable after Build; safe for concurrent reads.
type Content struct {
	built bool

	movieIDs     []int       // ascending
	index        map[int]int // movie id -> row
	vectors      [][]float64 // L2-normalized TF-IDF weights, rows × |vocab|
	ratingCounts []int       // per row, popularity tie-break
}

// Interface compliance check.
var _ recommend.ItemModel = (*Content)(nil)

// NewContent creates an unfitted content model.
func NewContent() *Content {
	return &Content{}
}

// Name identifies the model in logs and cache keys.
func (m *Content) Name() string { return "content" }

// Fingerprint digests the weighting scheme for cache keying. The
// scheme has no tunable parameters, so the constant only changes when
// the formula does.
func (m *Content) Fingerprint() string { return "tfidf/smooth-idf/l2" }

// Build computes one TF-IDF vector per movie over the catalog's
// genre vocabulary. O(movies × vocabulary).
func (m *Content) Build(ctx context.Context, c *catalog.Catalog) error {
	if err := ContextCancelled(ctx); err != nil {
		return err
	}

	vocab := c.GenreVocabulary()
	vocabIndex := make(map[string]int, len(vocab))
	for i, g := range vocab {
		vocabIndex[g] = i
	}

	movies := c.Movies()
	m.movieIDs = make([]int, len(movies))
	m.index = make(map[int]int, len(movies))
	m.ratingCounts = make([]int, len(movies))

	// Document frequency per genre token.
	df := make([]int, len(vocab))
	for _, movie := range movies {
		for _, g := range movie.Genres {
			df[vocabIndex[g]]++
		}
	}

	// Smoothed IDF; the +1 terms keep weights finite and positive
	// even for tokens present in every movie.
	n := float64(len(movies))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	m.vectors = make([][]float64, len(movies))
	for row, movie := range movies {
		m.movieIDs[row] = movie.ID
		m.index[movie.ID] = row
		m.ratingCounts[row] = movie.RatingCount

		vec := make([]float64, len(vocab))
		for _, g := range movie.Genres {
			vec[vocabIndex[g]] = idf[vocabIndex[g]]
		}
		normalizeL2(vec)
		m.vectors[row] = vec
	}
	m.built = true
	return nil
}

// normalizeL2 scales vec to unit length in place. All-zero vectors
// stay zero.
func normalizeL2(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// Similarity returns the cosine similarity between two movies.
// Symmetric; 0 when either movie has no genres.
func (m *Content) Similarity(a, b int) (float64, error) {
	ra, ok := m.index[a]
	if !ok {
		return 0, &recommend.UnknownMovieError{MovieID: a}
	}
	rb, ok := m.index[b]
	if !ok {
		return 0, &recommend.UnknownMovieError{MovieID: b}
	}
	return dot(m.vectors[ra], m.vectors[rb]), nil
}

// Recommend returns up to n movies most similar to the anchor,
// excluding the anchor itself. Ordering is by descending similarity,
// then by descending rating count as a popularity tie-break, then by
// ascending movie id.
func (m *Content) Recommend(movieID, n int) ([]recommend.Scored, error) {
	if !m.built {
		return nil, fmt.Errorf("content model not built")
	}
	anchor, ok := m.index[movieID]
	if !ok {
		return nil, &recommend.UnknownMovieError{MovieID: movieID}
	}
	if n <= 0 {
		return nil, nil
	}

	q := m.vectors[anchor]
	type candidate struct {
		recommend.Scored
		ratingCount int
	}
	candidates := make([]candidate, 0, len(m.movieIDs)-1)
	for row, id := range m.movieIDs {
		if row == anchor {
			continue
		}
		candidates = append(candidates, candidate{
			Scored:      recommend.Scored{MovieID: id, Score: dot(q, m.vectors[row])},
			ratingCount: m.ratingCounts[row],
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].ratingCount != candidates[j].ratingCount {
			return candidates[i].ratingCount > candidates[j].ratingCount
		}
		return candidates[i].MovieID < candidates[j].MovieID
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]recommend.Scored, len(candidates))
	for i, c := range candidates {
		out[i] = c.Scored
	}
	return out, nil
}
