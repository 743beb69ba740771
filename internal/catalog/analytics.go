// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package catalog

import "sort"

// GenreCount pairs a genre with the number of movies carrying it.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// ScoreCount pairs a rating score with its frequency.
type ScoreCount struct {
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

// GenreMean pairs a genre with the mean score of all ratings received
// by movies carrying it.
type GenreMean struct {
	Genre       string  `json:"genre"`
	MeanRating  float64 `json:"mean_rating"`
	RatingCount int     `json:"rating_count"`
}

// UserCount pairs a user with their rating count.
type UserCount struct {
	UserID      int `json:"user_id"`
	RatingCount int `json:"rating_count"`
}

// PopularityPoint is a (rating count, mean rating) pair per movie,
// consumed by popularity scatter presentations.
type PopularityPoint struct {
	MovieID     int     `json:"movie_id"`
	Title       string  `json:"title"`
	RatingCount int     `json:"rating_count"`
	MeanRating  float64 `json:"mean_rating"`
}

// GenreFrequencies returns movie counts per genre, most frequent
// first. Ties sort alphabetically.
func (c *Catalog) GenreFrequencies() []GenreCount {
	counts := make(map[string]int)
	for _, id := range c.movieIDs {
		for _, g := range c.movies[id].Genres {
			counts[g]++
		}
	}
	out := make([]GenreCount, 0, len(counts))
	for g, n := range counts {
		out = append(out, GenreCount{Genre: g, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

// RatingHistogram returns rating frequencies per distinct score,
// ascending by score.
func (c *Catalog) RatingHistogram() []ScoreCount {
	counts := make(map[float64]int)
	for _, r := range c.ratings {
		counts[r.Score]++
	}
	out := make([]ScoreCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, ScoreCount{Score: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// GenreMeanRatings returns the mean rating per genre, highest first.
// A rating contributes to every genre of its movie. Ties sort
// alphabetically.
func (c *Catalog) GenreMeanRatings() []GenreMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range c.ratings {
		for _, g := range c.movies[r.MovieID].Genres {
			sums[g] += r.Score
			counts[g]++
		}
	}
	out := make([]GenreMean, 0, len(counts))
	for g, n := range counts {
		out = append(out, GenreMean{Genre: g, MeanRating: sums[g] / float64(n), RatingCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanRating != out[j].MeanRating {
			return out[i].MeanRating > out[j].MeanRating
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

// UserActivity returns rating counts per user, most active first.
// Ties sort by ascending user id.
func (c *Catalog) UserActivity() []UserCount {
	out := make([]UserCount, 0, len(c.userIDs))
	for _, id := range c.userIDs {
		out = append(out, UserCount{UserID: id, RatingCount: len(c.byUser[id])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RatingCount != out[j].RatingCount {
			return out[i].RatingCount > out[j].RatingCount
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// PopularityPoints returns (rating count, mean rating) pairs for all
// movies with at least minCount ratings, most rated first. Ties sort
// by ascending movie id.
func (c *Catalog) PopularityPoints(minCount int) []PopularityPoint {
	var out []PopularityPoint
	for _, id := range c.movieIDs {
		m := c.movies[id]
		if m.RatingCount < minCount {
			continue
		}
		out = append(out, PopularityPoint{
			MovieID:     m.ID,
			Title:       m.Title,
			RatingCount: m.RatingCount,
			MeanRating:  m.MeanRating,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RatingCount != out[j].RatingCount {
			return out[i].RatingCount > out[j].RatingCount
		}
		return out[i].MovieID < out[j].MovieID
	})
	return out
}
