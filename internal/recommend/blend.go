// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import "sort"

// blendedScore is a combined candidate with its contributing source.
type blendedScore struct {
	MovieID int
	Score   float64
	Source  Source
}

// normalizeScores min-max normalizes scores to [0, 1] within one
// candidate list, making the two models' score scales comparable.
// When all scores are equal every entry maps to 0.5, preserving the
// list without letting one model dominate the blend. O(n).
func normalizeScores(items []Scored) []Scored {
	if len(items) == 0 {
		return nil
	}

	minScore, maxScore := items[0].Score, items[0].Score
	for _, it := range items[1:] {
		if it.Score < minScore {
			minScore = it.Score
		}
		if it.Score > maxScore {
			maxScore = it.Score
		}
	}

	out := make([]Scored, len(items))
	spread := maxScore - minScore
	for i, it := range items {
		norm := 0.5
		if spread > 0 {
			norm = (it.Score - minScore) / spread
		}
		out[i] = Scored{MovieID: it.MovieID, Score: norm}
	}
	return out
}

// blendCandidates merges the two oversized candidate lists into one
// ranked list of at most n entries. Each list is normalized
// independently, then combined as weight*collab + (1-weight)*content;
// a movie missing from one list scores 0 for that term. Duplicates
// collapse to a single entry labeled hybrid; single-source entries
// keep their originating label. Ordering is by descending combined
// score, ties by ascending movie id.
func blendCandidates(collab, content []Scored, weight float64, n int) []blendedScore {
	type contribution struct {
		collabNorm  float64
		contentNorm float64
		inCollab    bool
		inContent   bool
	}

	merged := make(map[int]*contribution, len(collab)+len(content))
	for _, it := range normalizeScores(collab) {
		merged[it.MovieID] = &contribution{collabNorm: it.Score, inCollab: true}
	}
	for _, it := range normalizeScores(content) {
		if c, ok := merged[it.MovieID]; ok {
			c.contentNorm = it.Score
			c.inContent = true
			continue
		}
		merged[it.MovieID] = &contribution{contentNorm: it.Score, inContent: true}
	}

	out := make([]blendedScore, 0, len(merged))
	for id, c := range merged {
		src := SourceHybrid
		switch {
		case c.inCollab && !c.inContent:
			src = SourceCollaborative
		case c.inContent && !c.inCollab:
			src = SourceContent
		}
		out = append(out, blendedScore{
			MovieID: id,
			Score:   weight*c.collabNorm + (1-weight)*c.contentNorm,
			Source:  src,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].MovieID < out[j].MovieID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
