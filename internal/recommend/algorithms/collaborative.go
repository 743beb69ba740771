// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package algorithms

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/tomtom215/cinelens/internal/catalog"
	"github.com/tomtom215/cinelens/internal/recommend"
)

// Collaborative model defaults.
const (
	DefaultFactors    = 20
	DefaultIterations = 30
	DefaultSeed       = 42
)

// CollaborativeConfig holds the truncated SVD parameters.
type CollaborativeConfig struct {
	// Factors is the target rank k of the factorization. Clamped to
	// min(#users, #movies) - 1 at build time when the catalog is
	// smaller than k.
	Factors int `koanf:"factors"`

	// Iterations is the number of orthogonal iteration rounds.
	Iterations int `koanf:"iterations"`

	// Seed fixes the random starting basis, making recommendations
	// reproducible across reloads of identical data.
	Seed int64 `koanf:"seed"`
}

// DefaultCollaborativeConfig returns the default SVD parameters.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{
		Factors:    DefaultFactors,
		Iterations: DefaultIterations,
		Seed:       DefaultSeed,
	}
}

// normalize replaces out-of-range values with defaults.
func (c *CollaborativeConfig) normalize() {
	if c.Factors <= 0 {
		c.Factors = DefaultFactors
	}
	if c.Iterations <= 0 {
		c.Iterations = DefaultIterations
	}
}

// Collaborative scores movies for a user from a truncated SVD of the
// user-movie rating matrix. Unobserved entries are treated as zero
// during factorization; this is a known approximation rather than
// true missing-value imputation, and changing it would change
// recommendation output.
//
// Immutable after Build; safe for concurrent reads.
type Collaborative struct {
	cfg   CollaborativeConfig
	built bool

	userIndex    map[int]int        // user id -> row
	movieIDs     []int              // column -> movie id, ascending
	rated        []map[int]struct{} // per row, movie ids the user rated
	userFactors  [][]float64        // rows × k, projection of each user row
	movieFactors [][]float64        // cols × k, right singular vectors
}

// Interface compliance check.
var _ recommend.UserModel = (*Collaborative)(nil)

// NewCollaborative creates an unfitted collaborative model.
func NewCollaborative(cfg CollaborativeConfig) *Collaborative {
	cfg.normalize()
	return &Collaborative{cfg: cfg}
}

// Name identifies the model in logs and cache keys.
func (m *Collaborative) Name() string { return "collaborative" }

// Fingerprint digests the model parameters for cache keying.
func (m *Collaborative) Fingerprint() string {
	return fmt.Sprintf("svd/k=%d/iters=%d/seed=%d", m.cfg.Factors, m.cfg.Iterations, m.cfg.Seed)
}

// Build constructs the sparse rating matrix and factorizes it.
// A catalog with no ratings builds an empty model; every subsequent
// Recommend fails with UnknownUserError, which callers already
// handle.
func (m *Collaborative) Build(ctx context.Context, c *catalog.Catalog) error {
	userIDs := c.UserIDs()
	m.movieIDs = c.MovieIDs()
	m.userIndex = make(map[int]int, len(userIDs))
	m.rated = make([]map[int]struct{}, len(userIDs))

	colIndex := make(map[int]int, len(m.movieIDs))
	for j, id := range m.movieIDs {
		colIndex[id] = j
	}

	rows := make([][]sparseEntry, len(userIDs))
	for i, uid := range userIDs {
		m.userIndex[uid] = i
		ratings := c.RatingsForUser(uid)
		rows[i] = make([]sparseEntry, 0, len(ratings))
		m.rated[i] = make(map[int]struct{}, len(ratings))
		for _, r := range ratings {
			rows[i] = append(rows[i], sparseEntry{col: colIndex[r.MovieID], val: r.Score})
			m.rated[i][r.MovieID] = struct{}{}
		}
	}

	if len(userIDs) == 0 || len(m.movieIDs) == 0 {
		m.built = true
		return nil
	}

	// Clamp the rank to the matrix dimensions; never fail on a small
	// catalog alone.
	k := m.cfg.Factors
	if maxK := min(len(userIDs), len(m.movieIDs)) - 1; k > maxK {
		k = maxK
	}
	if k < 1 {
		k = 1
	}

	rng := rand.New(rand.NewSource(m.cfg.Seed)) //nolint:gosec // deterministic init, not security-sensitive
	v, err := rightSingularVectors(ctx, rows, len(m.movieIDs), k, m.cfg.Iterations, rng)
	if err != nil {
		return err
	}
	m.movieFactors = v
	m.userFactors = multiply(rows, v, k)
	m.built = true
	return nil
}

// Recommend reconstructs the user's predicted row from the latent
// factors, excludes already-rated movies, and returns the top n by
// predicted score, ties by ascending movie id.
func (m *Collaborative) Recommend(userID, n int) ([]recommend.Scored, error) {
	if !m.built {
		return nil, fmt.Errorf("collaborative model not built")
	}
	row, ok := m.userIndex[userID]
	if !ok {
		return nil, &recommend.UnknownUserError{UserID: userID}
	}
	if n <= 0 {
		return nil, nil
	}

	uf := m.userFactors[row]
	seen := m.rated[row]
	candidates := make([]recommend.Scored, 0, len(m.movieIDs)-len(seen))
	for j, id := range m.movieIDs {
		if _, already := seen[id]; already {
			continue
		}
		candidates = append(candidates, recommend.Scored{
			MovieID: id,
			Score:   dot(uf, m.movieFactors[j]),
		})
	}

	sortCandidates(candidates)
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}
