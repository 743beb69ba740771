// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package algorithms

import (
	"context"
	"math"
	"math/rand"
)

// sparseEntry is one observed cell of the sparse rating matrix.
type sparseEntry struct {
	col int
	val float64
}

// rightSingularVectors approximates the top-k right singular vectors
// of the sparse rows×cols matrix A by orthogonal iteration: repeatedly
// apply AᵀA to an orthonormal basis and re-orthonormalize. The result
// V is stored row-major (cols×k) so per-item factor vectors are
// contiguous.
//
// The starting basis is drawn from rng, so a fixed seed makes the
// factorization fully deterministic. O(iterations * nnz * k).
func rightSingularVectors(ctx context.Context, rows [][]sparseEntry, cols, k, iterations int, rng *rand.Rand) ([][]float64, error) {
	v := make([][]float64, cols)
	for j := range v {
		v[j] = make([]float64, k)
		for f := 0; f < k; f++ {
			v[j][f] = rng.NormFloat64()
		}
	}
	orthonormalizeColumns(v, k)

	for it := 0; it < iterations; it++ {
		if err := ContextCancelled(ctx); err != nil {
			return nil, err
		}
		u := multiply(rows, v, k)
		v = multiplyTranspose(rows, u, cols, k)
		orthonormalizeColumns(v, k)
	}
	return v, nil
}

// multiply computes U = A·V for the sparse matrix A. Result is
// rows×k.
func multiply(rows [][]sparseEntry, v [][]float64, k int) [][]float64 {
	u := make([][]float64, len(rows))
	for i, row := range rows {
		ui := make([]float64, k)
		for _, e := range row {
			vj := v[e.col]
			for f := 0; f < k; f++ {
				ui[f] += e.val * vj[f]
			}
		}
		u[i] = ui
	}
	return u
}

// multiplyTranspose computes W = Aᵀ·U for the sparse matrix A.
// Result is cols×k.
func multiplyTranspose(rows [][]sparseEntry, u [][]float64, cols, k int) [][]float64 {
	w := make([][]float64, cols)
	for j := range w {
		w[j] = make([]float64, k)
	}
	for i, row := range rows {
		ui := u[i]
		for _, e := range row {
			wj := w[e.col]
			for f := 0; f < k; f++ {
				wj[f] += e.val * ui[f]
			}
		}
	}
	return w
}

// orthonormalizeColumns runs modified Gram-Schmidt over the k columns
// of the row-major matrix m. Columns that collapse to (numerically)
// zero are left zeroed; they carry no signal and the rank of the
// factorization simply drops.
func orthonormalizeColumns(m [][]float64, k int) {
	const eps = 1e-12
	for c := 0; c < k; c++ {
		for p := 0; p < c; p++ {
			var proj float64
			for j := range m {
				proj += m[j][c] * m[j][p]
			}
			for j := range m {
				m[j][c] -= proj * m[j][p]
			}
		}

		var norm float64
		for j := range m {
			norm += m[j][c] * m[j][c]
		}
		norm = math.Sqrt(norm)
		if norm < eps {
			for j := range m {
				m[j][c] = 0
			}
			continue
		}
		for j := range m {
			m[j][c] /= norm
		}
	}
}
