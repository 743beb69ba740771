// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package algorithms implements the recommendation models.
//
// Two models are provided: Collaborative factorizes the user-movie
// rating matrix with a truncated SVD and scores unseen movies from
// the latent factors; Content builds TF-IDF weighted genre vectors
// and ranks movies by cosine similarity to an anchor movie.
//
// Both models are fit once per catalog snapshot via Build and are
// immutable afterwards, safe for unsynchronized concurrent reads.
package algorithms
