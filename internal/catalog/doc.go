// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package catalog loads and indexes the movie and rating dataset.
//
// A Catalog is built once from the two MovieLens-format input files
// (pipe-delimited movie records, tab-delimited rating records) and is
// immutable afterwards: a data reload builds a fresh Catalog and swaps
// it in atomically at the engine level. All accessors are safe for
// unsynchronized concurrent reads.
//
// The package also provides the read-only analytics projections
// (genre frequencies, rating histogram, per-genre means, user
// activity, popularity points) consumed by the API layer. These are
// recomputed on demand; they are cheap relative to model building and
// are deliberately not cached.
package catalog
