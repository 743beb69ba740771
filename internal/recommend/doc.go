// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package recommend implements the recommendation engine.
//
// The Engine holds an immutable snapshot (catalog plus built models)
// behind an atomic pointer. Requests read the snapshot they captured;
// a reload builds a fresh snapshot and swaps it in, so in-flight
// requests finish against the old data and new requests see only the
// new version.
//
// Three query shapes are supported through a single Recommend call:
// user-only (collaborative), movie-only (content similarity), and
// user+movie with a blend weight (hybrid). Model implementations live
// in the algorithms subpackage and are injected as factories, keeping
// this package free of algorithm specifics.
package recommend
