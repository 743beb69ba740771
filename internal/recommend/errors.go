// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine lifecycle states.
var (
	// ErrNotReady is returned when Recommend is called before the
	// first successful catalog load.
	ErrNotReady = errors.New("recommendation engine not ready")

	// ErrReloadInProgress is returned when a reload is requested
	// while another reload is still running.
	ErrReloadInProgress = errors.New("catalog reload already in progress")
)

// UnknownUserError reports a request for a user with no ratings in
// the catalog. Recoverable; callers may fall back to a random user.
type UnknownUserError struct {
	UserID int
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("user %d has no ratings in the catalog", e.UserID)
}

// UnknownMovieError reports a request for a movie absent from the
// catalog. Recoverable; callers may fall back to a random movie.
type UnknownMovieError struct {
	MovieID int
}

func (e *UnknownMovieError) Error() string {
	return fmt.Sprintf("movie %d not found in the catalog", e.MovieID)
}

// InvalidRequestError reports a request rejected before any
// computation: no anchor id, weight outside [0,1], or non-positive n.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid recommendation request: " + e.Reason
}
