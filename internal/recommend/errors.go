// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package recommend

import "errors"

var (
	// ErrMissingParameter is returned when the query title is empty.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrInvalidRequest is returned when a request fails schema validation
	// for any reason other than an empty query.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned when the query does not resolve to a movie, or
	// resolves to an entry the loaded artifacts cannot rank.
	ErrNotFound = errors.New("movie not found")

	// ErrArtifactUnavailable is returned when a model artifact is missing,
	// corrupt, or its loader is short-circuited.
	ErrArtifactUnavailable = errors.New("service unavailable")
)
