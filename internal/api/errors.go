// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/movierec/internal/recommend"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeMissingParameter    = "MissingParameter"
	CodeInvalidRequest      = "InvalidRequest"
	CodeNotFound            = "NotFound"
	CodeArtifactUnavailable = "ArtifactUnavailable"
	CodeRateLimited         = "RateLimited"
	CodeInternal            = "InternalError"
)

// apiError is a classified failure ready to be written to the client.
type apiError struct {
	Status  int
	Code    string
	Message string
}

// classifyError maps service errors to a status, code and client-safe
// message. Wrapped detail is never echoed except for request validation.
func classifyError(err error) apiError {
	switch {
	case errors.Is(err, recommend.ErrMissingParameter):
		return apiError{http.StatusBadRequest, CodeMissingParameter, recommend.ErrMissingParameter.Error()}
	case errors.Is(err, recommend.ErrInvalidRequest):
		return apiError{http.StatusBadRequest, CodeInvalidRequest, err.Error()}
	case errors.Is(err, recommend.ErrNotFound):
		return apiError{http.StatusNotFound, CodeNotFound, recommend.ErrNotFound.Error()}
	case errors.Is(err, recommend.ErrArtifactUnavailable):
		return apiError{http.StatusInternalServerError, CodeArtifactUnavailable, recommend.ErrArtifactUnavailable.Error()}
	default:
		return apiError{http.StatusInternalServerError, CodeInternal, "internal server error"}
	}
}
