// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/movierec/internal/recommend"
)

// Recommender is the lookup façade the handlers call.
type Recommender interface {
	GetRecommendations(ctx context.Context, req recommend.Request) (*recommend.Result, error)
}

// ArtifactStatus reports the resident models.
type ArtifactStatus interface {
	Loaded() bool
	Status() []recommend.ArtifactInfo
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	recommender Recommender
	artifacts   ArtifactStatus
	version     string
	startTime   time.Time

	// requestTimeout bounds a single lookup, including a cold artifact load.
	requestTimeout time.Duration
}

// NewHandler creates a handler. timeout <= 0 disables the per-request bound.
func NewHandler(recommender Recommender, artifacts ArtifactStatus, version string, timeout time.Duration) *Handler {
	return &Handler{
		recommender:    recommender,
		artifacts:      artifacts,
		version:        version,
		startTime:      time.Now(),
		requestTimeout: timeout,
	}
}
