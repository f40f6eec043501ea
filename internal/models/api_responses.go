// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package models

import "time"

// RecommendationRequest is the POST /api/v1/recommendations body.
type RecommendationRequest struct {
	Engine string `json:"engine"`
	Query  string `json:"query"`
}

// SimilarityResponse is returned by the similarity engine.
//
//	{"recommendations": ["Aliens", "Alien 3"]}
type SimilarityResponse struct {
	Recommendations []string `json:"recommendations"`
}

// CorrelatedMovie is one correlation engine result.
type CorrelatedMovie struct {
	Title       string  `json:"title"`
	Correlation float64 `json:"correlation"`
}

// CorrelationResponse is returned by the correlation engine.
//
//	{"recommendations": [{"title": "Aliens (1986)", "correlation": 0.42}]}
type CorrelationResponse struct {
	Recommendations []CorrelatedMovie `json:"recommendations"`
}

// ErrorResponse is the body of every failed request. Code is one of
// MissingParameter, InvalidRequest, NotFound, ArtifactUnavailable,
// Unauthorized, RateLimited or InternalError.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ArtifactStatus describes one loaded model.
type ArtifactStatus struct {
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Version  int       `json:"version,omitempty"`
	Checksum string    `json:"checksum"`
	Movies   int       `json:"movies"`
	Users    int       `json:"users,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}

// ArtifactsResponse lists the resident models.
type ArtifactsResponse struct {
	Loaded    bool             `json:"loaded"`
	Artifacts []ArtifactStatus `json:"artifacts"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status          string  `json:"status"` // healthy, degraded
	Version         string  `json:"version,omitempty"`
	ArtifactsLoaded bool    `json:"artifacts_loaded"`
	Uptime          float64 `json:"uptime_seconds"`
}
