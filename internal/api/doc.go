// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

/*
Package api serves the recommendation lookup engine over HTTP using chi.

# Endpoints

	GET  /api/v1/recommendations/{engine}?title=...   similarity or correlation
	POST /api/v1/recommendations                      {"engine": "...", "query": "..."}
	GET  /api/v1/artifacts                            loaded model metadata
	GET  /api/v1/health/live                          process liveness
	GET  /api/v1/health/ready                         200 once both models are loaded
	GET  /metrics                                     Prometheus exposition

Successful lookups return {"recommendations": [...]}. Failures return
{"error": "...", "code": "..."} with the status chosen by classifyError:

	MissingParameter     400
	InvalidRequest       400
	NotFound             404
	ArtifactUnavailable  500
*/
package api
