// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Package recommend implements the recommendation lookup engine.
//
// A query title is resolved against a normalized title index and a ranked
// list of related movies is produced from one of two precomputed artifacts:
//
//   - similarity: a dense movie-by-movie score matrix. The query row is
//     ranked descending (stable on ties), the first entry is dropped and the
//     next TopK titles are returned.
//   - correlation: a user-by-movie rating matrix. The query column is
//     correlated (pairwise-complete Pearson) against every column, columns
//     with too few ratings are removed and the TopK highest correlations are
//     returned with their scores.
//
// # Components
//
//   - ArtifactStore loads both models once from an ArtifactSource and shares
//     them immutably between requests. A failed load is reported as
//     ErrArtifactUnavailable and retried by the next request, never in place.
//   - TitleIndex maps normalized titles to canonical titles and row/column
//     positions. Later entries overwrite earlier ones on collision.
//   - SimilarityRecommender and CorrelationRecommender rank a resolved entry.
//   - Service is the request-facing façade used by the HTTP API and the CLI.
//
// # Errors
//
// Callers classify failures with errors.Is against ErrMissingParameter,
// ErrInvalidRequest, ErrNotFound and ErrArtifactUnavailable.
package recommend
