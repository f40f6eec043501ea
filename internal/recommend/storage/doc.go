// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Package storage persists and reads the recommendation model artifacts.
//
// # Snapshot files
//
// Store keeps versioned snapshot files in a directory, one series per model:
//
//	similarity_v1.gob.gz
//	similarity_v2.gob.gz
//	correlation_v1.gob.gz
//
// Each file is a gob-encoded record of metadata plus the gzip-compressed gob
// encoding of the model. The metadata carries a SHA-256 checksum of the
// uncompressed encoding, verified on every load.
//
// # Sources
//
// SnapshotSource and DuckDBSource both implement recommend.ArtifactSource.
// SnapshotSource reads the latest (or a pinned) snapshot version.
// DuckDBSource reads the models from relational tables:
//
//	movies(row_index INTEGER, title VARCHAR)
//	similarity(row_index INTEGER, col_index INTEGER, score DOUBLE)
//	ratings(user_id INTEGER, title VARCHAR, rating DOUBLE)
//	rating_counts(title VARCHAR, num_ratings INTEGER)
//
// Pack converts whatever a source returns into a new snapshot version.
package storage
