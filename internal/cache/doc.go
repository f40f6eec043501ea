// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Package cache provides byte-oriented result caches for recommendation
// lookups.
//
// Two backends implement Store:
//
//   - Memory: a TTL map with a background cleanup loop, lost on restart.
//   - Badger: a BadgerDB database with per-entry TTL, surviving restarts.
//
// Keys should come from GenerateKey so that logically equal parameter sets
// map to the same entry. Values are opaque; callers encode them.
package cache
