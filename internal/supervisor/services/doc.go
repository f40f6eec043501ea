// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Package services adapts long-running movierec components to suture.Service.
//
// HTTPServerService runs the API server with graceful shutdown.
// ArtifactPreloadService loads both recommendation models once at startup
// and then leaves the tree.
package services
