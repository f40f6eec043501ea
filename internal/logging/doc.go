// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Package logging provides the process-wide zerolog logger for Movierec.
//
// The logger is configured once at startup from the LOG_* settings and is
// safe to use before Init is called (defaults apply).
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("engine", "similarity").Msg("Recommendations served")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Artifact load failed")
//
// # Environment
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  include caller file:line (default: false)
//
// # Context
//
// Request-scoped values (request_id, correlation_id, user) are stored in the
// context by the HTTP middleware and added to every event logged through Ctx.
//
// # slog
//
// NewSlogLogger bridges log/slog to zerolog so that libraries that only
// accept *slog.Logger (sutureslog) write through the same output.
package logging
