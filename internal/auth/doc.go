// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

// Package auth verifies bearer tokens issued by the external account service.
//
// Accounts, login and token issuance live outside this service. In jwt mode
// every API request must carry an HS256 token signed with the shared
// JWT_SECRET; the verified username is attached to the request context and
// to the request logger.
package auth
