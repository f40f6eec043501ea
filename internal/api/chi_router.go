// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/movierec/internal/auth"
	"github.com/tomtom215/movierec/internal/middleware"
	"github.com/tomtom215/movierec/internal/models"
)

// Router wires the handlers into a chi.Router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	auth          *auth.Middleware
}

// NewRouter creates a router. authMiddleware may be nil, which disables
// authentication.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware, authMiddleware *auth.Middleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	if authMiddleware == nil {
		authMiddleware = auth.NewMiddleware(nil, auth.AuthModeNone)
	}
	return &Router{handler: handler, chiMiddleware: chiMiddleware, auth: authMiddleware}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "route not found", Code: CodeNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "method not allowed", Code: CodeInvalidRequest})
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom("health", RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Use(APISecurityHeaders())
		r.Use(middleware.Compression)
		r.Use(router.auth.Authenticate)

		r.Get("/recommendations/{engine}", router.handler.GetRecommendations)
		r.Post("/recommendations", router.handler.PostRecommendations)
		r.Get("/artifacts", router.handler.Artifacts)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
