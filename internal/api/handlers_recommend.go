// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/movierec/internal/models"
	"github.com/tomtom215/movierec/internal/recommend"
)

const maxRequestBodyBytes = 64 << 10

// GetRecommendations handles GET /api/v1/recommendations/{engine}?title=...
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	req := recommend.Request{
		Engine: recommend.Engine(chi.URLParam(r, "engine")),
		Query:  r.URL.Query().Get("title"),
	}
	h.recommend(w, r, req)
}

// PostRecommendations handles POST /api/v1/recommendations.
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	var body models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, r, fmt.Errorf("%w: body exceeds %d bytes", recommend.ErrInvalidRequest, maxErr.Limit))
			return
		}
		respondError(w, r, fmt.Errorf("%w: malformed JSON body", recommend.ErrInvalidRequest))
		return
	}

	h.recommend(w, r, recommend.Request{Engine: recommend.Engine(body.Engine), Query: body.Query})
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, req recommend.Request) {
	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	res, err := h.recommender.GetRecommendations(ctx, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if res.Engine == recommend.EngineCorrelation {
		out := make([]models.CorrelatedMovie, 0, len(res.Correlations))
		for _, m := range res.Correlations {
			out = append(out, models.CorrelatedMovie{Title: m.Title, Correlation: m.Correlation})
		}
		respondJSON(w, http.StatusOK, models.CorrelationResponse{Recommendations: out})
		return
	}

	titles := res.Titles
	if titles == nil {
		titles = []string{}
	}
	respondJSON(w, http.StatusOK, models.SimilarityResponse{Recommendations: titles})
}
