// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/movierec/internal/models"
)

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:          "healthy",
		Version:         h.version,
		ArtifactsLoaded: h.artifacts.Loaded(),
		Uptime:          time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 once both models are resident and 503 before.
// Lookups still work before readiness; they load models on first use.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	loaded := h.artifacts.Loaded()
	status, code := "healthy", http.StatusOK
	if !loaded {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	respondJSON(w, code, models.HealthStatus{
		Status:          status,
		Version:         h.version,
		ArtifactsLoaded: loaded,
		Uptime:          time.Since(h.startTime).Seconds(),
	})
}

// Artifacts handles GET /api/v1/artifacts.
func (h *Handler) Artifacts(w http.ResponseWriter, r *http.Request) {
	infos := h.artifacts.Status()
	out := make([]models.ArtifactStatus, 0, len(infos))
	for _, info := range infos {
		out = append(out, models.ArtifactStatus{
			Name:     info.Name,
			Source:   info.Source,
			Version:  info.Version,
			Checksum: info.Checksum,
			Movies:   info.Movies,
			Users:    info.Users,
			LoadedAt: info.LoadedAt,
		})
	}
	respondJSON(w, http.StatusOK, models.ArtifactsResponse{Loaded: h.artifacts.Loaded(), Artifacts: out})
}
