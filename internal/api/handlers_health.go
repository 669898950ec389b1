// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/watchly/internal/logging"
	"github.com/tomtom215/watchly/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthResponse{
			Status:  "alive",
			Version: h.config.Addon.Version,
			Uptime:  time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 when the metadata provider cannot be reached. Catalog
// requests still succeed in that state, but genre rows are missing.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := models.HealthResponse{
		Status:  "ready",
		Version: h.config.Addon.Version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Checks:  map[string]string{},
	}

	if h.metadata != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
		defer cancel()

		health.CircuitBreaker = h.metadata.State()
		if err := h.metadata.Ping(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed: metadata provider unreachable")
			health.Status = "not_ready"
			health.Checks["tmdb"] = "unreachable"

			respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
				Status:   "error",
				Data:     health,
				Metadata: models.Metadata{Timestamp: time.Now().UTC()},
				Error: &models.APIError{
					Code:    codeServiceUnavailable,
					Message: "Metadata provider is unreachable",
				},
			})
			return
		}
		health.Checks["tmdb"] = "ok"
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
