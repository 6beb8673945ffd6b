// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package api

import (
	"net/http"
	"time"
)

// HealthLive handles GET /api/v1/health/live. The process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready. Ready means the
// dataset store answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, CodeInternalError, "dataset store unavailable", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"}, start)
}

// Health handles GET /api/v1/health with component detail.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	storeStatus := "ok"
	status := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		storeStatus = "unavailable"
		status = http.StatusServiceUnavailable
	}

	respondData(w, status, map[string]interface{}{
		"status": map[string]string{
			"store":    storeStatus,
			"sessions": "ok",
		},
		"sessions_active": h.sessions.Len(),
	}, start)
}
