// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Pivot handles GET /api/v1/sessions/{sessionID}/pivot.
func (h *Handler) Pivot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	p, err := s.Pivot()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, p, start)
}

// Similarity handles GET /api/v1/sessions/{sessionID}/similarity/{axis}.
func (h *Handler) Similarity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}
	axis, ok := parseAxis(chi.URLParam(r, "axis"))
	if !ok {
		respondError(w, http.StatusBadRequest, CodeValidationError, "axis must be users or items", nil)
		return
	}

	sim, err := s.Similarity(axis)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"axis":   axis.String(),
		"ids":    sim.IDs,
		"values": sim.Values,
	}, start)
}

// Neighbors handles GET /api/v1/sessions/{sessionID}/neighbors/{axis}/{id}.
func (h *Handler) Neighbors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}
	axis, ok := parseAxis(chi.URLParam(r, "axis"))
	if !ok {
		respondError(w, http.StatusBadRequest, CodeValidationError, "axis must be users or items", nil)
		return
	}

	targetID := chi.URLParam(r, "id")
	n := getIntParam(r, "n", 0)

	neighbors, err := s.Neighbors(axis, targetID, n)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"axis":      axis.String(),
		"target":    targetID,
		"neighbors": neighbors,
	}, start)
}

// Recommendations handles GET /api/v1/sessions/{sessionID}/recommendations/{userID}.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "userID")
	n := getIntParam(r, "n", 0)

	items, err := s.Recommend(userID, n)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"items":   items,
	}, start)
}

// SimilarItems handles GET /api/v1/sessions/{sessionID}/items/similar/{itemID}.
func (h *Handler) SimilarItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	n := getIntParam(r, "n", 0)

	items, err := s.SimilarItems(itemID, n)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"item_id": itemID,
		"similar": items,
	}, start)
}
