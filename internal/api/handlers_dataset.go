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

type datasetNameRequest struct {
	Name string `validate:"required,min=1,max=64"`
}

// SaveDataset handles POST /api/v1/sessions/{sessionID}/datasets/{name}.
// Snapshots the session's ratings into the persistent store.
func (h *Handler) SaveDataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	if apiErr := validateRequest(&datasetNameRequest{Name: name}); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ratings := s.Ratings()
	if len(ratings) == 0 {
		respondError(w, http.StatusUnprocessableEntity, CodeEmptyInput, "session has no dataset", nil)
		return
	}

	if err := h.store.SaveDataset(r.Context(), name, ratings); err != nil {
		respondDomainError(w, err)
		return
	}

	h.logger.Info().
		Str("session_id", s.ID).
		Str("dataset", sanitizeLogValue(name)).
		Int("rows", len(ratings)).
		Msg("dataset saved to store")

	summary, err := h.store.Summary(r.Context(), name)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusCreated, summary, start)
}

// LoadDataset handles POST /api/v1/sessions/{sessionID}/datasets/{name}/load.
// Restores a stored dataset into the session, invalidating any derived
// matrices.
func (h *Handler) LoadDataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	ratings, err := h.store.LoadRatings(r.Context(), name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.SetRatings(ratings, "store")
	h.logger.Info().
		Str("session_id", s.ID).
		Str("dataset", sanitizeLogValue(name)).
		Int("rows", len(ratings)).
		Msg("dataset loaded from store")
	respondData(w, http.StatusOK, map[string]interface{}{
		"dataset": name,
		"rows":    len(ratings),
	}, start)
}

// ListDatasets handles GET /api/v1/datasets.
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	summaries, err := h.store.ListDatasets(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"datasets": summaries,
		"count":    len(summaries),
	}, start)
}

// DatasetSummary handles GET /api/v1/datasets/{name}.
func (h *Handler) DatasetSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	summary, err := h.store.Summary(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, summary, start)
}

// DeleteDataset handles DELETE /api/v1/datasets/{name}.
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	name := chi.URLParam(r, "name")
	if err := h.store.DeleteDataset(r.Context(), name); err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"deleted": name}, start)
}
