// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/modista/internal/dataset"
)

// CreateSession handles POST /api/v1/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, err := h.sessions.Create()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.logger.Info().Str("session_id", s.ID).Msg("session created")
	respondData(w, http.StatusCreated, s, start)
}

// DeleteSession handles DELETE /api/v1/sessions/{sessionID}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}
	h.sessions.Delete(s.ID)
	respondData(w, http.StatusOK, map[string]string{"deleted": s.ID}, start)
}

// UploadRatings handles POST /api/v1/sessions/{sessionID}/ratings.
//
// Accepts either a multipart form with a "file" field or a raw CSV
// request body.
func (h *Handler) UploadRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	body, err := h.uploadBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), err)
		return
	}
	defer func() { _ = body.Close() }()

	ratings, err := dataset.LoadCSV(io.LimitReader(body, h.cfg.API.MaxUploadBytes))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.SetRatings(ratings, "upload")
	h.logger.Info().
		Str("session_id", s.ID).
		Int("rows", len(ratings)).
		Msg("ratings uploaded")
	respondData(w, http.StatusOK, dataset.Summarize(ratings), start)
}

// uploadBody returns the CSV payload of an upload request.
func (h *Handler) uploadBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(h.cfg.API.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("multipart form needs a \"file\" field: %w", err)
	}
	return file, nil
}

// generateRequest is the body of a generate call. Zero-valued fields
// fall back to the configured generator defaults.
type generateRequest struct {
	Users    int     `json:"users" validate:"omitempty,gte=1,lte=100000"`
	Items    int     `json:"items" validate:"omitempty,gte=1,lte=100000"`
	Seed     int64   `json:"seed" validate:"omitempty,gte=0"`
	PriceMin float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax float64 `json:"price_max" validate:"omitempty,gte=0"`
}

// GenerateRatings handles POST /api/v1/sessions/{sessionID}/generate.
func (h *Handler) GenerateRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, CodeValidationError, "invalid JSON body", err)
			return
		}
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	params := h.generatorParams(req)
	ratings, err := dataset.Generate(params)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), err)
		return
	}

	s.SetRatings(ratings, "generate")
	h.logger.Info().
		Str("session_id", s.ID).
		Int("users", params.Users).
		Int("items", params.Items).
		Int64("seed", params.Seed).
		Msg("synthetic dataset generated")
	respondData(w, http.StatusOK, dataset.Summarize(ratings), start)
}

func (h *Handler) generatorParams(req generateRequest) dataset.GeneratorParams {
	defaults := h.cfg.Generator
	params := dataset.GeneratorParams{
		Users:    defaults.Users,
		Items:    defaults.Items,
		Seed:     defaults.Seed,
		PriceMin: defaults.PriceMin,
		PriceMax: defaults.PriceMax,
	}
	if req.Users > 0 {
		params.Users = req.Users
	}
	if req.Items > 0 {
		params.Items = req.Items
	}
	if req.Seed > 0 {
		params.Seed = req.Seed
	}
	if req.PriceMin > 0 {
		params.PriceMin = req.PriceMin
	}
	if req.PriceMax > 0 {
		params.PriceMax = req.PriceMax
	}
	return params
}

// ExportRatings handles GET /api/v1/sessions/{sessionID}/ratings/export.
// Streams the session dataset as CSV in the canonical column order.
func (h *Handler) ExportRatings(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	ratings := s.Ratings()
	if len(ratings) == 0 {
		respondError(w, http.StatusUnprocessableEntity, CodeEmptyInput, "session has no dataset", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ratings.csv"`)
	if err := dataset.WriteCSV(w, ratings); err != nil {
		h.logger.Error().Err(err).Str("session_id", s.ID).Msg("CSV export failed")
	}
}

// SessionSummary handles GET /api/v1/sessions/{sessionID}/summary.
func (h *Handler) SessionSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	summary := dataset.Summarize(s.Ratings())
	respondData(w, http.StatusOK, map[string]interface{}{
		"session_id": s.ID,
		"created_at": s.CreatedAt,
		"source":     s.Source(),
		"dataset":    summary,
	}, start)
}
