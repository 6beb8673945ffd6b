// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/modista/internal/config"
	"github.com/tomtom215/modista/internal/session"
	"github.com/tomtom215/modista/internal/store"
)

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	cfg      *config.Config
	sessions *session.Manager
	store    *store.Store
	logger   zerolog.Logger
}

// NewHandler creates a handler with its dependencies.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(cfg *config.Config, sessions *session.Manager, datasets *store.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		sessions: sessions,
		store:    datasets,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// sessionFromRequest resolves the {sessionID} path parameter. On
// failure it writes the error response and returns false.
func (h *Handler) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	s, err := h.sessions.Get(id)
	if err != nil {
		respondDomainError(w, err)
		return nil, false
	}
	return s, true
}
