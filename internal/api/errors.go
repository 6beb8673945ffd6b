// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/modista/internal/recommend"
	"github.com/tomtom215/modista/internal/session"
	"github.com/tomtom215/modista/internal/store"
)

// Stable machine-readable error codes.
const (
	CodeEmptyInput       = "EMPTY_INPUT"
	CodeMalformedData    = "MALFORMED_DATA"
	CodeNotFound         = "NOT_FOUND"
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
	CodeDatasetNotFound  = "DATASET_NOT_FOUND"
	CodeTooManySessions  = "TOO_MANY_SESSIONS"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// mapDomainError translates engine, session, and store sentinels into
// an HTTP status and error code. Unknown errors map to 500.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, recommend.ErrEmptyInput):
		return http.StatusUnprocessableEntity, CodeEmptyInput
	case errors.Is(err, recommend.ErrMalformedData):
		return http.StatusBadRequest, CodeMalformedData
	case errors.Is(err, recommend.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, CodeSessionNotFound
	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusTooManyRequests, CodeTooManySessions
	case errors.Is(err, store.ErrDatasetNotFound):
		return http.StatusNotFound, CodeDatasetNotFound
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}
