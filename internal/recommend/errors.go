// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package recommend

import "errors"

// Sentinel errors for engine failures. All are terminal for the computation
// that raised them; the caller may supply corrected input and retry.
var (
	// ErrEmptyInput indicates the ratings table has zero rows.
	ErrEmptyInput = errors.New("ratings table is empty")

	// ErrMalformedData indicates a required field is missing or non-numeric.
	ErrMalformedData = errors.New("malformed ratings data")

	// ErrNotFound indicates a requested User_ID or Item_ID is absent from
	// the computed matrix.
	ErrNotFound = errors.New("id not found in matrix")
)
