// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

// Package dataset reads, writes, and generates ratings datasets.
//
// The on-disk format is CSV with the exact header
//
//	User_ID,Item_ID,Rating,Category,Price
//
// Column order may vary and extra columns are ignored, but all five
// named columns must be present. Header matching is case-sensitive.
package dataset
