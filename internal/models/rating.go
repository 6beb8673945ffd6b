// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package models

import "time"

// RatingColumns is the canonical CSV column order for ratings tables.
// Uploads must carry exactly this header (case-sensitive) and exports
// reproduce it unchanged.
var RatingColumns = []string{"User_ID", "Item_ID", "Rating", "Category", "Price"}

// Rating is a single user-item rating record.
//
// UserID and ItemID are opaque identifiers: free-text or numeric strings.
// One rating per (UserID, ItemID) pair is assumed for pivoting; duplicates
// are averaged when the pivot matrix is built.
type Rating struct {
	UserID   string  `json:"user_id"`
	ItemID   string  `json:"item_id"`
	Rating   float64 `json:"rating"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// DatasetSummary describes a ratings dataset in aggregate.
type DatasetSummary struct {
	Name       string    `json:"name,omitempty"`
	Rows       int       `json:"rows"`
	Users      int       `json:"users"`
	Items      int       `json:"items"`
	MeanRating float64   `json:"mean_rating"`
	Categories []string  `json:"categories,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
