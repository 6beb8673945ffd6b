// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package recommend

import (
	"math"

	"github.com/tomtom215/modista/internal/models"
)

// cellAccum accumulates ratings for one (user, item) pair so duplicates
// can be averaged.
type cellAccum struct {
	sum   float64
	count int
}

// BuildPivot reshapes a ratings table into a dense user-item matrix.
//
// Ratings for the same (User_ID, Item_ID) pair are averaged. Pairs with
// no rating are filled with 0. Returns ErrEmptyInput when the table has
// zero rows and ErrMalformedData when a rating is NaN or infinite.
func BuildPivot(ratings []models.Rating) (*PivotMatrix, error) {
	if len(ratings) == 0 {
		return nil, ErrEmptyInput
	}

	cells := make(map[string]map[string]*cellAccum)
	userSet := make(map[string]struct{})
	itemSet := make(map[string]struct{})

	for _, r := range ratings {
		if math.IsNaN(r.Rating) || math.IsInf(r.Rating, 0) {
			return nil, ErrMalformedData
		}

		userSet[r.UserID] = struct{}{}
		itemSet[r.ItemID] = struct{}{}

		row := cells[r.UserID]
		if row == nil {
			row = make(map[string]*cellAccum)
			cells[r.UserID] = row
		}
		acc := row[r.ItemID]
		if acc == nil {
			acc = &cellAccum{}
			row[r.ItemID] = acc
		}
		acc.sum += r.Rating
		acc.count++
	}

	userIDs := make([]string, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}
	itemIDs := make([]string, 0, len(itemSet))
	for id := range itemSet {
		itemIDs = append(itemIDs, id)
	}
	sortIDs(userIDs)
	sortIDs(itemIDs)

	p := &PivotMatrix{
		UserIDs:   userIDs,
		ItemIDs:   itemIDs,
		Values:    make([][]float64, len(userIDs)),
		rated:     make([][]bool, len(userIDs)),
		userIndex: indexOf(userIDs),
		itemIndex: indexOf(itemIDs),
	}

	for ui, userID := range userIDs {
		p.Values[ui] = make([]float64, len(itemIDs))
		p.rated[ui] = make([]bool, len(itemIDs))

		for itemID, acc := range cells[userID] {
			ii := p.itemIndex[itemID]
			p.Values[ui][ii] = acc.sum / float64(acc.count)
			p.rated[ui][ii] = true
		}
	}

	return p, nil
}
