// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package recommend

import (
	"sort"
	"strconv"
)

// Axis selects which dimension of the pivot matrix a similarity
// computation runs over.
type Axis int

const (
	// AxisUsers computes similarity between pivot rows (users).
	AxisUsers Axis = iota
	// AxisItems computes similarity between pivot columns (items).
	AxisItems
)

// String returns a human-readable axis name.
func (a Axis) String() string {
	switch a {
	case AxisUsers:
		return "users"
	case AxisItems:
		return "items"
	default:
		return "unknown"
	}
}

// PivotMatrix is a dense user-item matrix of mean ratings.
//
// Rows are indexed by UserIDs, columns by ItemIDs, both in deterministic
// order (numeric when every id parses as an integer, lexicographic
// otherwise). Cells for pairs with no rating are filled with 0; Rated
// distinguishes a real 0-mean rating from an absent one.
type PivotMatrix struct {
	UserIDs []string    `json:"user_ids"`
	ItemIDs []string    `json:"item_ids"`
	Values  [][]float64 `json:"values"`

	rated     [][]bool
	userIndex map[string]int
	itemIndex map[string]int
}

// UserIndex returns the row index for a user id.
func (p *PivotMatrix) UserIndex(userID string) (int, bool) {
	i, ok := p.userIndex[userID]
	return i, ok
}

// ItemIndex returns the column index for an item id.
func (p *PivotMatrix) ItemIndex(itemID string) (int, bool) {
	i, ok := p.itemIndex[itemID]
	return i, ok
}

// Rated reports whether the cell at (row, col) holds at least one real
// rating, as opposed to the 0 fill for an absent pair.
func (p *PivotMatrix) Rated(row, col int) bool {
	return p.rated[row][col]
}

// SimilarityMatrix is a square, symmetric matrix of cosine similarities
// between all entities on one axis of a pivot matrix. The diagonal is 1.0
// for every entity with a non-zero vector; an entity with no ratings has
// similarity 0 with everything, itself included (zero-norm rule).
type SimilarityMatrix struct {
	Axis   Axis        `json:"-"`
	IDs    []string    `json:"ids"`
	Values [][]float64 `json:"values"`

	index map[string]int
}

// Index returns the row/column index for an id.
func (s *SimilarityMatrix) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// sortIDs orders ids deterministically: numerically when every id parses
// as an integer, lexicographically otherwise. Numeric ties (e.g. "7" vs
// "007") fall back to the string form.
func sortIDs(ids []string) {
	numeric := make(map[string]int64, len(ids))
	allNumeric := true
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[id] = n
	}

	if allNumeric {
		sort.Slice(ids, func(i, j int) bool {
			a, b := numeric[ids[i]], numeric[ids[j]]
			if a != b {
				return a < b
			}
			return ids[i] < ids[j]
		})
		return
	}
	sort.Strings(ids)
}

// indexOf builds an id -> position lookup for a sorted id slice.
func indexOf(ids []string) map[string]int {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return index
}
