// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package recommend

import "sort"

// Neighbor is an entity ranked by similarity score to a target.
type Neighbor struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// TopNeighbors returns the n entities most similar to targetID, sorted by
// score descending. Ties keep the matrix's original order (stable sort).
// The target itself is never included. When n exceeds the number of
// available neighbors, or n <= 0, all of them are returned.
//
// Returns ErrNotFound when targetID is absent from the matrix index.
func TopNeighbors(sim *SimilarityMatrix, targetID string, n int) ([]Neighbor, error) {
	ti, ok := sim.Index(targetID)
	if !ok {
		return nil, ErrNotFound
	}

	neighbors := make([]Neighbor, 0, len(sim.IDs)-1)
	for i, id := range sim.IDs {
		if i == ti {
			continue
		}
		neighbors = append(neighbors, Neighbor{ID: id, Score: sim.Values[ti][i]})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Score > neighbors[j].Score
	})

	if n > 0 && n < len(neighbors) {
		neighbors = neighbors[:n]
	}
	return neighbors, nil
}
