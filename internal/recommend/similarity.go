// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package recommend

import "math"

// Similarity computes pairwise cosine similarity between the rows
// (AxisUsers) or columns (AxisItems) of a filled pivot matrix.
//
// The result is square and symmetric with a unit diagonal for every
// entity whose vector has a non-zero norm. A pure-zero vector (an entity
// with no ratings) has similarity 0 with everything, itself included,
// per the zero-norm rule.
func Similarity(p *PivotMatrix, axis Axis) *SimilarityMatrix {
	var ids []string
	var vectors [][]float64

	switch axis {
	case AxisItems:
		ids = p.ItemIDs
		vectors = transpose(p.Values, len(p.UserIDs), len(p.ItemIDs))
	default:
		ids = p.UserIDs
		vectors = p.Values
	}

	n := len(ids)
	norms := make([]float64, n)
	for i, vec := range vectors {
		norms[i] = norm(vec)
	}

	s := &SimilarityMatrix{
		Axis:   axis,
		IDs:    append([]string(nil), ids...),
		Values: make([][]float64, n),
		index:  indexOf(ids),
	}
	for i := range s.Values {
		s.Values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if norms[i] == 0 {
			continue // row and column stay 0, diagonal included
		}
		s.Values[i][i] = 1.0

		for j := i + 1; j < n; j++ {
			if norms[j] == 0 {
				continue
			}
			sim := dot(vectors[i], vectors[j]) / (norms[i] * norms[j])
			s.Values[i][j] = sim
			s.Values[j][i] = sim
		}
	}

	return s
}

// UserSimilarity computes the user-user cosine similarity matrix.
func UserSimilarity(p *PivotMatrix) *SimilarityMatrix {
	return Similarity(p, AxisUsers)
}

// ItemSimilarity computes the item-item cosine similarity matrix.
func ItemSimilarity(p *PivotMatrix) *SimilarityMatrix {
	return Similarity(p, AxisItems)
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Defined as 0 when either vector has zero norm, to avoid division by zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot(a, b) / (na * nb)
}

func dot(a, b []float64) float64 {
	var d float64
	for i := range a {
		d += a[i] * b[i]
	}
	return d
}

func norm(v []float64) float64 {
	var sq float64
	for _, x := range v {
		sq += x * x
	}
	return math.Sqrt(sq)
}

// transpose returns the column vectors of a rows x cols matrix.
func transpose(values [][]float64, rows, cols int) [][]float64 {
	t := make([][]float64, cols)
	for c := 0; c < cols; c++ {
		t[c] = make([]float64, rows)
		for r := 0; r < rows; r++ {
			t[c][r] = values[r][c]
		}
	}
	return t
}
