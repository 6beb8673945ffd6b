// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package recommend

import (
	"math"
	"testing"

	"github.com/tomtom215/modista/internal/models"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// pivotFromRows builds a pivot matrix directly from dense row data for
// similarity tests. Users are u0, u1, ...; items are i0, i1, ...
func pivotFromRows(t *testing.T, rows [][]float64) *PivotMatrix {
	t.Helper()

	var ratings []models.Rating
	for ui, row := range rows {
		for ii, v := range row {
			if v == 0 {
				continue
			}
			ratings = append(ratings, models.Rating{
				UserID: "u" + string(rune('0'+ui)),
				ItemID: "i" + string(rune('0'+ii)),
				Rating: v,
			})
		}
	}

	p, err := BuildPivot(ratings)
	if err != nil {
		t.Fatalf("BuildPivot() error = %v", err)
	}
	return p
}

func TestUserSimilarityIdenticalRows(t *testing.T) {
	// U1=[5,0,3], U2=[5,0,3] -> similarity 1.0
	p := pivotFromRows(t, [][]float64{
		{5, 0, 3},
		{5, 0, 3},
	})

	s := UserSimilarity(p)
	i0, _ := s.Index("u0")
	i1, _ := s.Index("u1")

	if !almostEqual(s.Values[i0][i1], 1.0) {
		t.Errorf("sim(identical rows) = %f, want 1.0", s.Values[i0][i1])
	}
}

func TestUserSimilarityOrthogonalRows(t *testing.T) {
	// U1=[5,0,0], U3=[0,0,5] -> no overlap, similarity 0.0
	p := pivotFromRows(t, [][]float64{
		{5, 0, 0},
		{0, 0, 5},
	})

	s := UserSimilarity(p)
	i0, _ := s.Index("u0")
	i1, _ := s.Index("u1")

	if !almostEqual(s.Values[i0][i1], 0.0) {
		t.Errorf("sim(orthogonal rows) = %f, want 0.0", s.Values[i0][i1])
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	p := pivotFromRows(t, [][]float64{
		{5, 3, 0, 1},
		{4, 0, 4, 1},
		{1, 1, 5, 5},
		{0, 2, 4, 0},
	})

	for _, s := range []*SimilarityMatrix{UserSimilarity(p), ItemSimilarity(p)} {
		n := len(s.IDs)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if !almostEqual(s.Values[i][j], s.Values[j][i]) {
					t.Errorf("axis %s: sim(%d,%d)=%f != sim(%d,%d)=%f",
						s.Axis, i, j, s.Values[i][j], j, i, s.Values[j][i])
				}
			}
		}
	}
}

func TestSimilarityUnitDiagonal(t *testing.T) {
	p := pivotFromRows(t, [][]float64{
		{5, 3, 1},
		{4, 2, 4},
	})

	s := UserSimilarity(p)
	for i := range s.IDs {
		if !almostEqual(s.Values[i][i], 1.0) {
			t.Errorf("diagonal[%d] = %f, want exactly 1.0", i, s.Values[i][i])
		}
	}
}

func TestSimilarityZeroNormVector(t *testing.T) {
	// Item i2 is never rated: its column is all zeros after the 0 fill.
	// The zero-norm rule maps its similarity with everything to 0,
	// its own diagonal included.
	ratings := []models.Rating{
		{UserID: "u0", ItemID: "i0", Rating: 5},
		{UserID: "u0", ItemID: "i1", Rating: 3},
		{UserID: "u1", ItemID: "i0", Rating: 4},
		{UserID: "u1", ItemID: "i2", Rating: 0}, // real 0 rating: zero-norm column
	}
	p, err := BuildPivot(ratings)
	if err != nil {
		t.Fatalf("BuildPivot() error = %v", err)
	}

	s := ItemSimilarity(p)
	zi, ok := s.Index("i2")
	if !ok {
		t.Fatal("item i2 missing from similarity matrix")
	}

	for j := range s.IDs {
		if s.Values[zi][j] != 0 {
			t.Errorf("zero-norm item sim[%d] = %f, want 0", j, s.Values[zi][j])
		}
		if s.Values[j][zi] != 0 {
			t.Errorf("zero-norm item sim[%d][zi] = %f, want 0", j, s.Values[j][zi])
		}
	}
	if s.Values[zi][zi] != 0 {
		t.Errorf("zero-norm diagonal = %f, want 0 (zero-norm rule overrides unit diagonal)", s.Values[zi][zi])
	}
}

func TestSimilarityValueRange(t *testing.T) {
	p := pivotFromRows(t, [][]float64{
		{5, 1, 0, 3},
		{2, 4, 1, 0},
		{0, 5, 5, 1},
	})

	for _, s := range []*SimilarityMatrix{UserSimilarity(p), ItemSimilarity(p)} {
		for i := range s.Values {
			for j := range s.Values[i] {
				v := s.Values[i][j]
				if v < -1-epsilon || v > 1+epsilon {
					t.Errorf("axis %s: sim[%d][%d] = %f outside [-1, 1]", s.Axis, i, j, v)
				}
			}
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{5, 0, 3}, b: []float64{5, 0, 3}, want: 1},
		{name: "orthogonal", a: []float64{5, 0, 0}, b: []float64{0, 0, 5}, want: 0},
		{name: "opposite", a: []float64{1, 2}, b: []float64{-1, -2}, want: -1},
		{name: "zero norm left", a: []float64{0, 0}, b: []float64{1, 2}, want: 0},
		{name: "zero norm right", a: []float64{1, 2}, b: []float64{0, 0}, want: 0},
		{name: "length mismatch", a: []float64{1}, b: []float64{1, 2}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("CosineSimilarity() = %f, want %f", got, tt.want)
			}
		})
	}
}
