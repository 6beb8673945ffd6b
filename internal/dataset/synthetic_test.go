// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package dataset

import (
	"strconv"
	"testing"
)

func testParams() GeneratorParams {
	return GeneratorParams{
		Users:    20,
		Items:    10,
		PriceMin: 20,
		PriceMax: 100,
		Seed:     42,
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorParams)
	}{
		{name: "zero users", mutate: func(p *GeneratorParams) { p.Users = 0 }},
		{name: "zero items", mutate: func(p *GeneratorParams) { p.Items = 0 }},
		{name: "inverted price range", mutate: func(p *GeneratorParams) { p.PriceMin = 50; p.PriceMax = 20 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			if _, err := Generate(p); err == nil {
				t.Error("Generate() expected validation error, got nil")
			}
		})
	}
}

func TestGenerateShape(t *testing.T) {
	p := testParams()
	got, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(got) != p.Users*10 {
		t.Fatalf("len = %d, want %d (10 rows per user)", len(got), p.Users*10)
	}

	validCategories := map[string]bool{}
	for _, c := range DefaultCategories {
		validCategories[c] = true
	}

	for i, r := range got {
		uid, err := strconv.Atoi(r.UserID)
		if err != nil || uid < 1 || uid > p.Users {
			t.Fatalf("row %d: UserID %q outside [1, %d]", i, r.UserID, p.Users)
		}
		iid, err := strconv.Atoi(r.ItemID)
		if err != nil || iid < 1 || iid > p.Items {
			t.Fatalf("row %d: ItemID %q outside [1, %d]", i, r.ItemID, p.Items)
		}
		if r.Rating < 1 || r.Rating > 5 || r.Rating != float64(int(r.Rating)) {
			t.Fatalf("row %d: Rating %f is not an integer in [1, 5]", i, r.Rating)
		}
		if !validCategories[r.Category] {
			t.Fatalf("row %d: unknown category %q", i, r.Category)
		}
		if r.Price < p.PriceMin || r.Price > p.PriceMax {
			t.Fatalf("row %d: Price %f outside [%f, %f]", i, r.Price, p.PriceMin, p.PriceMax)
		}
	}
}

func TestGenerateItemAttributesAreStable(t *testing.T) {
	got, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Every occurrence of an item id must carry the same category and price.
	type attrs struct {
		category string
		price    float64
	}
	seen := map[string]attrs{}
	for i, r := range got {
		a, ok := seen[r.ItemID]
		if !ok {
			seen[r.ItemID] = attrs{category: r.Category, price: r.Price}
			continue
		}
		if a.category != r.Category || a.price != r.Price {
			t.Fatalf("row %d: item %q attributes changed from %+v to {%s %f}",
				i, r.ItemID, a, r.Category, r.Price)
		}
	}
}

func TestGenerateDeterministicBySeed(t *testing.T) {
	a, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs with identical seed: %+v vs %+v", i, a[i], b[i])
		}
	}

	p := testParams()
	p.Seed = 7
	c, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical datasets")
	}
}
