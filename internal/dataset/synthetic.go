// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/tomtom215/modista/internal/models"
)

// DefaultCategories are the fashion categories assigned to generated items.
var DefaultCategories = []string{
	"Shirt",
	"Pants",
	"Shoes",
	"Jacket",
	"Hat",
	"Gloves",
	"Sweater",
	"Dress",
	"Scarf",
	"Boots",
}

// GeneratorParams controls synthetic dataset generation.
type GeneratorParams struct {
	Users      int      `json:"users"`
	Items      int      `json:"items"`
	Categories []string `json:"categories,omitempty"`
	PriceMin   float64  `json:"price_min"`
	PriceMax   float64  `json:"price_max"`
	Seed       int64    `json:"seed"`
}

// Validate checks the parameters for invalid values.
func (p GeneratorParams) Validate() error {
	if p.Users < 1 {
		return fmt.Errorf("users must be at least 1, got %d", p.Users)
	}
	if p.Items < 1 {
		return fmt.Errorf("items must be at least 1, got %d", p.Items)
	}
	if p.PriceMax < p.PriceMin {
		return fmt.Errorf("price_max (%.2f) must be >= price_min (%.2f)", p.PriceMax, p.PriceMin)
	}
	return nil
}

// Generate produces a synthetic fashion ratings dataset.
//
// Each user makes 10 purchases on average, so the table has Users*10
// rows. User and item ids are integers in [1, Users] and [1, Items];
// ratings are integers in [1, 5]. Category and price are item
// attributes: every row for a given item carries the same category and
// the same price, drawn uniformly from [PriceMin, PriceMax] and rounded
// to cents. The same seed always yields the same dataset.
func Generate(p GeneratorParams) ([]models.Rating, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	categories := p.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	rng := rand.New(rand.NewSource(p.Seed))

	itemCategories := make([]string, p.Items)
	itemPrices := make([]float64, p.Items)
	for i := range itemCategories {
		itemCategories[i] = categories[rng.Intn(len(categories))]
		price := p.PriceMin + rng.Float64()*(p.PriceMax-p.PriceMin)
		itemPrices[i] = math.Round(price*100) / 100
	}

	rows := p.Users * 10
	ratings := make([]models.Rating, 0, rows)
	for i := 0; i < rows; i++ {
		item := rng.Intn(p.Items) // zero-based item index
		ratings = append(ratings, models.Rating{
			UserID:   strconv.Itoa(rng.Intn(p.Users) + 1),
			ItemID:   strconv.Itoa(item + 1),
			Rating:   float64(rng.Intn(5) + 1),
			Category: itemCategories[item],
			Price:    itemPrices[item],
		})
	}
	return ratings, nil
}
