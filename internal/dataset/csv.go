// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/modista/internal/models"
	"github.com/tomtom215/modista/internal/recommend"
)

// LoadCSV parses a ratings CSV from r.
//
// The header must contain all of User_ID, Item_ID, Rating, Category and
// Price (case-sensitive, any order). A missing column or a row whose
// Rating or Price does not parse as a number fails with ErrMalformedData
// before any matrix computation. A well-formed file with zero data rows
// fails with ErrEmptyInput.
func LoadCSV(r io.Reader) ([]models.Rating, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file has no header row", recommend.ErrEmptyInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", recommend.ErrMalformedData, err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}
	// Rows may carry trailing columns beyond the five we use.
	cr.FieldsPerRecord = -1

	var ratings []models.Rating
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", recommend.ErrMalformedData, line+1, err)
		}
		line++

		rating, err := parseRow(record, cols, line)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}

	if len(ratings) == 0 {
		return nil, fmt.Errorf("%w: file has no data rows", recommend.ErrEmptyInput)
	}
	return ratings, nil
}

// columnIndexes maps the required columns to their positions in the header.
type columnIndexes struct {
	user, item, rating, category, price int
}

func resolveColumns(header []string) (columnIndexes, error) {
	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	cols := columnIndexes{}
	targets := []struct {
		name string
		dst  *int
	}{
		{"User_ID", &cols.user},
		{"Item_ID", &cols.item},
		{"Rating", &cols.rating},
		{"Category", &cols.category},
		{"Price", &cols.price},
	}
	for _, t := range targets {
		i, ok := idx[t.name]
		if !ok {
			return cols, fmt.Errorf("%w: missing required column %q", recommend.ErrMalformedData, t.name)
		}
		*t.dst = i
	}
	return cols, nil
}

func parseRow(record []string, cols columnIndexes, line int) (models.Rating, error) {
	width := maxIndex(cols) + 1
	if len(record) < width {
		return models.Rating{}, fmt.Errorf("%w: row %d has %d fields, need at least %d",
			recommend.ErrMalformedData, line, len(record), width)
	}

	userID := strings.TrimSpace(record[cols.user])
	itemID := strings.TrimSpace(record[cols.item])
	if userID == "" || itemID == "" {
		return models.Rating{}, fmt.Errorf("%w: row %d has an empty User_ID or Item_ID",
			recommend.ErrMalformedData, line)
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(record[cols.rating]), 64)
	if err != nil {
		return models.Rating{}, fmt.Errorf("%w: row %d: Rating %q is not numeric",
			recommend.ErrMalformedData, line, record[cols.rating])
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(record[cols.price]), 64)
	if err != nil {
		return models.Rating{}, fmt.Errorf("%w: row %d: Price %q is not numeric",
			recommend.ErrMalformedData, line, record[cols.price])
	}

	return models.Rating{
		UserID:   userID,
		ItemID:   itemID,
		Rating:   rating,
		Category: strings.TrimSpace(record[cols.category]),
		Price:    price,
	}, nil
}

func maxIndex(cols columnIndexes) int {
	m := cols.user
	for _, i := range []int{cols.item, cols.rating, cols.category, cols.price} {
		if i > m {
			m = i
		}
	}
	return m
}

// WriteCSV writes ratings to w in the canonical column order.
func WriteCSV(w io.Writer, ratings []models.Rating) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.RatingColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range ratings {
		record := []string{
			r.UserID,
			r.ItemID,
			strconv.FormatFloat(r.Rating, 'f', -1, 64),
			r.Category,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Summarize computes aggregate statistics over a ratings table.
// The Name and CreatedAt fields are left for the caller to fill.
func Summarize(ratings []models.Rating) models.DatasetSummary {
	users := map[string]struct{}{}
	items := map[string]struct{}{}
	cats := map[string]struct{}{}
	var sum float64
	for _, r := range ratings {
		users[r.UserID] = struct{}{}
		items[r.ItemID] = struct{}{}
		if r.Category != "" {
			cats[r.Category] = struct{}{}
		}
		sum += r.Rating
	}

	var mean float64
	if len(ratings) > 0 {
		mean = sum / float64(len(ratings))
	}

	categories := make([]string, 0, len(cats))
	for c := range cats {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return models.DatasetSummary{
		Rows:       len(ratings),
		Users:      len(users),
		Items:      len(items),
		MeanRating: mean,
		Categories: categories,
	}
}
