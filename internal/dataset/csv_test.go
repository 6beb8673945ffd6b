// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/modista/internal/models"
	"github.com/tomtom215/modista/internal/recommend"
)

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantRows int
	}{
		{
			name: "valid file",
			input: "User_ID,Item_ID,Rating,Category,Price\n" +
				"1,10,5,Shirt,25.50\n" +
				"2,11,3,Boots,80.00\n",
			wantRows: 2,
		},
		{
			name: "columns in different order",
			input: "Price,Category,Rating,Item_ID,User_ID\n" +
				"25.50,Shirt,5,10,1\n",
			wantRows: 1,
		},
		{
			name: "extra column ignored",
			input: "User_ID,Item_ID,Rating,Category,Price,Notes\n" +
				"1,10,5,Shirt,25.50,gift\n",
			wantRows: 1,
		},
		{
			name:    "missing Price column",
			input:   "User_ID,Item_ID,Rating,Category\n1,10,5,Shirt\n",
			wantErr: recommend.ErrMalformedData,
		},
		{
			name:    "lowercase header is not accepted",
			input:   "user_id,item_id,rating,category,price\n1,10,5,Shirt,25.50\n",
			wantErr: recommend.ErrMalformedData,
		},
		{
			name:    "non-numeric rating",
			input:   "User_ID,Item_ID,Rating,Category,Price\n1,10,great,Shirt,25.50\n",
			wantErr: recommend.ErrMalformedData,
		},
		{
			name:    "non-numeric price",
			input:   "User_ID,Item_ID,Rating,Category,Price\n1,10,5,Shirt,cheap\n",
			wantErr: recommend.ErrMalformedData,
		},
		{
			name:    "empty user id",
			input:   "User_ID,Item_ID,Rating,Category,Price\n,10,5,Shirt,25.50\n",
			wantErr: recommend.ErrMalformedData,
		},
		{
			name:    "header only",
			input:   "User_ID,Item_ID,Rating,Category,Price\n",
			wantErr: recommend.ErrEmptyInput,
		},
		{
			name:    "completely empty file",
			input:   "",
			wantErr: recommend.ErrEmptyInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadCSV() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCSV() error = %v", err)
			}
			if len(got) != tt.wantRows {
				t.Errorf("len(rows) = %d, want %d", len(got), tt.wantRows)
			}
		})
	}
}

func TestLoadCSVFieldValues(t *testing.T) {
	input := "User_ID,Item_ID,Rating,Category,Price\n7,42,4,Scarf,33.25\n"

	got, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	want := models.Rating{UserID: "7", ItemID: "42", Rating: 4, Category: "Scarf", Price: 33.25}
	if got[0] != want {
		t.Errorf("row = %+v, want %+v", got[0], want)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	ratings := []models.Rating{
		{UserID: "1", ItemID: "10", Rating: 5, Category: "Shirt", Price: 25.5},
		{UserID: "2", ItemID: "11", Rating: 3.5, Category: "Boots", Price: 80},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ratings); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	firstLine := strings.SplitN(buf.String(), "\n", 2)[0]
	if firstLine != strings.Join(models.RatingColumns, ",") {
		t.Errorf("header = %q, want canonical column order", firstLine)
	}

	got, err := LoadCSV(&buf)
	if err != nil {
		t.Fatalf("LoadCSV(written output) error = %v", err)
	}
	if len(got) != len(ratings) {
		t.Fatalf("round trip len = %d, want %d", len(got), len(ratings))
	}
	for i := range ratings {
		if got[i] != ratings[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], ratings[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	ratings := []models.Rating{
		{UserID: "1", ItemID: "10", Rating: 5, Category: "Shirt", Price: 25},
		{UserID: "1", ItemID: "11", Rating: 3, Category: "Boots", Price: 80},
		{UserID: "2", ItemID: "10", Rating: 4, Category: "Shirt", Price: 25},
	}

	s := Summarize(ratings)
	if s.Rows != 3 || s.Users != 2 || s.Items != 2 {
		t.Errorf("counts = %d rows, %d users, %d items; want 3, 2, 2", s.Rows, s.Users, s.Items)
	}
	if s.MeanRating != 4 {
		t.Errorf("mean rating = %f, want 4", s.MeanRating)
	}
	want := []string{"Boots", "Shirt"}
	if len(s.Categories) != 2 || s.Categories[0] != want[0] || s.Categories[1] != want[1] {
		t.Errorf("categories = %v, want %v", s.Categories, want)
	}
}
