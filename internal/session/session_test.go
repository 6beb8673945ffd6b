// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package session

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/modista/internal/models"
	"github.com/tomtom215/modista/internal/recommend"
)

func testSession(t *testing.T) *Session {
	t.Helper()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return newSession("test-session", engine)
}

func sampleRatings() []models.Rating {
	return []models.Rating{
		{UserID: "u1", ItemID: "i1", Rating: 5, Category: "Shirt", Price: 25},
		{UserID: "u1", ItemID: "i2", Rating: 3, Category: "Boots", Price: 80},
		{UserID: "u2", ItemID: "i1", Rating: 4, Category: "Shirt", Price: 25},
		{UserID: "u2", ItemID: "i3", Rating: 5, Category: "Scarf", Price: 15},
	}
}

func TestSessionEmptyDataset(t *testing.T) {
	s := testSession(t)

	if _, err := s.Pivot(); !errors.Is(err, recommend.ErrEmptyInput) {
		t.Errorf("Pivot() on empty session error = %v, want ErrEmptyInput", err)
	}
	if _, err := s.Recommend("u1", 5); !errors.Is(err, recommend.ErrEmptyInput) {
		t.Errorf("Recommend() on empty session error = %v, want ErrEmptyInput", err)
	}
}

func TestSessionLazyDerivation(t *testing.T) {
	s := testSession(t)
	s.SetRatings(sampleRatings(), "upload")

	p1, err := s.Pivot()
	if err != nil {
		t.Fatalf("Pivot() error = %v", err)
	}
	p2, err := s.Pivot()
	if err != nil {
		t.Fatalf("Pivot() error = %v", err)
	}
	if p1 != p2 {
		t.Error("Pivot() rebuilt the matrix on second call")
	}

	u1, err := s.UserSimilarity()
	if err != nil {
		t.Fatalf("UserSimilarity() error = %v", err)
	}
	u2, err := s.UserSimilarity()
	if err != nil {
		t.Fatalf("UserSimilarity() error = %v", err)
	}
	if u1 != u2 {
		t.Error("UserSimilarity() recomputed the matrix on second call")
	}
}

func TestSessionSetRatingsInvalidates(t *testing.T) {
	s := testSession(t)
	s.SetRatings(sampleRatings(), "upload")

	p1, err := s.Pivot()
	if err != nil {
		t.Fatalf("Pivot() error = %v", err)
	}
	u1, err := s.UserSimilarity()
	if err != nil {
		t.Fatalf("UserSimilarity() error = %v", err)
	}

	s.SetRatings([]models.Rating{
		{UserID: "u9", ItemID: "i9", Rating: 1, Category: "Hat", Price: 12},
	}, "generate")

	p2, err := s.Pivot()
	if err != nil {
		t.Fatalf("Pivot() after reload error = %v", err)
	}
	if p1 == p2 {
		t.Error("Pivot() reused the stale matrix after SetRatings")
	}
	u2, err := s.UserSimilarity()
	if err != nil {
		t.Fatalf("UserSimilarity() after reload error = %v", err)
	}
	if u1 == u2 {
		t.Error("UserSimilarity() reused the stale matrix after SetRatings")
	}
	if s.Source() != "generate" {
		t.Errorf("Source() = %q, want %q", s.Source(), "generate")
	}
}

func TestSessionSimilarityAxis(t *testing.T) {
	s := testSession(t)
	s.SetRatings(sampleRatings(), "upload")

	users, err := s.Similarity(recommend.AxisUsers)
	if err != nil {
		t.Fatalf("Similarity(users) error = %v", err)
	}
	if len(users.IDs) != 2 {
		t.Errorf("user axis ids = %d, want 2", len(users.IDs))
	}

	items, err := s.Similarity(recommend.AxisItems)
	if err != nil {
		t.Fatalf("Similarity(items) error = %v", err)
	}
	if len(items.IDs) != 3 {
		t.Errorf("item axis ids = %d, want 3", len(items.IDs))
	}
}

func TestSessionRecommend(t *testing.T) {
	s := testSession(t)
	s.SetRatings(sampleRatings(), "upload")

	got, err := s.Recommend("u1", 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// u1 has not rated i3; u2 (the only neighbor) rated it 5.
	if len(got) != 1 || got[0].ItemID != "i3" {
		t.Fatalf("Recommend() = %+v, want exactly [i3]", got)
	}

	if _, err := s.Recommend("ghost", 5); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("Recommend(unknown user) error = %v, want ErrNotFound", err)
	}
}

func TestSessionNeighborsAndSimilarItems(t *testing.T) {
	s := testSession(t)
	s.SetRatings(sampleRatings(), "upload")

	nb, err := s.Neighbors(recommend.AxisUsers, "u1", 5)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}
	if len(nb) != 1 || nb[0].ID != "u2" {
		t.Fatalf("Neighbors() = %+v, want [u2]", nb)
	}

	si, err := s.SimilarItems("i1", 5)
	if err != nil {
		t.Fatalf("SimilarItems() error = %v", err)
	}
	if len(si) != 2 {
		t.Errorf("SimilarItems() returned %d items, want 2", len(si))
	}
}
