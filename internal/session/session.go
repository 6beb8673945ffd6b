// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

// Package session holds per-client analysis state.
//
// A session owns one ratings dataset and lazily derives the pivot and
// similarity matrices from it. Derived matrices are computed at most
// once per dataset and invalidated whenever the dataset is replaced.
package session

import (
	"sync"
	"time"

	"github.com/tomtom215/modista/internal/metrics"
	"github.com/tomtom215/modista/internal/models"
	"github.com/tomtom215/modista/internal/recommend"
)

// Session is one client's analysis workspace.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	engine *recommend.Engine

	mu      sync.Mutex
	ratings []models.Rating
	source  string
	pivot   *recommend.PivotMatrix
	userSim *recommend.SimilarityMatrix
	itemSim *recommend.SimilarityMatrix
}

func newSession(id string, engine *recommend.Engine) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		engine:    engine,
	}
}

// SetRatings replaces the session dataset and invalidates all derived
// matrices. The source label ("upload", "generate", "store") feeds the
// dataset load metrics.
func (s *Session) SetRatings(ratings []models.Rating, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings = ratings
	s.source = source
	s.pivot = nil
	s.userSim = nil
	s.itemSim = nil

	metrics.DatasetRowsLoaded.WithLabelValues(source).Add(float64(len(ratings)))
}

// Ratings returns the session dataset.
func (s *Session) Ratings() []models.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings
}

// Source reports where the current dataset came from.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Pivot returns the user-item pivot matrix, building it on first use.
// Fails with recommend.ErrEmptyInput when no dataset has been loaded.
func (s *Session) Pivot() (*recommend.PivotMatrix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pivotLocked()
}

func (s *Session) pivotLocked() (*recommend.PivotMatrix, error) {
	if s.pivot != nil {
		return s.pivot, nil
	}
	p, err := s.engine.BuildPivot(s.ratings)
	if err != nil {
		return nil, err
	}
	s.pivot = p
	return p, nil
}

// UserSimilarity returns the user-user similarity matrix, deriving the
// pivot first when needed.
func (s *Session) UserSimilarity() (*recommend.SimilarityMatrix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userSim != nil {
		return s.userSim, nil
	}
	p, err := s.pivotLocked()
	if err != nil {
		return nil, err
	}
	s.userSim = s.engine.UserSimilarity(p)
	return s.userSim, nil
}

// ItemSimilarity returns the item-item similarity matrix, deriving the
// pivot first when needed.
func (s *Session) ItemSimilarity() (*recommend.SimilarityMatrix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.itemSim != nil {
		return s.itemSim, nil
	}
	p, err := s.pivotLocked()
	if err != nil {
		return nil, err
	}
	s.itemSim = s.engine.ItemSimilarity(p)
	return s.itemSim, nil
}

// Similarity returns the similarity matrix for the given axis.
func (s *Session) Similarity(axis recommend.Axis) (*recommend.SimilarityMatrix, error) {
	if axis == recommend.AxisItems {
		return s.ItemSimilarity()
	}
	return s.UserSimilarity()
}

// Recommend predicts item scores for targetUser from the session dataset.
func (s *Session) Recommend(targetUser string, n int) ([]recommend.ScoredItem, error) {
	p, err := s.Pivot()
	if err != nil {
		return nil, err
	}
	sim, err := s.UserSimilarity()
	if err != nil {
		return nil, err
	}
	return s.engine.RecommendItems(p, sim, targetUser, n)
}

// SimilarItems returns the items most similar to itemID.
func (s *Session) SimilarItems(itemID string, n int) ([]recommend.Neighbor, error) {
	sim, err := s.ItemSimilarity()
	if err != nil {
		return nil, err
	}
	return s.engine.SimilarItems(sim, itemID, n)
}

// Neighbors ranks entities on the given axis by similarity to targetID.
func (s *Session) Neighbors(axis recommend.Axis, targetID string, n int) ([]recommend.Neighbor, error) {
	sim, err := s.Similarity(axis)
	if err != nil {
		return nil, err
	}
	return s.engine.TopNeighbors(sim, targetID, n)
}
