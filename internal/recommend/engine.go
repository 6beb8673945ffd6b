// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package recommend

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/modista/internal/metrics"
	"github.com/tomtom215/modista/internal/models"
)

// ScoredItem is an item with a predicted score for a target user.
type ScoredItem struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`

	// Support is the number of neighborhood users whose rating of the
	// item contributed to the prediction.
	Support int `json:"support"`

	// StrongSupport counts contributing ratings at or above the
	// configured MinRatingThreshold.
	StrongSupport int `json:"strong_support"`
}

// Engine wires the pipeline stages together with configuration, logging,
// and metrics. The engine itself is stateless: every method is a pure
// function of its inputs, so one Engine is safe for concurrent use.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
}

// NewEngine creates an engine with the given configuration.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// BuildPivot builds the user-item pivot matrix from a ratings table.
func (e *Engine) BuildPivot(ratings []models.Rating) (*PivotMatrix, error) {
	defer metrics.ObserveEngineCompute("pivot", time.Now())

	p, err := BuildPivot(ratings)
	if err != nil {
		metrics.EngineComputeErrors.WithLabelValues("pivot", errorKind(err)).Inc()
		return nil, err
	}

	metrics.PivotMatrixCells.Set(float64(len(p.UserIDs) * len(p.ItemIDs)))
	e.logger.Debug().
		Int("users", len(p.UserIDs)).
		Int("items", len(p.ItemIDs)).
		Int("ratings", len(ratings)).
		Msg("pivot matrix built")
	return p, nil
}

// UserSimilarity computes the user-user cosine similarity matrix.
func (e *Engine) UserSimilarity(p *PivotMatrix) *SimilarityMatrix {
	defer metrics.ObserveEngineCompute("user_similarity", time.Now())
	return UserSimilarity(p)
}

// ItemSimilarity computes the item-item cosine similarity matrix.
func (e *Engine) ItemSimilarity(p *PivotMatrix) *SimilarityMatrix {
	defer metrics.ObserveEngineCompute("item_similarity", time.Now())
	return ItemSimilarity(p)
}

// TopNeighbors ranks entities by similarity to targetID. A non-positive n
// falls back to the configured default; n is capped at MaxN.
func (e *Engine) TopNeighbors(sim *SimilarityMatrix, targetID string, n int) ([]Neighbor, error) {
	defer metrics.ObserveEngineCompute("neighbors", time.Now())

	neighbors, err := TopNeighbors(sim, targetID, e.clampN(n))
	if err != nil {
		metrics.EngineComputeErrors.WithLabelValues("neighbors", errorKind(err)).Inc()
		return nil, err
	}
	return neighbors, nil
}

// RecommendItems predicts scores for items the target user has not rated.
//
// For the top-k most similar users (k = Config.NeighborhoodK) the
// predicted score of a candidate item i is
//
//	score(u, i) = sum_v sim(u, v) * r(v, i) / sum_v |sim(u, v)|
//
// over neighbors v that rated i. Items the target already rated are
// excluded. Results are sorted by score descending; ties keep the pivot's
// item order. A non-positive n falls back to the configured default.
//
// Returns ErrNotFound when targetUser is absent from the pivot.
func (e *Engine) RecommendItems(p *PivotMatrix, userSim *SimilarityMatrix, targetUser string, n int) ([]ScoredItem, error) {
	defer metrics.ObserveEngineCompute("recommend", time.Now())

	ui, ok := p.UserIndex(targetUser)
	if !ok {
		metrics.EngineComputeErrors.WithLabelValues("recommend", errorKind(ErrNotFound)).Inc()
		return nil, ErrNotFound
	}

	neighbors, err := TopNeighbors(userSim, targetUser, e.cfg.NeighborhoodK)
	if err != nil {
		metrics.EngineComputeErrors.WithLabelValues("recommend", errorKind(err)).Inc()
		return nil, err
	}

	// Resolve neighbor pivot rows once
	type neighborRow struct {
		row int
		sim float64
	}
	rows := make([]neighborRow, 0, len(neighbors))
	for _, nb := range neighbors {
		if ri, ok := p.UserIndex(nb.ID); ok {
			rows = append(rows, neighborRow{row: ri, sim: nb.Score})
		}
	}

	scored := make([]ScoredItem, 0, len(p.ItemIDs))
	for ii, itemID := range p.ItemIDs {
		if p.Rated(ui, ii) {
			continue // already rated by the target user
		}

		var num, den float64
		support, strong := 0, 0
		for _, nb := range rows {
			if !p.Rated(nb.row, ii) {
				continue
			}
			rating := p.Values[nb.row][ii]
			num += nb.sim * rating
			den += math.Abs(nb.sim)
			support++
			if rating >= e.cfg.MinRatingThreshold {
				strong++
			}
		}

		if den == 0 {
			continue // no neighborhood signal for this item
		}
		scored = append(scored, ScoredItem{
			ItemID:        itemID,
			Score:         num / den,
			Support:       support,
			StrongSupport: strong,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit := e.clampN(n); limit < len(scored) {
		scored = scored[:limit]
	}

	e.logger.Debug().
		Str("user", targetUser).
		Int("neighborhood", len(rows)).
		Int("candidates", len(scored)).
		Msg("recommendations computed")
	return scored, nil
}

// SimilarItems returns the items most similar to itemID.
func (e *Engine) SimilarItems(itemSim *SimilarityMatrix, itemID string, n int) ([]Neighbor, error) {
	return e.TopNeighbors(itemSim, itemID, n)
}

// clampN resolves a caller-requested result count against the configured
// default and cap.
func (e *Engine) clampN(n int) int {
	if n <= 0 {
		return e.cfg.DefaultN
	}
	if n > e.cfg.MaxN {
		return e.cfg.MaxN
	}
	return n
}

// errorKind maps a sentinel error to its metrics label.
func errorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrMalformedData):
		return "malformed_data"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
