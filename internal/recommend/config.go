// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package recommend

import "fmt"

// Config contains engine tuning parameters.
type Config struct {
	// NeighborhoodK is the number of most similar users whose ratings
	// are aggregated when predicting item scores.
	// Typical range: 3-50.
	NeighborhoodK int `json:"neighborhood_k"`

	// MinRatingThreshold is the rating at or above which a neighbor's
	// rating counts as a strong positive signal. Used for recommendation
	// provenance only; it does not change the predicted scores.
	MinRatingThreshold float64 `json:"min_rating_threshold"`

	// DefaultN is the result count used when the caller passes n <= 0.
	DefaultN int `json:"default_n"`

	// MaxN caps caller-requested result counts.
	MaxN int `json:"max_n"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		NeighborhoodK:      5,
		MinRatingThreshold: 4.0,
		DefaultN:           5,
		MaxN:               100,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.NeighborhoodK < 1 {
		return fmt.Errorf("neighborhood_k must be at least 1, got %d", c.NeighborhoodK)
	}
	if c.DefaultN < 1 {
		return fmt.Errorf("default_n must be at least 1, got %d", c.DefaultN)
	}
	if c.MaxN < c.DefaultN {
		return fmt.Errorf("max_n (%d) must be >= default_n (%d)", c.MaxN, c.DefaultN)
	}
	return nil
}
