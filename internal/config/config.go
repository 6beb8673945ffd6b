// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

// Package config loads and validates Modista configuration.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Engine    EngineConfig    `koanf:"engine"`
	Session   SessionConfig   `koanf:"session"`
	Generator GeneratorConfig `koanf:"generator"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings for the dataset store.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" keeps datasets
	// for the lifetime of the process only.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads limits DuckDB worker threads. 0 = use runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// EngineConfig holds recommendation engine settings.
type EngineConfig struct {
	// NeighborhoodK is the number of most similar users whose ratings
	// are aggregated when predicting item scores.
	NeighborhoodK int `koanf:"neighborhood_k"`

	// MinRatingThreshold marks a neighbor's rating as a strong positive
	// signal when reporting recommendation provenance. Rating scale units.
	MinRatingThreshold float64 `koanf:"min_rating_threshold"`

	// DefaultN is the number of results returned when the caller does
	// not specify one.
	DefaultN int `koanf:"default_n"`

	// MaxN caps caller-requested result counts.
	MaxN int `koanf:"max_n"`
}

// SessionConfig holds in-memory analysis session settings.
type SessionConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	MaxSessions   int           `koanf:"max_sessions"`
}

// GeneratorConfig holds defaults for the synthetic dataset generator.
type GeneratorConfig struct {
	Users    int     `koanf:"users"`
	Items    int     `koanf:"items"`
	Seed     int64   `koanf:"seed"`
	PriceMin float64 `koanf:"price_min"`
	PriceMax float64 `koanf:"price_max"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	// MaxUploadBytes caps CSV upload size.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads configuration from defaults, config file, and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateGenerator(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.NeighborhoodK < 1 {
		return fmt.Errorf("engine.neighborhood_k must be at least 1, got %d", c.Engine.NeighborhoodK)
	}
	if c.Engine.DefaultN < 1 {
		return fmt.Errorf("engine.default_n must be at least 1, got %d", c.Engine.DefaultN)
	}
	if c.Engine.MaxN < c.Engine.DefaultN {
		return fmt.Errorf("engine.max_n (%d) must be >= engine.default_n (%d)", c.Engine.MaxN, c.Engine.DefaultN)
	}
	return nil
}

func (c *Config) validateSession() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive, got %s", c.Session.SweepInterval)
	}
	if c.Session.MaxSessions < 1 {
		return fmt.Errorf("session.max_sessions must be at least 1, got %d", c.Session.MaxSessions)
	}
	return nil
}

func (c *Config) validateGenerator() error {
	if c.Generator.Users < 1 || c.Generator.Items < 1 {
		return fmt.Errorf("generator.users and generator.items must be at least 1, got %d and %d",
			c.Generator.Users, c.Generator.Items)
	}
	if c.Generator.PriceMax < c.Generator.PriceMin {
		return fmt.Errorf("generator.price_max (%.2f) must be >= generator.price_min (%.2f)",
			c.Generator.PriceMax, c.Generator.PriceMin)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q must be json or console", c.Logging.Format)
	}
	return nil
}
