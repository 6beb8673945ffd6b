// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Engine.NeighborhoodK != 5 {
		t.Errorf("NeighborhoodK = %d, want 5", cfg.Engine.NeighborhoodK)
	}
	if cfg.Engine.MinRatingThreshold != 4.0 {
		t.Errorf("MinRatingThreshold = %f, want 4.0", cfg.Engine.MinRatingThreshold)
	}
	if cfg.Generator.Users != 100 || cfg.Generator.Items != 50 {
		t.Errorf("generator defaults = %d users / %d items, want 100/50",
			cfg.Generator.Users, cfg.Generator.Items)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("session TTL = %s, want 30m", cfg.Session.TTL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "server.timeout",
		},
		{
			name:    "neighborhood k below 1",
			mutate:  func(c *Config) { c.Engine.NeighborhoodK = 0 },
			wantErr: "engine.neighborhood_k",
		},
		{
			name:    "max_n below default_n",
			mutate:  func(c *Config) { c.Engine.MaxN = 1; c.Engine.DefaultN = 10 },
			wantErr: "engine.max_n",
		},
		{
			name:    "session ttl zero",
			mutate:  func(c *Config) { c.Session.TTL = 0 },
			wantErr: "session.ttl",
		},
		{
			name:    "inverted price range",
			mutate:  func(c *Config) { c.Generator.PriceMin = 50; c.Generator.PriceMax = 10 },
			wantErr: "generator.price_max",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"RECOMMEND_NEIGHBORHOOD_K", "engine.neighborhood_k"},
		{"LOG_LEVEL", "logging.level"},
		{"CORS_ORIGINS", "api.cors_origins"},
		{"SESSION_TTL", "session.ttl"},
		{"PATH", ""},     // unmapped vars are skipped
		{"HOSTNAME", ""}, // unmapped vars are skipped
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("RECOMMEND_NEIGHBORHOOD_K", "11")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Engine.NeighborhoodK != 11 {
		t.Errorf("Engine.NeighborhoodK = %d, want 11", cfg.Engine.NeighborhoodK)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadEnvCORSList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.API.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
	for i := range want {
		if cfg.API.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.API.CORSOrigins[i], want[i])
		}
	}
}
