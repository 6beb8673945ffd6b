// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package session

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/modista/internal/config"
	"github.com/tomtom215/modista/internal/recommend"
)

func testManager(t *testing.T, cfg config.SessionConfig) *Manager {
	t.Helper()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	m := NewManager(cfg, engine, zerolog.Nop())
	t.Cleanup(m.Close)
	return m
}

func defaultSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		TTL:           30 * time.Minute,
		SweepInterval: time.Hour, // sweeps driven manually in tests
		MaxSessions:   4,
	}
}

func TestManagerCreateAndGet(t *testing.T) {
	m := testManager(t, defaultSessionConfig())

	s, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID == "" {
		t.Fatal("Create() returned a session without an id")
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != s {
		t.Error("Get() returned a different session instance")
	}
}

func TestManagerGetUnknown(t *testing.T) {
	m := testManager(t, defaultSessionConfig())

	_, err := m.Get("no-such-session")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerMaxSessions(t *testing.T) {
	cfg := defaultSessionConfig()
	cfg.MaxSessions = 2
	m := testManager(t, cfg)

	for i := 0; i < 2; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}

	_, err := m.Create()
	if !errors.Is(err, ErrTooManySessions) {
		t.Errorf("Create() error = %v, want ErrTooManySessions", err)
	}
}

func TestManagerDelete(t *testing.T) {
	m := testManager(t, defaultSessionConfig())

	s, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	m.Delete(s.ID)
	m.Delete(s.ID) // second delete is a no-op

	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrSessionNotFound", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestManagerTTLExpiry(t *testing.T) {
	cfg := defaultSessionConfig()
	cfg.TTL = 10 * time.Minute
	m := testManager(t, cfg)

	current := time.Now()
	m.now = func() time.Time { return current }

	s, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Before the deadline the session is reachable and the TTL slides.
	current = current.Add(9 * time.Minute)
	if _, err := m.Get(s.ID); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	// The refresh from the previous Get pushed the deadline out.
	current = current.Add(9 * time.Minute)
	if _, err := m.Get(s.ID); err != nil {
		t.Fatalf("Get() after sliding refresh error = %v", err)
	}

	current = current.Add(11 * time.Minute)
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerSweep(t *testing.T) {
	cfg := defaultSessionConfig()
	cfg.TTL = time.Minute
	m := testManager(t, cfg)

	current := time.Now()
	m.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	current = current.Add(2 * time.Minute)
	m.sweep()

	if m.Len() != 0 {
		t.Errorf("Len() after sweep = %d, want 0", m.Len())
	}
}
