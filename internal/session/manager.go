// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/modista/internal/config"
	"github.com/tomtom215/modista/internal/metrics"
	"github.com/tomtom215/modista/internal/recommend"
)

var (
	// ErrSessionNotFound is returned when a session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the session limit is reached.
	ErrTooManySessions = errors.New("session limit reached")
)

type entry struct {
	session   *Session
	expiresAt time.Time
}

// Manager tracks live sessions with sliding TTL expiration.
//
// A background sweeper evicts expired sessions; every successful Get
// also refreshes the session's deadline.
type Manager struct {
	cfg    config.SessionConfig
	engine *recommend.Engine
	logger zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once

	// now is replaceable in tests
	now func() time.Time
}

// NewManager creates a session manager and starts its sweeper.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewManager(cfg config.SessionConfig, engine *recommend.Engine, logger zerolog.Logger) *Manager {
	m := &Manager{
		cfg:      cfg,
		engine:   engine,
		logger:   logger.With().Str("component", "sessions").Logger(),
		sessions: make(map[string]*entry),
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go m.sweepLoop()
	return m
}

// Create registers a new session with a fresh UUID.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	s := newSession(uuid.NewString(), m.engine)
	m.sessions[s.ID] = &entry{
		session:   s,
		expiresAt: m.now().Add(m.cfg.TTL),
	}

	metrics.SessionsCreated.Inc()
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	m.logger.Debug().Str("session_id", s.ID).Msg("session created")
	return s, nil
}

// Get returns the session with the given id and refreshes its TTL.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.sessions, id)
		metrics.SessionsExpired.Inc()
		metrics.SessionsActive.Set(float64(len(m.sessions)))
		return nil, ErrSessionNotFound
	}

	e.expiresAt = m.now().Add(m.cfg.TTL)
	return e.session, nil
}

// Delete removes a session. Unknown ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		metrics.SessionsActive.Set(float64(len(m.sessions)))
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the background sweeper.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

// sweep evicts all expired sessions.
func (m *Manager) sweep() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	for id, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, id)
			expired++
		}
	}
	if expired > 0 {
		metrics.SessionsExpired.Add(float64(expired))
		metrics.SessionsActive.Set(float64(len(m.sessions)))
		m.logger.Debug().Int("expired", expired).Int("remaining", len(m.sessions)).Msg("session sweep")
	}
}
