package browser

import (
	"fmt"
	"sync"

	"github.com/atheor/gowebtest/internal/logging"
)

// Manager hands out one Session per execution context. Contexts are named
// by a caller-supplied identifier (a worker ID, a scenario name), so the
// task runtime decides what "one worker" means rather than relying on
// implicit thread identity. No two contexts ever share a session, which is
// what makes unsynchronized Session implementations safe.
type Manager struct {
	cfg    Config
	logger logging.Logger

	mu       sync.Mutex
	sessions map[string]Session
}

// NewManager creates a Manager that constructs sessions with cfg via the
// backend registry.
func NewManager(cfg Config, logger logging.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		logger:   logger.With(logging.Field{Key: "component", Value: "session-manager"}),
		sessions: map[string]Session{},
	}
}

// Get returns the session for contextID, lazily creating it on first use.
func (m *Manager) Get(contextID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[contextID]; ok {
		return s, nil
	}

	m.logger.Debug("no session for context, creating",
		logging.Field{Key: "context", Value: contextID})

	s, err := NewSession(m.cfg, m.logger)
	if err != nil {
		return nil, fmt.Errorf("create session for context %q: %w", contextID, err)
	}
	m.sessions[contextID] = s
	return s, nil
}

// Set installs a pre-built session for contextID, closing any previous one.
func (m *Manager) Set(contextID string, s Session) {
	m.mu.Lock()
	old := m.sessions[contextID]
	m.sessions[contextID] = s
	m.mu.Unlock()

	if old != nil && old != s {
		if err := old.Close(); err != nil {
			m.logger.Warn("closing replaced session",
				logging.Field{Key: "context", Value: contextID},
				logging.Field{Key: "error", Value: err.Error()})
		}
	}
}

// Has reports whether a session exists for contextID.
func (m *Manager) Has(contextID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[contextID]
	return ok
}

// Quit closes and removes the session for contextID. Quitting an unknown
// context is a no-op.
func (m *Manager) Quit(contextID string) {
	m.mu.Lock()
	s, ok := m.sessions[contextID]
	delete(m.sessions, contextID)
	m.mu.Unlock()

	if !ok {
		return
	}
	if err := s.Close(); err != nil {
		m.logger.Error("closing session",
			logging.Field{Key: "context", Value: contextID},
			logging.Field{Key: "error", Value: err.Error()})
		return
	}
	m.logger.Info("session closed", logging.Field{Key: "context", Value: contextID})
}

// QuitAll closes every session. Used by run-level teardown.
func (m *Manager) QuitAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = map[string]Session{}
	m.mu.Unlock()

	for id, s := range sessions {
		if err := s.Close(); err != nil {
			m.logger.Error("closing session",
				logging.Field{Key: "context", Value: id},
				logging.Field{Key: "error", Value: err.Error()})
		}
	}
}
