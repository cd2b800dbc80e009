package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/enum"
)

// Option configures a Manager.
type Option func(*Manager)

// WithAfterFunc replaces the timer used for the confirmation auto-reset.
func WithAfterFunc(af AfterFunc) Option { return func(m *Manager) { m.afterFunc = af } }

// WithClock overrides time.Now for session creation times.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// Manager owns the live kiosk sessions. It is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	placer    OrderPlacer
	delay     time.Duration
	afterFunc AfterFunc
	now       func() time.Time
}

// NewManager creates a Manager whose sessions place orders through placer.
// A non-positive delay falls back to DefaultAutoResetDelay.
func NewManager(placer OrderPlacer, delay time.Duration, opts ...Option) *Manager {
	if delay <= 0 {
		delay = DefaultAutoResetDelay
	}
	m := &Manager{
		sessions:  make(map[uuid.UUID]*Session),
		placer:    placer,
		delay:     delay,
		afterFunc: RealAfterFunc,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsValidRole checks if the given role can open a session.
func IsValidRole(role string) bool {
	return role == enum.UserRoleCustomer || role == enum.UserRoleAdmin
}

// Create opens a session for role.
func (m *Manager) Create(role string) (*Session, error) {
	if !IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	s := newSession(role, m.placer, m.delay, m.afterFunc, m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session with id.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

// Close tears down the session with id.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	s.Close()
	return nil
}

// CloseAll tears down every session, e.g. on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
