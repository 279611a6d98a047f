package canvas

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matthewbaird/formcanvas/internal/registry"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

// Session holds one editing surface for an embedding host that serves many
// concurrent editors. Each session owns its Editor; the host routes all of a
// session's events through one goroutine.
type Session struct {
	ID           string
	Editor       *Editor
	CreatedAt    time.Time
	LastActiveAt time.Time
}

// Touch updates the last activity timestamp.
func (s *Session) Touch() {
	s.LastActiveAt = time.Now()
}

// IsExpired reports whether the session exceeded the given max age.
func (s *Session) IsExpired(maxAge time.Duration) bool {
	return time.Since(s.CreatedAt) > maxAge
}

// IsIdle reports whether the session has been inactive past the timeout.
func (s *Session) IsIdle(timeout time.Duration) bool {
	return time.Since(s.LastActiveAt) > timeout
}

// Manager creates, looks up, and expires editing sessions.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	reg         *registry.Registry
	maxAge      time.Duration
	idleTimeout time.Duration
}

// NewManager creates a session manager. Sessions older than maxAge or idle
// past idleTimeout are removed by Cleanup.
func NewManager(reg *registry.Registry, maxAge, idleTimeout time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		reg:         reg,
		maxAge:      maxAge,
		idleTimeout: idleTimeout,
	}
}

// Create opens a new session editing the given schema.
func (m *Manager) Create(s *schema.Schema) *Session {
	now := time.Now()
	sess := &Session{
		ID:           uuid.NewString(),
		Editor:       NewEditor(s, m.reg),
		CreatedAt:    now,
		LastActiveAt: now,
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Get returns a session by id, touching its activity time.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		sess.Touch()
	}
	return sess, ok
}

// Close removes a session, cancelling any drag in flight so timers stop.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		sess.Editor.Coordinator().Cancel()
	}
}

// Cleanup drops expired and idle sessions, returning how many were removed.
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	var stale []*Session
	for id, sess := range m.sessions {
		if sess.IsExpired(m.maxAge) || sess.IsIdle(m.idleTimeout) {
			stale = append(stale, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, sess := range stale {
		sess.Editor.Coordinator().Cancel()
	}
	return len(stale)
}

// Len reports the live session count.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
