package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gridlock-games/rushhour/game/puzzle"
	"github.com/gridlock-games/rushhour/game/service"
)

// Manager handles session storage and lifecycle. It keeps all sessions in
// memory and, when a persistence layer is attached, writes them through so
// solve results survive restarts.
type Manager struct {
	sessions    map[string]*service.Session
	mu          sync.RWMutex
	persistence SessionPersistence
}

// NewManager creates a new session manager without persistence.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a session manager that writes sessions
// through to the given persistence layer.
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// generateID creates a short random session ID (4 hex characters).
func generateID() (string, error) {
	bytes := make([]byte, 2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// Create creates a new session for the given puzzle configuration. If id is
// empty a random unique ID is generated. The session starts in the pending
// state with the configuration's starting board.
func (m *Manager) Create(id string, config *puzzle.Config) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		for {
			generated, err := generateID()
			if err != nil {
				return nil, err
			}
			if _, exists := m.sessions[generated]; !exists {
				id = generated
				break
			}
		}
	}

	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; exists {
		return nil, fmt.Errorf("session %s already exists", id)
	}

	board, err := config.Board()
	if err != nil {
		return nil, fmt.Errorf("failed to build board from config %s: %w", config.Name, err)
	}

	now := time.Now()
	session := &service.Session{
		ID:             key,
		Config:         config,
		Board:          board,
		Status:         service.StatusPending,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[key] = session

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			log.Printf("Warning: failed to persist new session %s: %v", key, err)
		}
	}

	return session, nil
}

// Get retrieves a session by ID. Lookup is case-insensitive. Sessions not in
// memory are loaded from persistence when a persistence layer is attached.
func (m *Manager) Get(id string) (*service.Session, error) {
	key := strings.ToLower(id)

	m.mu.RLock()
	session, exists := m.sessions[key]
	m.mu.RUnlock()
	if exists {
		return session, nil
	}

	if m.persistence == nil || !m.persistence.Exists(key) {
		return nil, fmt.Errorf("session %s not found", id)
	}

	loaded, err := m.persistence.Load(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s from storage: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another goroutine may have loaded it while we were reading the file.
	if session, exists := m.sessions[key]; exists {
		return session, nil
	}
	m.sessions[key] = loaded
	return loaded, nil
}

// List returns all sessions currently held in memory.
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

// Delete removes a session from memory and from persistence.
func (m *Manager) Delete(id string) error {
	key := strings.ToLower(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[key]; !exists {
		if m.persistence == nil || !m.persistence.Exists(key) {
			return fmt.Errorf("session %s not found", id)
		}
	}
	delete(m.sessions, key)

	if m.persistence != nil {
		if err := m.persistence.Delete(key); err != nil {
			return fmt.Errorf("failed to delete persisted session %s: %w", id, err)
		}
	}
	return nil
}

// DeleteFromMemory removes a session from the in-memory cache only, leaving
// any persisted copy intact. Used by cleanup to bound memory usage.
func (m *Manager) DeleteFromMemory(id string) {
	key := strings.ToLower(id)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
}

// UpdateLastAccessed updates the last access timestamp for a session.
func (m *Manager) UpdateLastAccessed(id string) error {
	key := strings.ToLower(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[key]
	if !exists {
		return fmt.Errorf("session %s not found", id)
	}
	session.LastAccessedAt = time.Now()
	return nil
}

// Save writes a session's current state through to persistence. Without a
// persistence layer this is a no-op.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	key := strings.ToLower(id)

	m.mu.RLock()
	session, exists := m.sessions[key]
	m.mu.RUnlock()
	if !exists {
		return fmt.Errorf("session %s not found", id)
	}

	if err := m.persistence.Save(session); err != nil {
		return fmt.Errorf("failed to persist session %s: %w", id, err)
	}
	return nil
}

// Count returns the number of sessions held in memory.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpiredSessions drops sessions from memory that have not been
// accessed within maxAge. Persisted sessions remain on disk and are reloaded
// on the next access. Returns the number of sessions removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// LoadPersistedSessions loads all sessions from persistence into memory.
// Called on startup to warm the cache.
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	loaded := 0
	for _, id := range ids {
		session, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("Warning: failed to load persisted session %s: %v", id, err)
			continue
		}

		m.mu.Lock()
		if _, exists := m.sessions[session.ID]; !exists {
			m.sessions[session.ID] = session
			loaded++
		}
		m.mu.Unlock()
	}

	if loaded > 0 {
		log.Printf("Loaded %d persisted session(s)", loaded)
	}
	return nil
}

// SaveAllSessions writes every in-memory session through to persistence.
// Called on shutdown and by the periodic filesystem sync.
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	var firstErr error
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			log.Printf("Warning: failed to persist session %s: %v", session.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
