// Package session tracks which user a browser session is bound to. Sessions
// live only in process memory: a restart drops every session and all clients
// start anonymous again.
package session

import (
	"sync"

	"finance-dashboard/internal/auth"
)

// Manager maps session tokens to user IDs.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]int64
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]int64)}
}

// Create binds a fresh random token to the user and returns it.
func (m *Manager) Create(userID int64) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[token] = userID
	m.mu.Unlock()
	return token, nil
}

// Lookup resolves a token to its user ID.
func (m *Manager) Lookup(token string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.sessions[token]
	return userID, ok
}

// Destroy removes the token. Destroying an unknown token is a no-op.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
