package storage

import (
	"sort"
	"sync"
	"time"

	"finance-dashboard/internal/models"
)

// Memory is an in-process Store. Nothing survives a restart; every instance
// owns its own state, so callers must pass the store explicitly rather than
// reach for package-level data.
type Memory struct {
	mu           sync.Mutex
	nextUserID   int64
	nextTxID     int64
	users        map[int64]models.User
	byUsername   map[string]int64
	transactions map[int64]models.Transaction
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextUserID:   1,
		nextTxID:     1,
		users:        make(map[int64]models.User),
		byUsername:   make(map[string]int64),
		transactions: make(map[int64]models.Transaction),
	}
}

// CreateUser creates a new user with the given username and password hash.
func (m *Memory) CreateUser(username, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byUsername[username]; exists {
		return nil, ErrUsernameTaken
	}

	u := models.User{
		ID:           m.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.nextUserID++
	m.users[u.ID] = u
	m.byUsername[username] = u.ID
	return &u, nil
}

// GetUserByUsername retrieves a user by username.
func (m *Memory) GetUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

// GetUserByID retrieves a user by ID.
func (m *Memory) GetUserByID(id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// AddTransaction validates and stores a transaction, assigning its ID and
// creation timestamp.
func (m *Memory) AddTransaction(t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t.ID = m.nextTxID
	m.nextTxID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	m.transactions[t.ID] = *t
	return nil
}

// ListTransactions returns all transactions owned by a user, ordered by date
// descending.
func (m *Memory) ListTransactions(userID int64) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Transaction
	for _, t := range m.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// DeleteTransaction deletes the transaction only if both id and user match.
func (m *Memory) DeleteTransaction(id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.transactions[id]; ok && t.UserID == userID {
		delete(m.transactions, id)
	}
	return nil
}

// ClearTransactions deletes every transaction owned by the user.
func (m *Memory) ClearTransactions(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, t := range m.transactions {
		if t.UserID == userID {
			delete(m.transactions, id)
		}
	}
	return nil
}

// Close is a no-op for the memory store.
func (m *Memory) Close() error {
	return nil
}
