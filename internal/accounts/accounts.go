// Package accounts implements account registration and credential checks on
// top of a storage.Store.
package accounts

import (
	"fmt"
	"strings"

	"finance-dashboard/internal/auth"
	"finance-dashboard/internal/models"
	"finance-dashboard/internal/storage"
)

// Service validates and stores user credentials.
type Service struct {
	store storage.Store
}

// NewService creates an accounts service backed by the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Register creates a new account. The username is trimmed and must be
// non-empty; the password must meet the minimum length. A duplicate username
// surfaces as storage.ErrUsernameTaken, which callers treat as recoverable.
func (s *Service) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(password) < auth.MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.CreateUser(username, hash)
}

// Authenticate checks a username/password pair. It returns the user and true
// on a match, and (nil, false) for an unknown username and a wrong password
// alike, so callers cannot tell the two apart.
func (s *Service) Authenticate(username, password string) (*models.User, bool) {
	user, err := s.store.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, false
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, false
	}
	return user, true
}
