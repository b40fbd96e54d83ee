// Package storage persists user accounts and their transactions. Two
// implementations share one contract: a SQLite-backed store and an in-memory
// store for ephemeral use.
package storage

import (
	"errors"

	"finance-dashboard/internal/models"
)

var (
	// ErrUsernameTaken is returned when creating a user whose username exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")
)

// Store is the persistence contract shared by the sqlite and memory backends.
//
// Write operations enforce the transaction validation contract; deletes scoped
// to a (id, user) pair that does not match are silent no-ops.
type Store interface {
	CreateUser(username, passwordHash string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)

	AddTransaction(t *models.Transaction) error
	ListTransactions(userID int64) ([]models.Transaction, error)
	DeleteTransaction(id, userID int64) error
	ClearTransactions(userID int64) error

	Close() error
}
