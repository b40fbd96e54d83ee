package storage

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"finance-dashboard/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB is the SQLite-backed Store. It wraps a single *sql.DB whose connection
// pool serializes statements, which is all the write coordination this system
// needs.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			date DATETIME NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			amount TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date
			ON transactions(user_id, date)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CreateUser creates a new user with the given username and password hash.
// A duplicate username is reported as ErrUsernameTaken.
func (db *DB) CreateUser(username, passwordHash string) (*models.User, error) {
	result, err := db.conn.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, passwordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(id)
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id int64) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?",
		id,
	)
	return scanUser(row)
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?",
		username,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// AddTransaction validates and inserts a transaction, assigning its ID and
// creation timestamp.
func (db *DB) AddTransaction(t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	result, err := db.conn.Exec(
		`INSERT INTO transactions (user_id, date, type, category, amount, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Date, string(t.Type), t.Category, t.Amount.String(), t.Description, t.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// ListTransactions retrieves all transactions owned by a user, ordered by
// date descending.
func (db *DB) ListTransactions(userID int64) ([]models.Transaction, error) {
	rows, err := db.conn.Query(
		`SELECT id, user_id, date, type, category, amount, description, created_at
		 FROM transactions WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var typ string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &typ, &t.Category, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Type = models.TransactionType(typ)
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// DeleteTransaction deletes the transaction only if both id and user match.
// A miss is a silent no-op.
func (db *DB) DeleteTransaction(id, userID int64) error {
	_, err := db.conn.Exec(
		"DELETE FROM transactions WHERE id = ? AND user_id = ?",
		id, userID,
	)
	return err
}

// ClearTransactions deletes every transaction owned by the user.
func (db *DB) ClearTransactions(userID int64) error {
	_, err := db.conn.Exec("DELETE FROM transactions WHERE user_id = ?", userID)
	return err
}
