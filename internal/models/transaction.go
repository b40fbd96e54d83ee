package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

// ExpenseCategories lists the allowed categories for expense transactions.
var ExpenseCategories = []string{
	"Food", "Transportation", "Entertainment", "Shopping",
	"Bills", "Healthcare", "Other",
}

// IncomeCategories lists the allowed categories for income transactions.
var IncomeCategories = []string{
	"Salary", "Freelance", "Investment", "Gift", "Other",
}

// CategoriesFor returns the category list for the given transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ValidCategory reports whether category belongs to the type's fixed list.
func ValidCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}
	return false
}

// Transaction represents a single dated income or expense record owned by one user.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Validate checks the write-boundary contract: a known type, a category from
// that type's list, and a strictly positive amount.
func (t *Transaction) Validate() error {
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if strings.TrimSpace(t.Category) == "" || !ValidCategory(t.Type, t.Category) {
		return fmt.Errorf("invalid category %q for type %s", t.Category, t.Type)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	return nil
}

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
