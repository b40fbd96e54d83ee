package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCategoriesFor(t *testing.T) {
	assert.Contains(t, CategoriesFor(TypeExpense), "Food")
	assert.Contains(t, CategoriesFor(TypeIncome), "Salary")
	assert.NotContains(t, CategoriesFor(TypeIncome), "Food")
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(TypeExpense, "Healthcare"))
	assert.True(t, ValidCategory(TypeIncome, "Gift"))
	// "Other" exists in both lists
	assert.True(t, ValidCategory(TypeExpense, "Other"))
	assert.True(t, ValidCategory(TypeIncome, "Other"))

	assert.False(t, ValidCategory(TypeExpense, "Salary"))
	assert.False(t, ValidCategory(TypeIncome, "Bills"))
	assert.False(t, ValidCategory(TypeExpense, "food"), "categories are case sensitive")
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:     time.Now(),
		Type:     TypeExpense,
		Category: "Food",
		Amount:   decimal.NewFromFloat(12.50),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"unknown type", func(tx *Transaction) { tx.Type = "Transfer" }},
		{"category from wrong type", func(tx *Transaction) { tx.Category = "Salary" }},
		{"empty category", func(tx *Transaction) { tx.Category = "" }},
		{"zero amount", func(tx *Transaction) { tx.Amount = decimal.Zero }},
		{"negative amount", func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			assert.Error(t, tx.Validate())
		})
	}
}

func TestSampleTransactionsAreValid(t *testing.T) {
	samples := SampleTransactions()
	assert.Len(t, samples, 8)
	for _, tx := range samples {
		assert.NoError(t, tx.Validate(), "sample %q must pass the write-boundary contract", tx.Description)
	}
}
