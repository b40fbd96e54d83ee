package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SampleTransactions returns the canonical demo data set used to populate an
// empty dashboard. Owners and IDs are left for the store to assign.
func SampleTransactions() []Transaction {
	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	amount := func(v int64) decimal.Decimal {
		return decimal.NewFromInt(v)
	}

	return []Transaction{
		{Date: day(1), Type: TypeIncome, Category: "Salary", Amount: amount(5000), Description: "Monthly salary"},
		{Date: day(5), Type: TypeExpense, Category: "Food", Amount: amount(150), Description: "Groceries"},
		{Date: day(7), Type: TypeExpense, Category: "Transportation", Amount: amount(80), Description: "Gas"},
		{Date: day(10), Type: TypeExpense, Category: "Entertainment", Amount: amount(120), Description: "Movie and dinner"},
		{Date: day(12), Type: TypeExpense, Category: "Bills", Amount: amount(200), Description: "Electricity"},
		{Date: day(15), Type: TypeIncome, Category: "Freelance", Amount: amount(800), Description: "Web design project"},
		{Date: day(18), Type: TypeExpense, Category: "Shopping", Amount: amount(250), Description: "Clothes"},
		{Date: day(20), Type: TypeExpense, Category: "Food", Amount: amount(200), Description: "Restaurant"},
	}
}
