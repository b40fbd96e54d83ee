// Package stats derives summary figures from a transaction collection. All
// functions are pure: they read a slice and return fresh values.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finance-dashboard/internal/models"
)

// TotalByType sums the amounts of all transactions of the given type.
// An empty or non-matching set yields zero.
func TotalByType(transactions []models.Transaction, t models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type == t {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// NetSavings is total income minus total expenses.
func NetSavings(transactions []models.Transaction) decimal.Decimal {
	return TotalByType(transactions, models.TypeIncome).
		Sub(TotalByType(transactions, models.TypeExpense))
}

// SavingsRate is net savings as a percentage of total income. When there is
// no income the rate is defined as zero rather than a division by zero.
func SavingsRate(transactions []models.Transaction) decimal.Decimal {
	income := TotalByType(transactions, models.TypeIncome)
	if income.IsZero() {
		return decimal.Zero
	}
	return NetSavings(transactions).Div(income).Mul(decimal.NewFromInt(100))
}

// CategoryTotals maps each category to the summed amount of transactions of
// the given type.
func CategoryTotals(transactions []models.Transaction, t models.TransactionType) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Type != t {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// TypeTotals maps each transaction type to its summed amount.
func TypeTotals(transactions []models.Transaction) map[models.TransactionType]decimal.Decimal {
	totals := make(map[models.TransactionType]decimal.Decimal)
	for _, tx := range transactions {
		totals[tx.Type] = totals[tx.Type].Add(tx.Amount)
	}
	return totals
}

// Point is a dated amount in a trend series.
type Point struct {
	Date   time.Time
	Amount decimal.Decimal
}

// TimeSeries returns one point per transaction of the given type, sorted
// ascending by date. Same-day transactions stay distinct points, in their
// original relative order.
func TimeSeries(transactions []models.Transaction, t models.TransactionType) []Point {
	var points []Point
	for _, tx := range transactions {
		if tx.Type == t {
			points = append(points, Point{Date: tx.Date, Amount: tx.Amount})
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// Filter keeps transactions whose type and category are in the given sets.
// A nil or empty set leaves that dimension unfiltered.
func Filter(transactions []models.Transaction, types []models.TransactionType, categories []string) []models.Transaction {
	typeSet := make(map[models.TransactionType]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	catSet := make(map[string]bool, len(categories))
	for _, c := range categories {
		catSet[c] = true
	}

	var out []models.Transaction
	for _, tx := range transactions {
		if len(typeSet) > 0 && !typeSet[tx.Type] {
			continue
		}
		if len(catSet) > 0 && !catSet[tx.Category] {
			continue
		}
		out = append(out, tx)
	}
	return out
}
