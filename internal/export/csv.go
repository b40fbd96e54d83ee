// Package export serializes a user's transactions to CSV and parses them
// back.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"finance-dashboard/internal/models"
)

// DateLayout is the date format used in exported files.
const DateLayout = "2006-01-02"

// Record is one CSV row. Column order and names form the export contract.
type Record struct {
	Date        string          `csv:"Date"`
	Type        string          `csv:"Type"`
	Category    string          `csv:"Category"`
	Amount      decimal.Decimal `csv:"Amount"`
	Description string          `csv:"Description"`
}

// Filename derives the download name for a user's export.
func Filename(username string) string {
	return fmt.Sprintf("%s_finance_data.csv", username)
}

// Write serializes transactions to w as CSV with a header row.
func Write(w io.Writer, transactions []models.Transaction) error {
	records := make([]Record, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, Record{
			Date:        t.Date.Format(DateLayout),
			Type:        string(t.Type),
			Category:    t.Category,
			Amount:      t.Amount,
			Description: t.Description,
		})
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// Read parses CSV data previously produced by Write back into transactions.
// IDs, owners and creation timestamps are not part of the format and stay
// zero.
func Read(r io.Reader) ([]models.Transaction, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(records))
	for i, rec := range records {
		date, err := time.Parse(DateLayout, rec.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i+1, rec.Date, err)
		}
		transactions = append(transactions, models.Transaction{
			Date:        date,
			Type:        models.TransactionType(rec.Type),
			Category:    rec.Category,
			Amount:      rec.Amount,
			Description: rec.Description,
		})
	}
	return transactions, nil
}
