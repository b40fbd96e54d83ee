package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-dashboard/internal/models"
)

func sampleSet() []models.Transaction {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	return []models.Transaction{
		{ID: 1, UserID: 7, Date: day(1), Type: models.TypeIncome, Category: "Salary", Amount: decimal.NewFromInt(5000), Description: "Monthly salary"},
		{ID: 2, UserID: 7, Date: day(5), Type: models.TypeExpense, Category: "Food", Amount: decimal.NewFromFloat(150.25), Description: "Groceries"},
		{ID: 3, UserID: 7, Date: day(7), Type: models.TypeExpense, Category: "Transportation", Amount: decimal.NewFromInt(80), Description: ""},
	}
}

func TestWriteHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSet()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Type,Category,Amount,Description", lines[0])
	assert.Equal(t, "2024-01-01,Income,Salary,5000,Monthly salary", lines[1])
	assert.Equal(t, "2024-01-05,Expense,Food,150.25,Groceries", lines[2])
}

func TestWriteEmptySetStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	assert.Equal(t, "Date,Type,Category,Amount,Description", strings.TrimSpace(buf.String()))
}

func TestRoundTrip(t *testing.T) {
	original := sampleSet()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, original))

	parsed, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(original))

	for i, got := range parsed {
		want := original[i]
		assert.True(t, got.Date.Equal(want.Date), "row %d date", i)
		assert.Equal(t, want.Type, got.Type, "row %d type", i)
		assert.Equal(t, want.Category, got.Category, "row %d category", i)
		assert.True(t, got.Amount.Equal(want.Amount), "row %d amount", i)
		assert.Equal(t, want.Description, got.Description, "row %d description", i)
	}
}

func TestReadRejectsBadDate(t *testing.T) {
	in := strings.NewReader("Date,Type,Category,Amount,Description\n01/05/2024,Expense,Food,150,x\n")
	_, err := Read(in)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "alice_finance_data.csv", Filename("alice"))
	// Deterministic for the same username
	assert.Equal(t, Filename("bob"), Filename("bob"))
}
