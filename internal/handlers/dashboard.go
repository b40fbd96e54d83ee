package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finance-dashboard/internal/export"
	"finance-dashboard/internal/models"
	"finance-dashboard/internal/stats"
)

// dateLayout matches the value format of <input type="date">.
const dateLayout = "2006-01-02"

// TransactionRow is one line of the history table.
type TransactionRow struct {
	ID          int64
	Date        string
	Type        models.TransactionType
	Category    string
	Amount      string
	Description string
	IsIncome    bool
}

// DashboardViewModel is the data passed to the dashboard template.
type DashboardViewModel struct {
	Username string
	Error    string

	TotalIncome   string
	TotalExpenses string
	NetSavings    string
	SavingsRate   string
	Count         int
	SavingsUp     bool

	HasTransactions bool
	PieData         template.JS
	BarData         template.JS
	LineData        template.JS

	ExpenseCategories []string
	IncomeCategories  []string
	Today             string

	FilterCategories   []string
	SelectedTypes      map[string]bool
	SelectedCategories map[string]bool
	Rows               []TransactionRow
}

type chartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type linePoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type lineChart struct {
	Income   []linePoint `json:"income"`
	Expenses []linePoint `json:"expenses"`
}

// Dashboard renders the main view: metric cards, chart data and the
// filterable transaction history.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	transactions, err := h.store.ListTransactions(user.ID)
	if err != nil {
		slog.Error("failed to list transactions", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	vm := DashboardViewModel{
		Username:          user.Username,
		Error:             r.URL.Query().Get("error"),
		TotalIncome:       money(stats.TotalByType(transactions, models.TypeIncome)),
		TotalExpenses:     money(stats.TotalByType(transactions, models.TypeExpense)),
		NetSavings:        money(stats.NetSavings(transactions)),
		SavingsRate:       stats.SavingsRate(transactions).StringFixed(1) + "%",
		SavingsUp:         !stats.NetSavings(transactions).IsNegative(),
		Count:             len(transactions),
		HasTransactions:   len(transactions) > 0,
		ExpenseCategories: models.ExpenseCategories,
		IncomeCategories:  models.IncomeCategories,
		Today:             time.Now().Format(dateLayout),
	}

	vm.PieData = chartJSON(pieSeries(transactions))
	vm.BarData = chartJSON(barSeries(transactions))
	vm.LineData = chartJSON(lineSeries(transactions))

	types, categories := parseFilters(r.URL.Query())
	vm.SelectedTypes = make(map[string]bool)
	for _, t := range types {
		vm.SelectedTypes[string(t)] = true
	}
	vm.SelectedCategories = make(map[string]bool)
	for _, c := range categories {
		vm.SelectedCategories[c] = true
	}
	vm.FilterCategories = presentCategories(transactions)

	for _, t := range stats.Filter(transactions, types, categories) {
		vm.Rows = append(vm.Rows, TransactionRow{
			ID:          t.ID,
			Date:        t.Date.Format(dateLayout),
			Type:        t.Type,
			Category:    t.Category,
			Amount:      money(t.Amount),
			Description: t.Description,
			IsIncome:    t.Type == models.TypeIncome,
		})
	}

	h.render(w, "dashboard.html", vm)
}

// AddTransaction handles the add-transaction form submission.
func (h *Handlers) AddTransaction(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	t, err := parseTransactionForm(r)
	if err != nil {
		redirectWithError(w, r, err.Error())
		return
	}
	t.UserID = user.ID

	if err := h.store.AddTransaction(t); err != nil {
		redirectWithError(w, r, err.Error())
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// DeleteTransaction removes one transaction owned by the current user.
// Deleting a row that does not exist, or belongs to someone else, silently
// succeeds.
func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	if err := h.store.DeleteTransaction(id, user.ID); err != nil {
		slog.Error("failed to delete transaction", "id", id, "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// ClearTransactions removes every transaction owned by the current user.
func (h *Handlers) ClearTransactions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	if err := h.store.ClearTransactions(user.ID); err != nil {
		slog.Error("failed to clear transactions", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// LoadSample seeds the canonical sample data set for users with an empty
// history, so the dashboard has something to show.
func (h *Handlers) LoadSample(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	existing, err := h.store.ListTransactions(user.ID)
	if err != nil {
		slog.Error("failed to list transactions", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if len(existing) > 0 {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	for _, t := range models.SampleTransactions() {
		t.UserID = user.ID
		if err := h.store.AddTransaction(&t); err != nil {
			slog.Error("failed to add sample transaction", "user_id", user.ID, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Export streams the user's full transaction history as a CSV download.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	transactions, err := h.store.ListTransactions(user.ID)
	if err != nil {
		slog.Error("failed to list transactions", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(user.Username)))
	if err := export.Write(w, transactions); err != nil {
		slog.Error("failed to export transactions", "user_id", user.ID, "error", err)
	}
}

func parseTransactionForm(r *http.Request) (*models.Transaction, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form submission")
	}

	date, err := time.Parse(dateLayout, r.FormValue("date"))
	if err != nil {
		return nil, fmt.Errorf("a valid date is required")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("amount")))
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be a positive number")
	}

	return &models.Transaction{
		Date:        date,
		Type:        models.TransactionType(r.FormValue("type")),
		Category:    r.FormValue("category"),
		Amount:      amount,
		Description: r.FormValue("description"),
	}, nil
}

func parseFilters(q url.Values) ([]models.TransactionType, []string) {
	var types []models.TransactionType
	for _, t := range q["type"] {
		types = append(types, models.TransactionType(t))
	}
	return types, q["category"]
}

func presentCategories(transactions []models.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range transactions {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

func pieSeries(transactions []models.Transaction) chartSeries {
	return toSeries(stats.CategoryTotals(transactions, models.TypeExpense))
}

func barSeries(transactions []models.Transaction) chartSeries {
	totals := stats.TypeTotals(transactions)
	byName := make(map[string]decimal.Decimal, len(totals))
	for t, v := range totals {
		byName[string(t)] = v
	}
	return toSeries(byName)
}

func toSeries(totals map[string]decimal.Decimal) chartSeries {
	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	s := chartSeries{Labels: labels, Values: make([]float64, 0, len(labels))}
	for _, label := range labels {
		v, _ := totals[label].Float64()
		s.Values = append(s.Values, v)
	}
	return s
}

func lineSeries(transactions []models.Transaction) lineChart {
	toPoints := func(points []stats.Point) []linePoint {
		out := make([]linePoint, 0, len(points))
		for _, p := range points {
			v, _ := p.Amount.Float64()
			out = append(out, linePoint{Date: p.Date.Format(dateLayout), Amount: v})
		}
		return out
	}
	return lineChart{
		Income:   toPoints(stats.TimeSeries(transactions, models.TypeIncome)),
		Expenses: toPoints(stats.TimeSeries(transactions, models.TypeExpense)),
	}
}

func chartJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/dashboard?error="+url.QueryEscape(msg), http.StatusFound)
}
