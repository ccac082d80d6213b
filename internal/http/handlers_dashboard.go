package http

import (
	"net/http"
	"strings"
	"time"

	"farmbook/internal/core"
	"farmbook/internal/finance"
)

const (
	topExpenseCount   = 3
	dashboardCacheKey = "dashboard"
)

type summaryPayload struct {
	Income      core.Money `json:"incomeCents"`
	Expense     core.Money `json:"expenseCents"`
	GrossMargin float64    `json:"grossMarginPct"`
}

type categoryTotalPayload struct {
	Name  string     `json:"name"`
	Total core.Money `json:"totalCents"`
}

type monthBucketPayload struct {
	Month   string     `json:"month"`
	Label   string     `json:"label"`
	Income  core.Money `json:"incomeCents"`
	Expense core.Money `json:"expenseCents"`
}

type upcomingPaymentPayload struct {
	SourceID  string     `json:"sourceId"`
	Name      string     `json:"name"`
	Amount    core.Money `json:"amountCents"`
	DueDate   string     `json:"dueDate"`
	Source    string     `json:"source"`
	DaysUntil int        `json:"daysUntil"`
	Urgency   string     `json:"urgency"`
}

type debtPayload struct {
	TotalOutstanding core.Money               `json:"totalOutstandingCents"`
	TotalDueSoon     core.Money               `json:"totalDueSoonCents"`
	Upcoming         []upcomingPaymentPayload `json:"upcoming"`
}

type dashboardPayload struct {
	FarmName     string                 `json:"farmName"`
	Summary      summaryPayload         `json:"summary"`
	TopExpenses  []categoryTotalPayload `json:"topExpenses"`
	Monthly      []monthBucketPayload   `json:"monthly"`
	Debt         debtPayload            `json:"debt"`
	Transactions int                    `json:"transactionCount"`
}

// handleDashboard assembles the full dashboard read model: income/expense
// summary, top expense categories, the monthly series and the debt
// overview, all computed from one snapshot and one clock reading.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// Debt urgency drifts with the clock, so cached entries stay
	// short-lived. Every write path invalidates.
	if payload, ok := s.dashCache.Get(dashboardCacheKey); ok {
		writeJSON(w, http.StatusOK, payload)
		return
	}

	data := s.ledger.Snapshot()
	now := s.now()

	accounts := core.AccountIndex(data.Accounts)
	categories := core.CategoryIndex(data.Categories)

	summary := finance.Summarize(data.Transactions, accounts)
	overview := finance.DebtSummary(data.Liabilities, data.Accounts, data.Transactions, now)

	payload := dashboardPayload{
		FarmName: data.FarmName,
		Summary: summaryPayload{
			Income:      summary.Income,
			Expense:     summary.Expense,
			GrossMargin: finance.GrossMargin(summary.Income, summary.Expense),
		},
		TopExpenses:  categoryTotals(finance.TopExpenseCategories(data.Transactions, categories, topExpenseCount)),
		Monthly:      monthBuckets(finance.MonthlySeries(data.Transactions, accounts)),
		Debt:         debtOverviewPayload(overview, now),
		Transactions: len(data.Transactions),
	}
	s.dashCache.Set(dashboardCacheKey, payload)
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) invalidateDashboard() {
	s.dashCache.Delete(dashboardCacheKey)
}

// handleMonthly returns the per-month income/expense buckets.
func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	data := s.ledger.Snapshot()
	accounts := core.AccountIndex(data.Accounts)
	writeJSON(w, http.StatusOK, monthBuckets(finance.MonthlySeries(data.Transactions, accounts)))
}

// handleUpcoming returns the projected payments with urgency labels.
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	data := s.ledger.Snapshot()
	now := s.now()
	overview := finance.DebtSummary(data.Liabilities, data.Accounts, data.Transactions, now)
	writeJSON(w, http.StatusOK, debtOverviewPayload(overview, now))
}

// handleSearch runs the cross-entity substring search. A blank query means
// search is inactive and yields empty results, not an error.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	data := s.ledger.Snapshot()

	results := finance.Search(query, data)
	if results == nil {
		results = &finance.SearchResults{}
	}
	writeJSON(w, http.StatusOK, struct {
		Query   string                 `json:"query"`
		Total   int                    `json:"total"`
		Results *finance.SearchResults `json:"results"`
	}{Query: query, Total: results.Total(), Results: results})
}

func categoryTotals(totals []finance.CategoryTotal) []categoryTotalPayload {
	out := make([]categoryTotalPayload, 0, len(totals))
	for _, t := range totals {
		out = append(out, categoryTotalPayload{Name: t.Name, Total: t.Total})
	}
	return out
}

func monthBuckets(series []finance.MonthBucket) []monthBucketPayload {
	out := make([]monthBucketPayload, 0, len(series))
	for _, b := range series {
		out = append(out, monthBucketPayload{
			Month:   b.SortKey,
			Label:   b.Label,
			Income:  b.Income,
			Expense: b.Expense,
		})
	}
	return out
}

func debtOverviewPayload(overview finance.DebtOverview, now time.Time) debtPayload {
	upcoming := make([]upcomingPaymentPayload, 0, len(overview.Upcoming))
	for _, p := range overview.Upcoming {
		days := finance.DaysUntil(p.DueDate, now)
		upcoming = append(upcoming, upcomingPaymentPayload{
			SourceID:  p.SourceID,
			Name:      p.Name,
			Amount:    p.Amount,
			DueDate:   p.DueDate.Format("2006-01-02"),
			Source:    string(p.Source),
			DaysUntil: days,
			Urgency:   string(finance.ClassifyUrgency(days)),
		})
	}
	return debtPayload{
		TotalOutstanding: overview.TotalOutstanding,
		TotalDueSoon:     overview.TotalDueSoon,
		Upcoming:         upcoming,
	}
}
