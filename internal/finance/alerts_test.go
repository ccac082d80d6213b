package finance

import (
	"testing"
	"time"

	"farmbook/internal/core"
)

var alertNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestDebtSummaryManualLiability(t *testing.T) {
	liabilities := []core.Liability{
		{
			ID:                "loan",
			Name:              "Tractor Loan",
			CurrentBalance:    core.Money{Cents: 500000},
			DueDate:           core.NewDate(2025, 6, 20),
			InstallmentAmount: core.Money{Cents: 25000},
		},
	}
	got := DebtSummary(liabilities, nil, nil, alertNow)
	if len(got.Upcoming) != 1 {
		t.Fatalf("expected 1 upcoming payment, got %d", len(got.Upcoming))
	}
	p := got.Upcoming[0]
	if p.Source != SourceManual || p.Name != "Tractor Loan" {
		t.Fatalf("unexpected payment %+v", p)
	}
	if p.Amount.Cents != 25000 {
		t.Fatalf("expected installment amount 25000, got %d", p.Amount.Cents)
	}
	if got.TotalOutstanding.Cents != 500000 {
		t.Fatalf("expected outstanding 500000, got %d", got.TotalOutstanding.Cents)
	}
	if got.TotalDueSoon.Cents != 25000 {
		t.Fatalf("expected due soon 25000, got %d", got.TotalDueSoon.Cents)
	}
}

func TestDebtSummaryInstallmentCappedAtBalance(t *testing.T) {
	liabilities := []core.Liability{
		{
			ID:                "loan",
			Name:              "Feed Loan",
			CurrentBalance:    core.Money{Cents: 10000},
			DueDate:           core.NewDate(2025, 6, 20),
			InstallmentAmount: core.Money{Cents: 25000},
		},
	}
	got := DebtSummary(liabilities, nil, nil, alertNow)
	if len(got.Upcoming) != 1 || got.Upcoming[0].Amount.Cents != 10000 {
		t.Fatalf("expected amount capped at balance 10000, got %+v", got.Upcoming)
	}
}

func TestDebtSummarySuppression(t *testing.T) {
	liabilities := []core.Liability{
		{ID: "loan", Name: "Tractor Loan", CurrentBalance: core.Money{Cents: 500000}, DueDate: core.NewDate(2025, 6, 20)},
	}
	cases := []struct {
		name       string
		tx         core.Transaction
		suppressed bool
	}{
		{
			"matching payment in window",
			core.Transaction{Type: core.Expense, Description: "Tractor Loan payment #4", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 6, 1)},
			true,
		},
		{
			"case insensitive match",
			core.Transaction{Type: core.Expense, Description: "TRACTOR LOAN PAYMENT", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 6, 1)},
			true,
		},
		{
			"name without the word payment",
			core.Transaction{Type: core.Expense, Description: "Tractor Loan fees", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 6, 1)},
			false,
		},
		{
			"payment without the name",
			core.Transaction{Type: core.Expense, Description: "loan payment", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 6, 1)},
			false,
		},
		{
			"matching payment outside window",
			core.Transaction{Type: core.Expense, Description: "Tractor Loan payment", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 4, 1)},
			false,
		},
		{
			"income never suppresses",
			core.Transaction{Type: core.Income, Description: "Tractor Loan payment refund", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 6, 1)},
			false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DebtSummary(liabilities, nil, []core.Transaction{tc.tx}, alertNow)
			if suppressed := len(got.Upcoming) == 0; suppressed != tc.suppressed {
				t.Fatalf("expected suppressed=%v, got %d upcoming", tc.suppressed, len(got.Upcoming))
			}
		})
	}
}

func TestDebtSummarySkipsOutOfWindowAndSettled(t *testing.T) {
	liabilities := []core.Liability{
		{ID: "far", Name: "Far Loan", CurrentBalance: core.Money{Cents: 1000}, DueDate: core.NewDate(2025, 9, 1)},
		{ID: "paid", Name: "Paid Loan", CurrentBalance: core.Money{Cents: 0}, DueDate: core.NewDate(2025, 6, 20)},
		{ID: "nodate", Name: "Open Loan", CurrentBalance: core.Money{Cents: 2000}},
		{ID: "overdue", Name: "Overdue Loan", CurrentBalance: core.Money{Cents: 3000}, DueDate: core.NewDate(2025, 5, 1)},
	}
	got := DebtSummary(liabilities, nil, nil, alertNow)
	if len(got.Upcoming) != 1 || got.Upcoming[0].SourceID != "overdue" {
		t.Fatalf("expected only the overdue loan, got %+v", got.Upcoming)
	}
	// Balances without due dates still count toward outstanding debt.
	if got.TotalOutstanding.Cents != 6000 {
		t.Fatalf("expected outstanding 6000, got %d", got.TotalOutstanding.Cents)
	}
}

func TestDebtSummaryCreditAccounts(t *testing.T) {
	accounts := []core.Account{
		{ID: "card", Name: "Farm Card", Type: core.Credit, PaymentDay: 20, InitialBalance: core.Money{Cents: 15000}},
		{ID: "noday", Name: "No Day Card", Type: core.Credit, InitialBalance: core.Money{Cents: 4000}},
		{ID: "checking", Name: "Checking", Type: core.Standard},
	}
	got := DebtSummary(nil, accounts, nil, alertNow)
	if len(got.Upcoming) != 1 {
		t.Fatalf("expected 1 upcoming payment, got %d", len(got.Upcoming))
	}
	p := got.Upcoming[0]
	if p.Source != SourceCredit || p.Name != "Farm Card (Credit)" {
		t.Fatalf("unexpected payment %+v", p)
	}
	if p.Amount.Cents != 15000 {
		t.Fatalf("expected full balance 15000, got %d", p.Amount.Cents)
	}
	wantDue := time.Date(2025, 6, 20, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !p.DueDate.Equal(wantDue) {
		t.Fatalf("expected due %v, got %v", wantDue, p.DueDate)
	}
	// Both cards count toward outstanding even without a payment day.
	if got.TotalOutstanding.Cents != 19000 {
		t.Fatalf("expected outstanding 19000, got %d", got.TotalOutstanding.Cents)
	}
}

func TestDebtSummaryCreditSkippedAfterRecentPayment(t *testing.T) {
	accounts := []core.Account{
		{ID: "card", Name: "Farm Card", Type: core.Credit, PaymentDay: 20, InitialBalance: core.Money{Cents: 15000}},
	}
	txs := []core.Transaction{
		{AccountID: "card", Type: core.Income, Amount: core.Money{Cents: 5000}, Date: core.NewDate(2025, 6, 10)},
	}
	got := DebtSummary(nil, accounts, txs, alertNow)
	if len(got.Upcoming) != 0 {
		t.Fatalf("expected no upcoming after recent payment, got %+v", got.Upcoming)
	}
	if got.TotalOutstanding.Cents != 10000 {
		t.Fatalf("expected outstanding 10000, got %d", got.TotalOutstanding.Cents)
	}
}

func TestDebtSummaryOrdering(t *testing.T) {
	liabilities := []core.Liability{
		{ID: "late", Name: "Late Loan", CurrentBalance: core.Money{Cents: 100}, DueDate: core.NewDate(2025, 6, 25)},
		{ID: "tied", Name: "Tied Loan", CurrentBalance: core.Money{Cents: 200}, DueDate: core.NewDate(2025, 6, 20)},
	}
	accounts := []core.Account{
		// Due June 20 as well; must sort after the manual liability.
		{ID: "card", Name: "Farm Card", Type: core.Credit, PaymentDay: 20, InitialBalance: core.Money{Cents: 300}},
	}
	got := DebtSummary(liabilities, accounts, nil, alertNow)
	if len(got.Upcoming) != 3 {
		t.Fatalf("expected 3 upcoming, got %d", len(got.Upcoming))
	}
	wantIDs := []string{"tied", "card", "late"}
	for i, p := range got.Upcoming {
		if p.SourceID != wantIDs[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantIDs[i], p.SourceID)
		}
	}
	if got.TotalDueSoon.Cents != 600 {
		t.Fatalf("expected due soon 600, got %d", got.TotalDueSoon.Cents)
	}
}
