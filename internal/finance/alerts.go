package finance

import (
	"sort"
	"strings"
	"time"

	"farmbook/internal/core"
)

// dueSoonWindow is how far ahead the alert engine projects payments.
const dueSoonWindow = 30 * 24 * time.Hour

// PaymentSource tells which record produced an upcoming payment.
type PaymentSource string

const (
	SourceManual PaymentSource = "manual"
	SourceCredit PaymentSource = "credit"
)

// UpcomingPayment is one payment expected within the projection window.
type UpcomingPayment struct {
	SourceID string
	Name     string
	Amount   core.Money
	DueDate  time.Time
	Source   PaymentSource
}

// DebtOverview is the alert engine's output: what is owed overall and
// which payments need attention now.
type DebtOverview struct {
	TotalOutstanding core.Money
	TotalDueSoon     core.Money
	Upcoming         []UpcomingPayment
}

// DebtSummary projects the payments due within the next 30 days and totals
// outstanding debt across manual liabilities and credit accounts.
//
// A manual liability is skipped when a trailing-28-day expense looks like
// its payment: description containing the liability's name and the word
// "payment", case-insensitive. A credit account is skipped when its replay
// shows a recent card payment. The result is ordered by due date; on equal
// dates manual liabilities come before credit accounts.
func DebtSummary(liabilities []core.Liability, accounts []core.Account, txs []core.Transaction, now time.Time) DebtOverview {
	horizon := now.Add(dueSoonWindow)
	recentExpenses := recentExpenseDescriptions(txs, now)

	var out DebtOverview
	for _, l := range liabilities {
		out.TotalOutstanding = out.TotalOutstanding.Add(l.CurrentBalance)
		if l.CurrentBalance.Cents <= 0 || l.DueDate.IsEmpty() {
			continue
		}
		if l.DueDate.After(horizon) {
			continue
		}
		if paymentLogged(l.Name, recentExpenses) {
			continue
		}
		amount := l.CurrentBalance
		if l.InstallmentAmount.Cents > 0 {
			amount = l.InstallmentAmount.Min(l.CurrentBalance)
		}
		out.Upcoming = append(out.Upcoming, UpcomingPayment{
			SourceID: l.ID,
			Name:     l.Name,
			Amount:   amount,
			DueDate:  l.DueDate.Time,
			Source:   SourceManual,
		})
	}

	for _, acc := range accounts {
		if acc.Type != core.Credit {
			continue
		}
		state := ReconstructCreditBalance(acc, txs, now)
		out.TotalOutstanding = out.TotalOutstanding.Add(state.Balance)
		if state.Balance.Cents <= 0 || acc.PaymentDay == 0 || state.HasRecentPayment {
			continue
		}
		due := NextMonthlyOccurrence(acc.PaymentDay, now)
		if due.After(horizon) {
			continue
		}
		out.Upcoming = append(out.Upcoming, UpcomingPayment{
			SourceID: acc.ID,
			Name:     acc.Name + " (Credit)",
			Amount:   state.Balance,
			DueDate:  due,
			Source:   SourceCredit,
		})
	}

	// Manual entries were appended first, so a stable sort keeps them
	// ahead of credit entries sharing a due date.
	sort.SliceStable(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].DueDate.Before(out.Upcoming[j].DueDate)
	})
	for _, p := range out.Upcoming {
		out.TotalDueSoon = out.TotalDueSoon.Add(p.Amount)
	}
	return out
}

func recentExpenseDescriptions(txs []core.Transaction, now time.Time) []string {
	cutoff := now.Add(-recentPaymentWindow)
	var out []string
	for _, tx := range txs {
		if tx.Type == core.Expense && !tx.Date.Before(cutoff) {
			out = append(out, strings.ToLower(tx.Description))
		}
	}
	return out
}

func paymentLogged(liabilityName string, recentExpenses []string) bool {
	name := strings.ToLower(liabilityName)
	for _, desc := range recentExpenses {
		if strings.Contains(desc, name) && strings.Contains(desc, "payment") {
			return true
		}
	}
	return false
}
