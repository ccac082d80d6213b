package finance

import (
	"time"

	"farmbook/internal/core"
)

// recentPaymentWindow is how far back an INCOME on a credit account still
// counts as a recent card payment.
const recentPaymentWindow = 28 * 24 * time.Hour

// CreditBalance is a credit account's state replayed from its history.
type CreditBalance struct {
	Balance          core.Money
	HasRecentPayment bool
}

// ReconstructCreditBalance replays an account's transactions on top of its
// initial balance. An EXPENSE raises the owed amount, an INCOME is a card
// payment and lowers it. The result does not depend on transaction order.
func ReconstructCreditBalance(acc core.Account, txs []core.Transaction, now time.Time) CreditBalance {
	cutoff := now.Add(-recentPaymentWindow)
	out := CreditBalance{Balance: acc.InitialBalance}
	for _, tx := range txs {
		if tx.AccountID != acc.ID {
			continue
		}
		switch tx.Type {
		case core.Expense:
			out.Balance = out.Balance.Add(tx.Amount)
		case core.Income:
			out.Balance = out.Balance.Sub(tx.Amount)
			if !tx.Date.Before(cutoff) {
				out.HasRecentPayment = true
			}
		}
	}
	return out
}
