package finance

import (
	"sort"

	"farmbook/internal/core"
)

// Summary is the income/expense split over a set of transactions.
type Summary struct {
	Income  core.Money
	Expense core.Money
}

// CategoryTotal is an expense total under one category name.
type CategoryTotal struct {
	Name  string
	Total core.Money
}

// MonthBucket aggregates one calendar month of activity. SortKey is
// "YYYY-MM" so lexicographic order is chronological order.
type MonthBucket struct {
	SortKey string
	Label   string
	Income  core.Money
	Expense core.Money
}

// Summarize totals income and expenses. An INCOME on a CREDIT account is a
// card payment moving money between accounts, not revenue, and is left out
// of the income total.
func Summarize(txs []core.Transaction, accounts map[string]core.Account) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			if isCreditPayment(tx, accounts) {
				continue
			}
			s.Income = s.Income.Add(tx.Amount)
		case core.Expense:
			s.Expense = s.Expense.Add(tx.Amount)
		}
	}
	return s
}

func isCreditPayment(tx core.Transaction, accounts map[string]core.Account) bool {
	acc, ok := accounts[tx.AccountID]
	return ok && acc.Type == core.Credit && tx.Type == core.Income
}

// GrossMargin returns (income-expense)/income as a percentage, or 0 when
// there is no income to divide by.
func GrossMargin(income, expense core.Money) float64 {
	if income.Cents <= 0 {
		return 0
	}
	return float64(income.Cents-expense.Cents) / float64(income.Cents) * 100
}

// TopExpenseCategories groups expenses by resolved category name and
// returns the n largest, descending. Transactions whose category no longer
// exists land under "Other". Ties keep first-appearance order.
func TopExpenseCategories(txs []core.Transaction, categories map[string]core.Category, n int) []CategoryTotal {
	if n <= 0 {
		return nil
	}
	totals := make(map[string]int64)
	var order []string
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		name := "Other"
		if c, ok := categories[tx.CategoryID]; ok {
			name = c.Name
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += tx.Amount.Cents
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryTotal{Name: name, Total: core.Money{Cents: totals[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlySeries buckets transactions by calendar month, ascending. Every
// transaction lands in exactly one bucket; credit card payments keep their
// bucket but add nothing to its income.
func MonthlySeries(txs []core.Transaction, accounts map[string]core.Account) []MonthBucket {
	buckets := make(map[string]*MonthBucket)
	for _, tx := range txs {
		key := tx.Date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{SortKey: key, Label: tx.Date.Format("Jan 2006")}
			buckets[key] = b
		}
		switch tx.Type {
		case core.Income:
			if isCreditPayment(tx, accounts) {
				continue
			}
			b.Income = b.Income.Add(tx.Amount)
		case core.Expense:
			b.Expense = b.Expense.Add(tx.Amount)
		}
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}
