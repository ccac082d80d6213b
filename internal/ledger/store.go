// Package ledger holds the active farm books in memory and hands out
// consistent snapshots to readers. Handlers mutate through it; the
// aggregation engine only ever sees copies.
package ledger

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"farmbook/internal/core"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	mu   sync.Mutex
	data *core.FarmData
}

// New returns a store holding the given state, or a freshly seeded one
// when data is nil.
func New(data *core.FarmData) *Store {
	if data == nil {
		data = Seed("")
	}
	return &Store{data: data}
}

// Seed builds an empty set of books with the default farm categories and
// a single checking account.
func Seed(farmName string) *core.FarmData {
	if strings.TrimSpace(farmName) == "" {
		farmName = "My Farm"
	}
	return &core.FarmData{
		FarmName: farmName,
		Categories: []core.Category{
			{ID: uuid.NewString(), Name: "Crop Sales", Type: core.Income, Color: "#16a34a"},
			{ID: uuid.NewString(), Name: "Livestock Sales", Type: core.Income, Color: "#15803d"},
			{ID: uuid.NewString(), Name: "Feed", Type: core.Expense, Color: "#ca8a04"},
			{ID: uuid.NewString(), Name: "Veterinary", Type: core.Expense, Color: "#dc2626"},
			{ID: uuid.NewString(), Name: "Fuel", Type: core.Expense, Color: "#ea580c"},
			{ID: uuid.NewString(), Name: "Equipment", Type: core.Expense, Color: "#4b5563"},
			{ID: uuid.NewString(), Name: "Other", Type: core.Expense, Color: "#6b7280"},
		},
		Accounts: []core.Account{
			{ID: uuid.NewString(), Name: "Farm Checking", Type: core.Standard},
		},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *core.FarmData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Replace swaps in a whole new state, typically one pulled from the
// persistence service. Last write wins.
func (s *Store) Replace(data *core.FarmData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
}

// AddTransaction validates and stores a transaction, assigning an ID when
// the caller did not provide one.
func (s *Store) AddTransaction(tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Transactions = append(s.data.Transactions, tx)
	return tx, nil
}

func (s *Store) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.data.Transactions {
		if tx.ID == id {
			s.data.Transactions = append(s.data.Transactions[:i], s.data.Transactions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) AddCategory(c core.Category) (core.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Categories = append(s.data.Categories, c)
	return c, nil
}

func (s *Store) UpdateCategory(c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.data.Categories {
		if existing.ID == c.ID {
			s.data.Categories[i] = c
			return c, nil
		}
	}
	return core.Category{}, ErrNotFound
}

// DeleteCategory removes a category. Transactions that referenced it keep
// their ID and fall back to "Other" in aggregations.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.data.Categories {
		if c.ID == id {
			s.data.Categories = append(s.data.Categories[:i], s.data.Categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) AddAccount(a core.Account) (core.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Accounts = append(s.data.Accounts, a)
	return a, nil
}

func (s *Store) AddLiability(l core.Liability) (core.Liability, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := l.Validate(); err != nil {
		return core.Liability{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Liabilities = append(s.data.Liabilities, l)
	return l, nil
}

// CategoryNames returns every category name, for the suggestion service.
func (s *Store) CategoryNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.data.Categories))
	for _, c := range s.data.Categories {
		out = append(out, c.Name)
	}
	return out
}
