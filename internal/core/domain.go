package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"

	Standard AccountType = "STANDARD"
	Credit   AccountType = "CREDIT"
)

type (
	TransactionType string
	AccountType     string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Amount      Money           `json:"amountCents"`
		Type        TransactionType `json:"type"`
		CategoryID  string          `json:"categoryId"`
		AccountID   string          `json:"accountId"`
		Description string          `json:"description"`
	}

	Account struct {
		ID             string      `json:"id"`
		Name           string      `json:"name"`
		Type           AccountType `json:"type"`
		InitialBalance Money       `json:"initialBalanceCents"`
		// PaymentDay is the day of month a credit account's payment is
		// expected. Zero means unset. Days 29-31 clamp to the last day
		// of shorter months.
		PaymentDay int `json:"paymentDay,omitempty"`
	}

	Category struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Type  TransactionType `json:"type"`
		Color string          `json:"color,omitempty"`
	}

	Liability struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		Category       string `json:"category"`
		Description    string `json:"description,omitempty"`
		CurrentBalance Money  `json:"currentBalanceCents"`
		// DueDate and InstallmentAmount are optional. A zero DueDate
		// keeps the liability out of payment projections.
		DueDate           Date  `json:"dueDate,omitempty"`
		InstallmentAmount Money `json:"installmentAmountCents,omitempty"`
	}

	Asset struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Category     string `json:"category"`
		Description  string `json:"description,omitempty"`
		PurchaseDate Date   `json:"purchaseDate,omitempty"`
		Value        Money  `json:"valueCents"`
	}

	InventoryItem struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		SKU         string  `json:"sku,omitempty"`
		Description string  `json:"description,omitempty"`
		Quantity    float64 `json:"quantity"`
		Unit        string  `json:"unit,omitempty"`
	}

	AnimalSpecies struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Breed string `json:"breed,omitempty"`
		Tag   string `json:"tag,omitempty"`
		Count int    `json:"count"`
	}

	AnimalLog struct {
		ID        string `json:"id"`
		SpeciesID string `json:"speciesId"`
		Date      Date   `json:"date"`
		Type      string `json:"type"`
		Note      string `json:"note,omitempty"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidPaymentDay  = errors.New("payment day must be between 1 and 31")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyDescription   = errors.New("empty description")
	ErrZeroDate           = errors.New("date cannot be zero")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// IsEmpty reports whether the date is unset (optional dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	*d = Date{Time: t}
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if err := tx.Type.Validate(); err != nil {
		return err
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	switch a.Type {
	case Standard, Credit:
	default:
		return ErrInvalidAccountType
	}
	if a.PaymentDay < 0 || a.PaymentDay > 31 {
		return ErrInvalidPaymentDay
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return c.Type.Validate()
}

func (l Liability) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if l.CurrentBalance.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
