package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, 3, 9)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-03-09"` {
		t.Fatalf("expected \"2025-03-09\", got %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}

	var empty Date
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !empty.IsEmpty() {
		t.Fatalf("expected empty date")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          "t1",
		Date:        NewDate(2025, 1, 1),
		Amount:      Money{Cents: 100},
		Type:        Expense,
		CategoryID:  "c1",
		AccountID:   "a1",
		Description: "feed order",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{}, Amount: Money{Cents: 1}, Type: Expense, Description: "a"},       // zero date
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 1}, Type: "BOGUS", Description: "a"},
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 0}, Type: Income, Description: "a"},
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 1}, Type: Income, Description: "  "},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	cases := []struct {
		name string
		acc  Account
		ok   bool
	}{
		{"standard", Account{Name: "Checking", Type: Standard}, true},
		{"credit with payment day", Account{Name: "Card", Type: Credit, PaymentDay: 15}, true},
		{"empty name", Account{Name: " ", Type: Standard}, false},
		{"bad type", Account{Name: "X", Type: "SAVINGS"}, false},
		{"payment day too large", Account{Name: "Card", Type: Credit, PaymentDay: 32}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.acc.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFarmDataClone(t *testing.T) {
	orig := &FarmData{
		FarmName:     "Hill Farm",
		Transactions: []Transaction{{ID: "t1", Description: "hay"}},
		Accounts:     []Account{{ID: "a1", Name: "Checking", Type: Standard}},
	}
	cp := orig.Clone()
	cp.Transactions[0].Description = "changed"
	cp.Accounts[0].Name = "changed"
	if orig.Transactions[0].Description != "hay" {
		t.Fatalf("clone shares transaction backing array")
	}
	if orig.Accounts[0].Name != "Checking" {
		t.Fatalf("clone shares account backing array")
	}

	var nilData *FarmData
	if nilData.Clone() != nil {
		t.Fatalf("nil clone should be nil")
	}
}
