package google

import (
	"context"
	"testing"

	"farmbook/internal/core"
)

func TestMirrorRows(t *testing.T) {
	data := &core.FarmData{
		Categories: []core.Category{{ID: "feed", Name: "Feed", Type: core.Expense}},
		Accounts:   []core.Account{{ID: "a1", Name: "Checking", Type: core.Standard}},
		Transactions: []core.Transaction{
			{ID: "t1", Date: core.NewDate(2025, 2, 3), Description: "hay", Type: core.Expense, Amount: core.Money{Cents: 1250}, CategoryID: "feed", AccountID: "a1"},
			{ID: "t2", Date: core.NewDate(2025, 2, 4), Description: "mystery", Type: core.Expense, Amount: core.Money{Cents: 100}, CategoryID: "gone", AccountID: "gone"},
		},
	}

	rows := MirrorRows("user@farm.com", data)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Identity" || rows[0][4] != "Amount" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	first := rows[1]
	if first[1] != "2025-02-03" || first[2] != "hay" || first[4] != 12.50 || first[5] != "Feed" || first[6] != "Checking" {
		t.Fatalf("unexpected row %v", first)
	}
	second := rows[2]
	if second[5] != "Other" || second[6] != "Unknown" {
		t.Fatalf("dangling references should fall back, got %v", second)
	}
}

func TestMirrorRowsEmptySnapshot(t *testing.T) {
	rows := MirrorRows("user@farm.com", &core.FarmData{})
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestNewFromEnvMissingSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatalf("expected error without spreadsheet ID")
	}
}

func TestNewFromEnvMissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatalf("expected error without credentials")
	}
}
