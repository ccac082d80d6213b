// Package google mirrors the farm ledger to a Google Sheets spreadsheet
// using a service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"farmbook/internal/core"
	ports "farmbook/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.LedgerMirror = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_SHEET_NAME (default
// "Ledger").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Ledger"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// Mirror rewrites the ledger sheet with the snapshot's transactions. The
// previous contents are cleared first so deletions propagate.
func (c *Client) Mirror(ctx context.Context, identity string, data *core.FarmData) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rows := MirrorRows(identity, data)

	clearRange := fmt.Sprintf("%s!A:G", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.sheetName, err)
	}

	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: rows}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Mirrored ledger to Google Sheets",
		"identity", identity,
		"rows", len(rows)-1,
		"sheet", c.sheetName)
	return nil
}

// MirrorRows flattens a snapshot's transactions into sheet rows, header
// first. Category and account IDs are resolved to names; dangling
// references fall back to "Other" and "Unknown".
func MirrorRows(identity string, data *core.FarmData) [][]any {
	categories := core.CategoryIndex(data.Categories)
	accounts := core.AccountIndex(data.Accounts)

	rows := [][]any{
		{"Identity", "Date", "Description", "Type", "Amount", "Category", "Account"},
	}
	for _, tx := range data.Transactions {
		categoryName := "Other"
		if cat, ok := categories[tx.CategoryID]; ok {
			categoryName = cat.Name
		}
		accountName := "Unknown"
		if acc, ok := accounts[tx.AccountID]; ok {
			accountName = acc.Name
		}
		rows = append(rows, []any{
			identity,
			tx.Date.String(),
			tx.Description,
			string(tx.Type),
			tx.Amount.Dollars(),
			categoryName,
			accountName,
		})
	}
	return rows
}
