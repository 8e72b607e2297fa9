// Package sheets mirrors archived snapshots to a Google Sheets
// spreadsheet. The mirror is strictly best-effort: the local workbook is
// the archive of record, and callers log mirror failures without
// failing the operation.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"contas/internal/core"
	"contas/internal/ledger"
)

type Mirror struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv creates a mirror from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "History"), and service account
// credentials via GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Mirror, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "History"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Mirror{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// Archive appends the snapshot rows below the current contents of the
// mirror sheet. Remote rows are never rewritten or deduplicated; the
// sheet is a raw append log and the workbook stays authoritative.
func (m *Mirror) Archive(ctx context.Context, snapshot []core.Bill) error {
	if m.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if len(snapshot) == 0 {
		return nil
	}

	// Find the next empty row from the sheet's current dimensions.
	rng := fmt.Sprintf("%s!A:A", m.sheetName)
	resp, err := m.svc.Spreadsheets.Values.Get(m.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get sheet dimensions for %s: %w", m.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	values := make([][]any, 0, len(snapshot)+1)
	if nextRow == 1 {
		header := make([]any, len(ledger.Columns))
		for i, c := range ledger.Columns {
			header[i] = c
		}
		values = append(values, header)
	}
	for _, b := range snapshot {
		row := ledger.EncodeRow(b)
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		values = append(values, cells)
	}

	dataRange := fmt.Sprintf("%s!A%d", m.sheetName, nextRow)
	vr := &gsheet.ValueRange{Values: values}
	_, err = m.svc.Spreadsheets.Values.Update(m.spreadsheetID, dataRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append snapshot to sheet %s: %w", m.sheetName, err)
	}

	slog.InfoContext(ctx, "Snapshot mirrored to Google Sheets",
		"sheet", m.sheetName, "rows", len(snapshot), "start_row", nextRow)
	return nil
}

// newSheetsService initializes a Sheets service from service account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	credentialsJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	credentialsFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if credentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var creds []byte
	switch {
	case credentialsJSON != "":
		creds = []byte(credentialsJSON)
	case credentialsFile != "":
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		creds = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}
