// Package history maintains the permanent archive of ledger snapshots:
// an XLSX workbook with an Entries sheet holding the latest snapshot and
// a History sheet holding the deduplicated cumulative log.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"contas/internal/core"
	"contas/internal/ledger"
)

const (
	SheetEntries = "Entries"
	SheetHistory = "History"
)

// Workbook archives snapshots into an XLSX file. The History sheet is
// append-only up to exact-duplicate collapsing: a row is a duplicate
// only when every persisted cell matches, so the same bill re-archived
// on a later day (with different derived values) still lands as a new
// row. Distinct-row count never decreases across calls.
type Workbook struct {
	path string
}

func NewWorkbook(path string) (*Workbook, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	return &Workbook{path: path}, nil
}

func (w *Workbook) Archive(_ context.Context, snapshot []core.Bill) error {
	rows := make([][]string, 0, len(snapshot))
	for _, b := range snapshot {
		rows = append(rows, ledger.EncodeRow(b))
	}

	historyRows := rows
	if existing, err := w.readHistory(); err != nil {
		return err
	} else if existing != nil {
		historyRows = dedupe(append(existing, rows...))
	}

	return w.write(rows, historyRows)
}

// readHistory returns the rows of the History sheet, or nil when the
// workbook does not exist yet. Headers are stripped.
func (w *Workbook) readHistory() ([][]string, error) {
	f, err := excelize.OpenFile(w.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetHistory)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", SheetHistory, err)
	}
	if len(rows) <= 1 {
		return [][]string{}, nil
	}
	return rows[1:], nil
}

func (w *Workbook) write(entries, history [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetEntries)
	if _, err := f.NewSheet(SheetHistory); err != nil {
		return fmt.Errorf("create %s sheet: %w", SheetHistory, err)
	}

	if err := writeSheet(f, SheetEntries, entries); err != nil {
		return err
	}
	if err := writeSheet(f, SheetHistory, history); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save history workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]string) error {
	header := make([]any, len(ledger.Columns))
	for i, c := range ledger.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell address: %w", err)
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// dedupe drops exact-duplicate rows, keeping first occurrences in order.
func dedupe(rows [][]string) [][]string {
	seen := make(map[string]struct{}, len(rows))
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		key := strings.Join(pad(row), "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// pad normalizes row width before comparison: excelize trims trailing
// empty cells on read, which would otherwise make a reread row differ
// from the row just written.
func pad(row []string) []string {
	if len(row) >= len(ledger.Columns) {
		return row[:len(ledger.Columns)]
	}
	padded := make([]string, len(ledger.Columns))
	copy(padded, row)
	return padded
}
