// Package storage provides the interchangeable backends for the current
// ledger table: a CSV file (the legacy data file format), SQLite, and an
// in-memory store used by tests.
package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"contas/internal/core"
	"contas/internal/ledger"
)

// CSVStore keeps the current record set in a single CSV file with a
// header row. Save writes a temp file and renames it over the old one,
// so a failed write never leaves a half-written table behind.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) (*CSVStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &CSVStore{path: path}, nil
}

func (s *CSVStore) Load(_ context.Context) ([]core.Bill, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger table: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	bills := make([]core.Bill, 0, len(rows)-1)
	for i, row := range rows[1:] {
		b, err := ledger.DecodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("ledger table row %d: %w", i+2, err)
		}
		bills = append(bills, b)
	}
	return bills, nil
}

func (s *CSVStore) Save(_ context.Context, bills []core.Bill) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".contas-*.csv")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(ledger.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, b := range bills {
		if err := w.Write(ledger.EncodeRow(b)); err != nil {
			tmp.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush ledger table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp table: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("commit ledger table: %w", err)
	}
	return nil
}

func (s *CSVStore) Purge(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("purge ledger table: %w", err)
	}
	return nil
}
