package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"contas/internal/core"
)

// SQLiteStore keeps the current record set in a single `bills` table.
// Save replaces the whole table inside one transaction, matching the
// overwrite-wholesale contract of the CSV file. Row order is preserved
// through the position column because the first-match operations depend
// on set order.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]core.Bill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, value, due_date, status,
		       payment_method, pix_key, daily_interest_rate, payment_date
		FROM bills ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		var (
			b                    core.Bill
			value, rate          string
			dueDate, paymentDate string
			status, payMethod    string
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &value, &dueDate,
			&status, &payMethod, &b.PixKey, &rate, &paymentDate); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		if b.Principal, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("parse value %q: %w", value, err)
		}
		if b.DailyRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("parse daily interest rate %q: %w", rate, err)
		}
		if b.DueDate, err = core.ParseDate(dueDate); err != nil {
			return nil, fmt.Errorf("parse due date %q: %w", dueDate, err)
		}
		if b.PaymentDate, err = core.ParseDate(paymentDate); err != nil {
			return nil, fmt.Errorf("parse payment date %q: %w", paymentDate, err)
		}
		b.Status = core.Status(status)
		b.Method = core.PaymentMethod(payMethod)
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	return bills, nil
}

func (s *SQLiteStore) Save(ctx context.Context, bills []core.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bills`); err != nil {
		return fmt.Errorf("clear bills: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bills (position, id, name, description, value, due_date,
		                   status, payment_method, pix_key, daily_interest_rate,
		                   payment_date, days_remaining, days_overdue,
		                   accrued_interest, total_due)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range bills {
		_, err := stmt.ExecContext(ctx, i, b.ID, b.Name, b.Description,
			b.Principal.String(), b.DueDate.String(), string(b.Status),
			string(b.Method), b.PixKey, b.DailyRate.String(),
			b.PaymentDate.String(), b.DaysRemaining, b.DaysOverdue,
			b.AccruedInterest.String(), b.TotalDue.String())
		if err != nil {
			return fmt.Errorf("insert bill %q: %w", b.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bills`); err != nil {
		return fmt.Errorf("purge bills: %w", err)
	}
	return nil
}
