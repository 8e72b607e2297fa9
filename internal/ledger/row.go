package ledger

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"contas/internal/core"
)

// Columns is the persisted column set, shared by the CSV table, the
// SQLite table and the history workbook. The trailing four columns are
// derived values written for display; DecodeRow ignores them and the
// engine recomputes them on every load.
var Columns = []string{
	"ID",
	"Name",
	"Description",
	"Value",
	"DueDate",
	"Status",
	"PaymentMethod",
	"PixKey",
	"DailyInterestRate",
	"PaymentDate",
	"DaysRemaining",
	"DaysOverdue",
	"AccruedInterest",
	"TotalDue",
}

const sourceColumns = 10

// EncodeRow renders a bill as one table row in Columns order.
// Dates are YYYY-MM-DD (empty for no payment date), decimals keep their
// exact string form so rows round-trip losslessly.
func EncodeRow(b core.Bill) []string {
	return []string{
		b.ID,
		b.Name,
		b.Description,
		b.Principal.String(),
		b.DueDate.String(),
		string(b.Status),
		string(b.Method),
		b.PixKey,
		b.DailyRate.String(),
		b.PaymentDate.String(),
		strconv.Itoa(b.DaysRemaining),
		strconv.Itoa(b.DaysOverdue),
		b.AccruedInterest.String(),
		b.TotalDue.String(),
	}
}

// DecodeRow parses a persisted row. Rows shorter than the full column
// set are accepted as long as the source fields are present, so tables
// written before derived columns existed still load.
func DecodeRow(cells []string) (core.Bill, error) {
	if len(cells) < sourceColumns {
		return core.Bill{}, fmt.Errorf("row has %d cells, want at least %d", len(cells), sourceColumns)
	}

	principal, err := decimal.NewFromString(cells[3])
	if err != nil {
		return core.Bill{}, fmt.Errorf("parse value %q: %w", cells[3], err)
	}
	dueDate, err := core.ParseDate(cells[4])
	if err != nil {
		return core.Bill{}, fmt.Errorf("parse due date %q: %w", cells[4], err)
	}
	rate, err := decimal.NewFromString(cells[8])
	if err != nil {
		return core.Bill{}, fmt.Errorf("parse daily interest rate %q: %w", cells[8], err)
	}
	paymentDate, err := core.ParseDate(cells[9])
	if err != nil {
		return core.Bill{}, fmt.Errorf("parse payment date %q: %w", cells[9], err)
	}

	return core.Bill{
		ID:          cells[0],
		Name:        cells[1],
		Description: cells[2],
		Principal:   principal,
		DueDate:     dueDate,
		Status:      core.Status(cells[5]),
		Method:      core.PaymentMethod(cells[6]),
		PixKey:      cells[7],
		DailyRate:   rate,
		PaymentDate: paymentDate,
	}, nil
}
