package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

const (
	MethodPix          PaymentMethod = "PIX"
	MethodCash         PaymentMethod = "CASH"
	MethodWireTED      PaymentMethod = "WIRE_TED"
	MethodCheck        PaymentMethod = "CHECK"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodOther        PaymentMethod = "OTHER"
)

type (
	Status string

	PaymentMethod string

	// Date is a calendar date with day precision, always UTC.
	// The zero value means "no date" (e.g. an unpaid bill's payment date).
	Date struct {
		time.Time
	}

	// Bill is one row of the ledger. Name is the human-facing identifier
	// and is not unique; ID is a generated key carried for stable row
	// identity in exports and listings.
	Bill struct {
		ID          string
		Name        string
		Description string
		Principal   decimal.Decimal
		DueDate     Date
		Status      Status
		Method      PaymentMethod
		PixKey      string
		DailyRate   decimal.Decimal // fraction per day, 0.01 = 1%/day
		PaymentDate Date            // set only when Status is PAID

		// Derived fields, recomputed by Accrue on every load/mutate.
		// Persisted for display only, never trusted from storage.
		DaysRemaining   int
		DaysOverdue     int
		AccruedInterest decimal.Decimal
		TotalDue        decimal.Decimal
	}
)

var (
	ErrEmptyName      = errors.New("empty bill name")
	ErrNegativeAmount = errors.New("negative amount")
	ErrNegativeRate   = errors.New("negative daily interest rate")
	ErrInvalidMethod  = errors.New("invalid payment method")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrMissingPixKey  = errors.New("missing PIX key for PIX payment method")
	ErrPaymentDate    = errors.New("payment date inconsistent with status")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day precision in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string. An empty string is the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// DaysUntil returns the number of whole days from d to other.
// Negative when other is in the past relative to d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time) / (24 * time.Hour))
}

func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodPix, MethodCash, MethodWireTED, MethodCheck, MethodBankTransfer, MethodOther:
		return true
	}
	return false
}

// NewBill builds an unpaid bill with a generated ID. The result still
// has to pass Validate before it enters the ledger.
func NewBill(name, description string, principal decimal.Decimal, dueDate Date, method PaymentMethod, pixKey string, dailyRate decimal.Decimal) Bill {
	return Bill{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Principal:   principal,
		DueDate:     dueDate,
		Status:      StatusUnpaid,
		Method:      method,
		PixKey:      pixKey,
		DailyRate:   dailyRate,
	}
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if b.Principal.IsNegative() {
		return ErrNegativeAmount
	}
	if b.DailyRate.IsNegative() {
		return ErrNegativeRate
	}
	if err := b.DueDate.Validate(); err != nil {
		return err
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	if !b.Method.Valid() {
		return ErrInvalidMethod
	}
	if b.Method == MethodPix && strings.TrimSpace(b.PixKey) == "" {
		return ErrMissingPixKey
	}
	if b.Status == StatusPaid && b.PaymentDate.IsZero() {
		return ErrPaymentDate
	}
	if b.Status == StatusUnpaid && !b.PaymentDate.IsZero() {
		return ErrPaymentDate
	}
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}
