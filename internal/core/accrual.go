package core

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// Accrue returns a copy of bills with the derived fields populated as of
// today. It is pure: today is always an explicit input, never sampled
// from the system clock, so runs are deterministic and replayable.
//
// Interest compounds daily on overdue unpaid amounts:
//
//	interest = round(principal * ((1+rate)^daysOverdue - 1), 2)
//
// rounded half-up to two decimal places. A bill due today or later
// accrues nothing regardless of its rate. For PAID bills the reference
// date is capped at the payment date, so derived fields freeze at
// settlement instead of growing forever.
func Accrue(bills []Bill, today Date) []Bill {
	out := make([]Bill, len(bills))
	for i, b := range bills {
		out[i] = accrue(b, today)
	}
	return out
}

func accrue(b Bill, today Date) Bill {
	asOf := today
	if b.Status == StatusPaid && !b.PaymentDate.IsZero() && b.PaymentDate.Before(today.Time) {
		asOf = b.PaymentDate
	}

	days := asOf.DaysUntil(b.DueDate)
	b.DaysRemaining = max(days, 0)
	b.DaysOverdue = max(-days, 0)

	if b.DaysOverdue > 0 {
		growth := one.Add(b.DailyRate).Pow(decimal.NewFromInt(int64(b.DaysOverdue)))
		b.AccruedInterest = b.Principal.Mul(growth.Sub(one)).Round(2)
	} else {
		b.AccruedInterest = decimal.Zero
	}
	b.TotalDue = b.Principal.Add(b.AccruedInterest)
	return b
}
