package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MonthTotal aggregates principal amounts for one due-month and status.
type MonthTotal struct {
	Month  string // YYYY-MM
	Status Status
	Total  decimal.Decimal
}

// Summary groups an accrued record set into the read-only views the
// presentation layer renders. It never mutates the ledger.
type Summary struct {
	Unpaid  []Bill
	Paid    []Bill
	Overdue []Bill // unpaid and past due
	Monthly []MonthTotal
}

// Notifications flags records a caller may want to surface. Delivery is
// the caller's problem; the engine only selects.
type Notifications struct {
	NearDue []Bill // unpaid, due within the window
	Overdue []Bill // unpaid, past due
}

// BuildSummary expects bills that already went through Accrue.
func BuildSummary(bills []Bill) Summary {
	var s Summary
	totals := map[string]map[Status]decimal.Decimal{}
	for _, b := range bills {
		switch b.Status {
		case StatusPaid:
			s.Paid = append(s.Paid, b)
		default:
			s.Unpaid = append(s.Unpaid, b)
			if b.DaysOverdue > 0 {
				s.Overdue = append(s.Overdue, b)
			}
		}
		month := b.DueDate.Format("2006-01")
		if totals[month] == nil {
			totals[month] = map[Status]decimal.Decimal{}
		}
		totals[month][b.Status] = totals[month][b.Status].Add(b.Principal)
	}

	for month, byStatus := range totals {
		for status, total := range byStatus {
			s.Monthly = append(s.Monthly, MonthTotal{Month: month, Status: status, Total: total})
		}
	}
	sort.Slice(s.Monthly, func(i, j int) bool {
		if s.Monthly[i].Month != s.Monthly[j].Month {
			return s.Monthly[i].Month < s.Monthly[j].Month
		}
		return s.Monthly[i].Status < s.Monthly[j].Status
	})
	return s
}

// BuildNotifications expects accrued bills. window is the near-due
// horizon in days. The two subsets are independent filters, so an
// overdue bill shows up in both: its remaining days are zero.
func BuildNotifications(bills []Bill, window int) Notifications {
	var n Notifications
	for _, b := range bills {
		if b.Status == StatusPaid {
			continue
		}
		if b.DaysRemaining <= window {
			n.NearDue = append(n.NearDue, b)
		}
		if b.DaysOverdue > 0 {
			n.Overdue = append(n.Overdue, b)
		}
	}
	return n
}
