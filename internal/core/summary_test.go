package core

import (
	"testing"
)

func summaryFixture(t *testing.T) []Bill {
	t.Helper()
	today := NewDate(2026, 8, 31)
	bills := []Bill{
		{Name: "Rent", Principal: dec("500"), DueDate: NewDate(2026, 8, 26), Status: StatusUnpaid, Method: MethodCash, DailyRate: dec("0.02")},
		{Name: "Internet", Principal: dec("99.90"), DueDate: NewDate(2026, 9, 2), Status: StatusUnpaid, Method: MethodOther, DailyRate: dec("0.01")},
		{Name: "Water", Principal: dec("60"), DueDate: NewDate(2026, 9, 20), Status: StatusUnpaid, Method: MethodOther, DailyRate: dec("0")},
		{Name: "Power", Principal: dec("120"), DueDate: NewDate(2026, 8, 10), Status: StatusPaid, Method: MethodPix, PixKey: "k", DailyRate: dec("0.01"), PaymentDate: NewDate(2026, 8, 10)},
	}
	return Accrue(bills, today)
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(summaryFixture(t))

	if got := names(s.Unpaid); !equal(got, []string{"Rent", "Internet", "Water"}) {
		t.Errorf("Unpaid = %v", got)
	}
	if got := names(s.Paid); !equal(got, []string{"Power"}) {
		t.Errorf("Paid = %v", got)
	}
	if got := names(s.Overdue); !equal(got, []string{"Rent"}) {
		t.Errorf("Overdue = %v", got)
	}

	want := []MonthTotal{
		{Month: "2026-08", Status: StatusPaid, Total: dec("120")},
		{Month: "2026-08", Status: StatusUnpaid, Total: dec("500")},
		{Month: "2026-09", Status: StatusUnpaid, Total: dec("159.90")},
	}
	if len(s.Monthly) != len(want) {
		t.Fatalf("Monthly has %d entries, want %d: %+v", len(s.Monthly), len(want), s.Monthly)
	}
	for i, w := range want {
		got := s.Monthly[i]
		if got.Month != w.Month || got.Status != w.Status || !got.Total.Equal(w.Total) {
			t.Errorf("Monthly[%d] = %s/%s/%s, want %s/%s/%s",
				i, got.Month, got.Status, got.Total, w.Month, w.Status, w.Total)
		}
	}
}

func TestBuildNotifications(t *testing.T) {
	n := BuildNotifications(summaryFixture(t), 3)

	// Rent is overdue (remaining days zero) and therefore also near-due;
	// Internet is due in two days; Water is three weeks out; Power is paid.
	if got := names(n.NearDue); !equal(got, []string{"Rent", "Internet"}) {
		t.Errorf("NearDue = %v", got)
	}
	if got := names(n.Overdue); !equal(got, []string{"Rent"}) {
		t.Errorf("Overdue = %v", got)
	}
}

func TestBuildNotifications_WiderWindow(t *testing.T) {
	n := BuildNotifications(summaryFixture(t), 30)

	if got := names(n.NearDue); !equal(got, []string{"Rent", "Internet", "Water"}) {
		t.Errorf("NearDue = %v", got)
	}
}

func names(bills []Bill) []string {
	out := make([]string, len(bills))
	for i, b := range bills {
		out[i] = b.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
