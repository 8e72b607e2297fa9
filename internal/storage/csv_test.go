package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"contas/internal/core"
)

func testBills() []core.Bill {
	unpaid := core.Bill{
		ID:          "id-1",
		Name:        "Rent",
		Description: "apartment, with a comma",
		Principal:   decimal.RequireFromString("500"),
		DueDate:     core.NewDate(2026, 8, 26),
		Status:      core.StatusUnpaid,
		Method:      core.MethodPix,
		PixKey:      "rent@landlord",
		DailyRate:   decimal.RequireFromString("0.02"),
	}
	paid := core.Bill{
		ID:          "id-2",
		Name:        "Power",
		Principal:   decimal.RequireFromString("120.50"),
		DueDate:     core.NewDate(2026, 8, 10),
		Status:      core.StatusPaid,
		Method:      core.MethodBankTransfer,
		DailyRate:   decimal.RequireFromString("0.01"),
		PaymentDate: core.NewDate(2026, 8, 12),
	}
	return core.Accrue([]core.Bill{unpaid, paid}, core.NewDate(2026, 8, 31))
}

func TestCSVStore_LoadMissingFile(t *testing.T) {
	store, err := NewCSVStore(filepath.Join(t.TempDir(), "contas.csv"))
	if err != nil {
		t.Fatal(err)
	}
	bills, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() on missing file = %v, want nil error", err)
	}
	if len(bills) != 0 {
		t.Errorf("Load() on missing file returned %d bills", len(bills))
	}
}

func TestCSVStore_RoundTrip(t *testing.T) {
	store, err := NewCSVStore(filepath.Join(t.TempDir(), "contas.csv"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	in := testBills()

	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	out, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("Load() returned %d bills, want %d", len(out), len(in))
	}

	for i := range in {
		want, got := in[i], out[i]
		if got.ID != want.ID || got.Name != want.Name || got.Description != want.Description {
			t.Errorf("bill %d identity fields differ: %+v vs %+v", i, got, want)
		}
		if !got.Principal.Equal(want.Principal) || !got.DailyRate.Equal(want.DailyRate) {
			t.Errorf("bill %d amounts differ: %s/%s vs %s/%s",
				i, got.Principal, got.DailyRate, want.Principal, want.DailyRate)
		}
		if got.DueDate.String() != want.DueDate.String() || got.PaymentDate.String() != want.PaymentDate.String() {
			t.Errorf("bill %d dates differ", i)
		}
		if got.Status != want.Status || got.Method != want.Method || got.PixKey != want.PixKey {
			t.Errorf("bill %d enums differ", i)
		}
		// Derived fields come back zeroed: they are recomputed on read.
		if got.DaysOverdue != 0 || !got.AccruedInterest.IsZero() {
			t.Errorf("bill %d carried derived fields through the store", i)
		}
	}
}

func TestCSVStore_SaveOverwritesWholesale(t *testing.T) {
	store, err := NewCSVStore(filepath.Join(t.TempDir(), "contas.csv"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, testBills()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, testBills()[:1]); err != nil {
		t.Fatal(err)
	}
	out, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Errorf("second Save() did not overwrite: %d bills", len(out))
	}
}

func TestCSVStore_Purge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contas.csv")
	store, err := NewCSVStore(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Purge(ctx); err != nil {
		t.Errorf("Purge() with no table = %v, want nil", err)
	}

	if err := store.Save(ctx, testBills()); err != nil {
		t.Fatal(err)
	}
	if err := store.Purge(ctx); err != nil {
		t.Fatalf("Purge() = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("table file still exists after Purge()")
	}
	bills, err := store.Load(ctx)
	if err != nil || len(bills) != 0 {
		t.Errorf("Load() after Purge() = %d bills, %v", len(bills), err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	bills, err := store.Load(ctx)
	if err != nil || len(bills) != 0 {
		t.Fatalf("fresh Load() = %d bills, %v", len(bills), err)
	}

	if err := store.Save(ctx, testBills()); err != nil {
		t.Fatal(err)
	}
	bills, err = store.Load(ctx)
	if err != nil || len(bills) != 2 {
		t.Fatalf("Load() after Save() = %d bills, %v", len(bills), err)
	}

	// The store hands out copies, not its own slice.
	bills[0].Name = "mutated"
	again, _ := store.Load(ctx)
	if again[0].Name == "mutated" {
		t.Error("Load() exposed internal state")
	}

	if err := store.Purge(ctx); err != nil {
		t.Fatal(err)
	}
	bills, _ = store.Load(ctx)
	if len(bills) != 0 {
		t.Errorf("Load() after Purge() = %d bills", len(bills))
	}
}
