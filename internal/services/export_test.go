package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"contas/internal/core"
	"contas/internal/storage"
)

func TestLedgerService_Export(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, rentBill()); err != nil {
		t.Fatal(err)
	}
	paid := core.NewBill("Power", "", dec("120"), core.NewDate(2026, 8, 10), core.MethodCash, "", dec("0"))
	if _, err := svc.Add(ctx, paid); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Settle(ctx, "Power"); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "contas.csv")
	xlsxPath := filepath.Join(dir, "contas.xlsx")
	if err := svc.Export(ctx, csvPath, xlsxPath); err != nil {
		t.Fatalf("Export() = %v", err)
	}

	out, err := storage.NewCSVStore(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	bills, err := out.Load(ctx)
	if err != nil {
		t.Fatalf("load exported csv: %v", err)
	}
	if len(bills) != 2 {
		t.Errorf("exported csv has %d bills, want 2", len(bills))
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		t.Fatalf("open exported report: %v", err)
	}
	defer f.Close()

	wantRows := map[string]int{
		"All":     3, // header + 2
		"Unpaid":  2,
		"Paid":    2,
		"Overdue": 2, // Rent is five days past due
	}
	for sheet, want := range wantRows {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("read %s: %v", sheet, err)
		}
		if len(rows) != want {
			t.Errorf("%s has %d rows, want %d", sheet, len(rows), want)
		}
	}
}
