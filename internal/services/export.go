package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"contas/internal/core"
	"contas/internal/ledger"
	"contas/internal/storage"
)

// Export writes a point-in-time copy of the accrued record set: a CSV
// file with the full table and an XLSX report with one sheet per view.
// The two files are independent, so they are written concurrently.
func (s *LedgerService) Export(ctx context.Context, csvPath, xlsxPath string) error {
	bills, err := s.List(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := storage.NewCSVStore(csvPath)
		if err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		if err := out.Save(ctx, bills); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := writeReport(xlsxPath, bills); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func writeReport(path string, bills []core.Bill) error {
	summary := core.BuildSummary(bills)

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name  string
		bills []core.Bill
	}{
		{"All", bills},
		{"Unpaid", summary.Unpaid},
		{"Paid", summary.Paid},
		{"Overdue", summary.Overdue},
	}

	for i, sheet := range sheets {
		if i == 0 {
			f.SetSheetName("Sheet1", sheet.name)
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("create %s sheet: %w", sheet.name, err)
		}

		header := make([]any, len(ledger.Columns))
		for j, c := range ledger.Columns {
			header[j] = c
		}
		if err := f.SetSheetRow(sheet.name, "A1", &header); err != nil {
			return fmt.Errorf("write %s header: %w", sheet.name, err)
		}
		for j, b := range sheet.bills {
			row := ledger.EncodeRow(b)
			cells := make([]any, len(row))
			for k, v := range row {
				cells[k] = v
			}
			addr, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return fmt.Errorf("cell address: %w", err)
			}
			if err := f.SetSheetRow(sheet.name, addr, &cells); err != nil {
				return fmt.Errorf("write %s row: %w", sheet.name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
