package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"contas/internal/core"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the current ledger with interest accrued as of today",
	RunE: func(cmd *cobra.Command, args []string) error {
		bills, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(bills) == 0 {
			fmt.Println("No bills in the ledger.")
			return nil
		}
		printBills(bills)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show unpaid, paid and overdue bills plus monthly totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := svc.Summary(cmd.Context())
		if err != nil {
			return err
		}

		printSection("Unpaid", s.Unpaid)
		printSection("Paid", s.Paid)
		printSection("Overdue", s.Overdue)

		fmt.Println("Totals by month:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MONTH\tSTATUS\tTOTAL")
		for _, mt := range s.Monthly {
			fmt.Fprintf(w, "%s\t%s\t%s\n", mt.Month, mt.Status, mt.Total.StringFixed(2))
		}
		return w.Flush()
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Show bills that are near due or overdue",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := svc.Notifications(cmd.Context())
		if err != nil {
			return err
		}
		printSection(fmt.Sprintf("Due within %d days", cfg.NearDueDays), n.NearDue)
		printSection("Overdue", n.Overdue)
		return nil
	},
}

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a CSV copy and an XLSX report of the current ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := exportDir
		if dir == "" {
			dir = cfg.ExportDir
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}

		stamp := time.Now().Format("2006-01-02")
		csvPath := filepath.Join(dir, "contas-"+stamp+".csv")
		xlsxPath := filepath.Join(dir, "contas-"+stamp+".xlsx")
		if err := svc.Export(cmd.Context(), csvPath, xlsxPath); err != nil {
			return err
		}
		fmt.Printf("Exported %s and %s\n", csvPath, xlsxPath)
		return nil
	},
}

func printSection(title string, bills []core.Bill) {
	fmt.Printf("%s (%d):\n", title, len(bills))
	if len(bills) == 0 {
		fmt.Println("  none")
		fmt.Println()
		return
	}
	printBills(bills)
	fmt.Println()
}

func printBills(bills []core.Bill) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tDUE\tSTATUS\tMETHOD\tRATE/DAY\tOVERDUE\tINTEREST\tTOTAL\tPAID ON")
	for _, b := range bills {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s%%\t%d\t%s\t%s\t%s\n",
			b.Name,
			b.Principal.StringFixed(2),
			b.DueDate,
			b.Status,
			b.Method,
			b.DailyRate.Mul(hundred).String(),
			b.DaysOverdue,
			b.AccruedInterest.StringFixed(2),
			b.TotalDue.StringFixed(2),
			b.PaymentDate,
		)
	}
	w.Flush()
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "destination directory (default from EXPORT_DIR)")
	rootCmd.AddCommand(listCmd, summaryCmd, notifyCmd, exportCmd)
}
