package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"contas/internal/core"
	applog "contas/internal/log"
	"contas/internal/services"
)

var hundred = decimal.NewFromInt(100)

type billFlags struct {
	description string
	value       string
	due         string
	method      string
	pixKey      string
	ratePercent string
}

func (f *billFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "free-text description")
	cmd.Flags().StringVar(&f.value, "value", "", "amount owed, e.g. 123.45")
	cmd.Flags().StringVar(&f.due, "due", "", "due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.method, "method", string(core.MethodOther),
		"payment method: PIX, CASH, WIRE_TED, CHECK, BANK_TRANSFER or OTHER")
	cmd.Flags().StringVar(&f.pixKey, "pix-key", "", "PIX key, required when method is PIX")
	cmd.Flags().StringVar(&f.ratePercent, "rate", "0", "daily interest rate in percent, e.g. 1.5")
}

// parse converts the raw flag strings into typed field values. Rates are
// entered as a percentage and stored as a fraction.
func (f *billFlags) parse() (principal decimal.Decimal, due core.Date, method core.PaymentMethod, rate decimal.Decimal, err error) {
	principal, err = decimal.NewFromString(f.value)
	if err != nil {
		return principal, due, method, rate, fmt.Errorf("invalid --value %q: %w", f.value, err)
	}
	due, err = core.ParseDate(f.due)
	if err != nil {
		return principal, due, method, rate, fmt.Errorf("invalid --due %q: %w", f.due, err)
	}
	percent, err := decimal.NewFromString(f.ratePercent)
	if err != nil {
		return principal, due, method, rate, fmt.Errorf("invalid --rate %q: %w", f.ratePercent, err)
	}
	rate = percent.Div(hundred)
	method = core.PaymentMethod(f.method)
	return principal, due, method, rate, nil
}

var addFlags = struct {
	name string
	billFlags
}{}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new unpaid bill to the ledger",
	Example: `  contas add --name "Rent" --value 500 --due 2026-09-05 --method PIX --pix-key rent@landlord --rate 2
  contas add --name "Internet" --value 99.90 --due 2026-09-10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		principal, due, method, rate, err := addFlags.parse()
		if err != nil {
			return err
		}
		bill := core.NewBill(addFlags.name, addFlags.description, principal, due,
			method, addFlags.pixKey, rate)

		bills, err := svc.Add(cmd.Context(), bill)
		if err := reportPartial(err); err != nil {
			return err
		}
		logger.InfoContext(cmd.Context(), "Bill added",
			applog.FieldBillName, bill.Name, applog.FieldBillID, bill.ID)
		fmt.Printf("Added %q (%d bills in the ledger)\n", bill.Name, len(bills))
		return nil
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle NAME",
	Short: "Mark the first unpaid bill with this name as paid today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		_, err := svc.Settle(cmd.Context(), name)
		if err := reportPartial(err); err != nil {
			return err
		}
		logger.InfoContext(cmd.Context(), "Bill settled", applog.FieldBillName, name)
		fmt.Printf("Settled %q\n", name)
		return nil
	},
}

var editFlags billFlags

var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Replace the editable fields of the first bill with this name",
	Long: `Edit replaces description, value, due date, payment method, PIX key
and daily interest rate of the first bill matching NAME. Status and
payment date are never changed by edit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		principal, due, method, rate, err := editFlags.parse()
		if err != nil {
			return err
		}
		req := services.EditRequest{
			Description: editFlags.description,
			Principal:   principal,
			DueDate:     due,
			Method:      method,
			PixKey:      editFlags.pixKey,
			DailyRate:   rate,
		}
		_, err = svc.Edit(cmd.Context(), name, req)
		if err := reportPartial(err); err != nil {
			return err
		}
		logger.InfoContext(cmd.Context(), "Bill edited", applog.FieldBillName, name)
		fmt.Printf("Edited %q\n", name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete every bill with this name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		_, err := svc.Delete(cmd.Context(), name)
		if err := reportPartial(err); err != nil {
			return err
		}
		logger.InfoContext(cmd.Context(), "Bill deleted", applog.FieldBillName, name)
		fmt.Printf("Deleted %q\n", name)
		return nil
	},
}

var purgeYes bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Discard the entire current ledger (history is kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !purgeYes {
			return fmt.Errorf("refusing to purge without --yes")
		}
		if err := svc.Purge(cmd.Context()); err != nil {
			return err
		}
		logger.InfoContext(cmd.Context(), "Ledger purged")
		fmt.Println("Ledger purged; history workbook untouched")
		return nil
	},
}

func init() {
	addFlags.register(addCmd)
	addCmd.Flags().StringVar(&addFlags.name, "name", "", "bill name")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("value")
	_ = addCmd.MarkFlagRequired("due")

	editFlags.register(editCmd)
	_ = editCmd.MarkFlagRequired("value")
	_ = editCmd.MarkFlagRequired("due")

	purgeCmd.Flags().BoolVar(&purgeYes, "yes", false, "confirm the purge")

	rootCmd.AddCommand(addCmd, settleCmd, editCmd, deleteCmd, purgeCmd)
}
