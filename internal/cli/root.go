// Package cli is the thin presentation layer over the ledger engine:
// one cobra subcommand per operation, no state carried between
// invocations. It collects validated field values, calls the service
// and renders whatever the engine returns.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"contas/internal/config"
	"contas/internal/history"
	"contas/internal/history/sheets"
	"contas/internal/ledger"
	applog "contas/internal/log"
	"contas/internal/services"
	"contas/internal/storage"
)

var version = "1.0.0"

var (
	cfg     *config.Config
	svc     *services.LedgerService
	logger  *applog.Logger
	cleanup func() error
)

var rootCmd = &cobra.Command{
	Use:   "contas",
	Short: "contas - a personal accounts-payable ledger",
	Long: `contas tracks bills to pay: amounts, due dates, payment methods and
daily interest rates. Overdue bills accrue compounding daily interest,
and every change is archived into a permanent history workbook alongside
the live ledger.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cleanup != nil {
			return cleanup()
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	// .env is optional outside local development
	_ = godotenv.Load()

	logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentCLI)
	slog.SetDefault(logger.Logger)

	cfg = config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("initialize %s backend: %w", cfg.DataBackend, err)
	}

	workbook, err := history.NewWorkbook(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("initialize history workbook: %w", err)
	}

	opts := []services.Option{services.WithNearDueDays(cfg.NearDueDays)}
	if cfg.MirrorEnabled {
		mirror, err := sheets.NewFromEnv(cmd.Context())
		if err != nil {
			logger.Warn("Sheets mirror unavailable, continuing without it",
				applog.FieldError, err)
		} else {
			opts = append(opts, services.WithMirror(mirror))
		}
	}

	svc = services.NewLedgerService(store, workbook, opts...)
	return nil
}

func newStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, err
		}
		cleanup = store.Close
		return store, nil
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewCSVStore(cfg.CSVPath)
	}
}

// reportPartial distinguishes a failed operation from one that updated
// the ledger but could not record history.
func reportPartial(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, services.ErrHistoryNotRecorded) {
		logger.Warn("Ledger updated, history not recorded", applog.FieldError, err)
		fmt.Fprintln(os.Stderr, "warning: ledger updated, history not recorded")
		return nil
	}
	return err
}
