package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Ledger store backend: csv, sqlite or memory
	DataBackend string

	// Store paths
	CSVPath      string
	SQLiteDBPath string

	// History archive
	HistoryPath   string
	MirrorEnabled bool

	// Notifications
	NearDueDays int

	// Export
	ExportDir string
}

func Load() *Config {
	return &Config{
		DataBackend:   getEnv("DATA_BACKEND", "csv"),
		CSVPath:       getEnv("LEDGER_CSV_PATH", "./data/contas.csv"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/contas.db"),
		HistoryPath:   getEnv("HISTORY_XLSX_PATH", "./data/historico_contas.xlsx"),
		MirrorEnabled: getEnvBool("SHEETS_MIRROR", false),
		NearDueDays:   getEnvInt("NEAR_DUE_DAYS", 3),
		ExportDir:     getEnv("EXPORT_DIR", "./exports"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	validBackends := []string{"csv", "sqlite", "memory"}
	isValid := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValid = true
			break
		}
	}
	if !isValid {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "csv":
		if c.CSVPath == "" {
			errs = append(errs, "ledger CSV path cannot be empty when using csv backend")
		} else if err := ensureDir(c.CSVPath); err != nil {
			errs = append(errs, err.Error())
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if c.HistoryPath == "" {
		errs = append(errs, "history workbook path cannot be empty")
	} else if err := ensureDir(c.HistoryPath); err != nil {
		errs = append(errs, err.Error())
	}

	if c.NearDueDays < 0 {
		errs = append(errs, fmt.Sprintf("invalid near-due window %d: must be non-negative", c.NearDueDays))
	} else if c.NearDueDays > 365 {
		errs = append(errs, fmt.Sprintf("invalid near-due window %d: must be at most 365 days", c.NearDueDays))
	}

	if c.MirrorEnabled && os.Getenv("GOOGLE_SPREADSHEET_ID") == "" {
		errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when the sheets mirror is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory '%s': %v", dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
