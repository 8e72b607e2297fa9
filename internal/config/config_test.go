package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		DataBackend:  "csv",
		CSVPath:      filepath.Join(dir, "contas.csv"),
		SQLiteDBPath: filepath.Join(dir, "contas.db"),
		HistoryPath:  filepath.Join(dir, "historico.xlsx"),
		NearDueDays:  3,
		ExportDir:    dir,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid csv backend",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid sqlite backend",
			mutate: func(c *Config) { c.DataBackend = "sqlite" },
		},
		{
			name:   "valid memory backend",
			mutate: func(c *Config) { c.DataBackend = "memory" },
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errContains: "invalid data backend 'postgres'",
		},
		{
			name:        "csv backend without path",
			mutate:      func(c *Config) { c.CSVPath = "" },
			wantErr:     true,
			errContains: "ledger CSV path cannot be empty",
		},
		{
			name: "sqlite backend without path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errContains: "SQLite database path cannot be empty",
		},
		{
			name:        "empty history path",
			mutate:      func(c *Config) { c.HistoryPath = "" },
			wantErr:     true,
			errContains: "history workbook path cannot be empty",
		},
		{
			name:        "negative near-due window",
			mutate:      func(c *Config) { c.NearDueDays = -1 },
			wantErr:     true,
			errContains: "must be non-negative",
		},
		{
			name:        "absurd near-due window",
			mutate:      func(c *Config) { c.NearDueDays = 1000 },
			wantErr:     true,
			errContains: "at most 365 days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.errContains)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.DataBackend != "csv" {
		t.Errorf("DataBackend = %q, want csv", cfg.DataBackend)
	}
	if cfg.NearDueDays != 3 {
		t.Errorf("NearDueDays = %d, want 3", cfg.NearDueDays)
	}
	if cfg.HistoryPath == "" || cfg.CSVPath == "" {
		t.Error("default paths are empty")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("NEAR_DUE_DAYS", "7")
	t.Setenv("SHEETS_MIRROR", "true")

	cfg := Load()
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %q, want sqlite", cfg.DataBackend)
	}
	if cfg.NearDueDays != 7 {
		t.Errorf("NearDueDays = %d, want 7", cfg.NearDueDays)
	}
	if !cfg.MirrorEnabled {
		t.Error("MirrorEnabled = false, want true")
	}
}
