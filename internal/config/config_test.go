package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no config file or .env is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "data")
	}
	if cfg.DatabasePath != filepath.Join("data", "issues.db") {
		t.Errorf("DatabasePath = %q, want data/issues.db", cfg.DatabasePath)
	}
	if cfg.SheetName != "Merged Activity Log" {
		t.Errorf("SheetName = %q, want default sheet name", cfg.SheetName)
	}
	if cfg.SyncMaxAttempts != 3 {
		t.Errorf("SyncMaxAttempts = %d, want 3", cfg.SyncMaxAttempts)
	}
	if cfg.SyncBaseDelay != 2*time.Second {
		t.Errorf("SyncBaseDelay = %v, want 2s", cfg.SyncBaseDelay)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ISSUEDASH_DATA_DIR", "/var/lib/issuedash")
	t.Setenv("ISSUEDASH_SPREADSHEET_ID", "sheet-123")
	t.Setenv("ISSUEDASH_SHEET_NAME", "Activity Log v2")
	t.Setenv("ISSUEDASH_SYNC_MAX_ATTEMPTS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir != "/var/lib/issuedash" {
		t.Errorf("DataDir = %q, want env override", cfg.DataDir)
	}
	if cfg.DatabasePath != filepath.Join("/var/lib/issuedash", "issues.db") {
		t.Errorf("DatabasePath = %q, want it derived from DataDir", cfg.DatabasePath)
	}
	if cfg.SpreadsheetID != "sheet-123" {
		t.Errorf("SpreadsheetID = %q, want sheet-123", cfg.SpreadsheetID)
	}
	if cfg.SheetName != "Activity Log v2" {
		t.Errorf("SheetName = %q, want override", cfg.SheetName)
	}
	if cfg.SyncMaxAttempts != 5 {
		t.Errorf("SyncMaxAttempts = %d, want 5", cfg.SyncMaxAttempts)
	}
}

func TestLoadExplicitDatabasePath(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ISSUEDASH_DATABASE_PATH", "/tmp/other.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabasePath != "/tmp/other.db" {
		t.Errorf("DatabasePath = %q, want explicit path to win over DataDir", cfg.DatabasePath)
	}
}

func TestValidateRemote(t *testing.T) {
	cfg := &Config{CredentialsPath: "credentials.json", SheetName: "Log"}
	if err := cfg.ValidateRemote(); err == nil {
		t.Error("expected error for missing spreadsheet id")
	}

	cfg.SpreadsheetID = "abc"
	if err := cfg.ValidateRemote(); err != nil {
		t.Errorf("ValidateRemote failed: %v", err)
	}

	cfg.SheetName = ""
	if err := cfg.ValidateRemote(); err == nil {
		t.Error("expected error for missing sheet name")
	}
}
