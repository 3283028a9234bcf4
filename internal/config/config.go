// Package config loads the process configuration into an explicit struct.
// Core packages never read the environment themselves; the struct is built
// once at startup and passed into constructors.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the sync pipeline and storage layer need.
type Config struct {
	// Local storage
	DataDir      string
	DatabasePath string
	LogsDir      string

	// Google Sheets source
	CredentialsPath string
	SpreadsheetID   string
	SheetName       string

	// Retry policy for the remote fetch
	SyncMaxAttempts int
	SyncBaseDelay   time.Duration
}

// Load reads configuration from, in increasing precedence: built-in
// defaults, an optional config.yaml (./.issuedash or the user config dir),
// and ISSUEDASH_* environment variables. A local .env file is loaded first
// so container and dev setups can use the same variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if cwd, err := os.Getwd(); err == nil {
		v.AddConfigPath(filepath.Join(cwd, ".issuedash"))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "issuedash"))
	}

	v.SetEnvPrefix("ISSUEDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data-dir", "data")
	v.SetDefault("logs-dir", "")
	v.SetDefault("database-path", "")
	v.SetDefault("credentials-path", "credentials.json")
	v.SetDefault("spreadsheet-id", "")
	v.SetDefault("sheet-name", "Merged Activity Log")
	v.SetDefault("sync-max-attempts", 3)
	v.SetDefault("sync-base-delay", "2s")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults and env cover everything.
	}

	cfg := &Config{
		DataDir:         v.GetString("data-dir"),
		DatabasePath:    v.GetString("database-path"),
		LogsDir:         v.GetString("logs-dir"),
		CredentialsPath: v.GetString("credentials-path"),
		SpreadsheetID:   v.GetString("spreadsheet-id"),
		SheetName:       v.GetString("sheet-name"),
		SyncMaxAttempts: v.GetInt("sync-max-attempts"),
		SyncBaseDelay:   v.GetDuration("sync-base-delay"),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDir, "issues.db")
	}

	return cfg, nil
}

// ValidateRemote checks the fields a sync against the remote source needs.
// Read-only commands work without them.
func (c *Config) ValidateRemote() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id not configured (set ISSUEDASH_SPREADSHEET_ID)")
	}
	if c.SheetName == "" {
		return fmt.Errorf("sheet name not configured (set ISSUEDASH_SHEET_NAME)")
	}
	if c.CredentialsPath == "" {
		return fmt.Errorf("credentials path not configured (set ISSUEDASH_CREDENTIALS_PATH)")
	}
	return nil
}
