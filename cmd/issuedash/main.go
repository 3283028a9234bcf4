// Command issuedash syncs a community issue log from Google Sheets into a
// local SQLite database and serves reporting reads over it.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devrel-tools/issuedash/internal/config"
	"github.com/devrel-tools/issuedash/internal/logging"
	"github.com/devrel-tools/issuedash/internal/storage/sqlite"
)

var (
	cfg        *config.Config
	log        *logging.Logger
	dbPath     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "issuedash",
	Short: "Issue log sync and reporting",
	Long: `issuedash keeps a local SQLite replica of the team's issue log
spreadsheet and answers reporting queries against it.

The 'sync' command performs a full fetch-and-replace from Google Sheets;
the read commands (status, list, search, stats, values) never touch the
remote source.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}
		log = logging.New(cfg.LogsDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Close()
		}
	},
}

func openStore() (*sqlite.SQLiteStorage, error) {
	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.DatabasePath, err)
	}
	return store, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(valuesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
