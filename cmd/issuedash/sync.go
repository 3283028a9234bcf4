package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/devrel-tools/issuedash/internal/retry"
	"github.com/devrel-tools/issuedash/internal/sheets"
	"github.com/devrel-tools/issuedash/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the worksheet and replace the local dataset",
	Long: `Fetch every row of the configured worksheet, map its columns to the
canonical schema, and atomically replace the local issue table.

The remote fetch is retried with exponential backoff; a failed sync leaves
the previous dataset untouched and records a failed entry in the sync
ledger. Exits 0 on success, 1 on failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateRemote(); err != nil {
			return err
		}

		ctx := context.Background()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		client, err := sheets.NewClient(ctx, cfg.CredentialsPath, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			return err
		}

		policy := retry.Policy{
			MaxAttempts: cfg.SyncMaxAttempts,
			BaseDelay:   cfg.SyncBaseDelay,
		}
		s := syncer.New(store, client, log, policy)

		ok := s.Run(ctx)
		showSyncStatus(ctx, store)
		if !ok {
			color.Red("Sync failed")
			os.Exit(1)
		}
		color.Green("Sync succeeded")
		return nil
	},
}
