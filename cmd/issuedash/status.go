package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/devrel-tools/issuedash/internal/storage"
	"github.com/devrel-tools/issuedash/internal/types"
)

// StatusOutput is the JSON shape of the status command.
type StatusOutput struct {
	IssueCount int               `json:"issue_count"`
	LastSync   *types.SyncRecord `json:"last_sync,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show issue count and last sync outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		count, err := store.CountIssues(ctx)
		if err != nil {
			return err
		}

		last, err := store.GetLastSync(ctx)
		if err != nil && !errors.Is(err, storage.ErrNoSyncHistory) {
			return err
		}

		if jsonOutput {
			return printJSON(StatusOutput{IssueCount: count, LastSync: last})
		}

		fmt.Printf("Issues: %d\n", count)
		if last == nil {
			fmt.Println("No sync history")
			return nil
		}

		fmt.Printf("Last sync: %s\n", last.SyncTime.Format("2006-01-02 15:04:05"))
		if last.Status == types.SyncSuccess {
			fmt.Printf("Status: %s\n", color.GreenString(string(last.Status)))
		} else {
			fmt.Printf("Status: %s\n", color.RedString(string(last.Status)))
		}
		fmt.Printf("Rows synced: %d\n", last.RowsSynced)
		if last.Message != "" {
			fmt.Printf("Message: %s\n", last.Message)
		}
		return nil
	},
}

func showSyncStatus(ctx context.Context, store storage.Storage) {
	count, err := store.CountIssues(ctx)
	if err == nil {
		log.Infof("Issues count: %d", count)
	}
	last, err := store.GetLastSync(ctx)
	if err != nil {
		return
	}
	log.Infof("Last sync: %s status=%s rows=%d", last.SyncTime.Format("2006-01-02 15:04:05"), last.Status, last.RowsSynced)
}
