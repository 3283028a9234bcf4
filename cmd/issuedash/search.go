package main

import (
	"context"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search issues by keyword",
	Long: `Case-insensitive substring search across the issue, category,
channel, owner, reply and problem-category fields.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		issues, err := store.SearchIssues(ctx, args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(issues)
		}

		printIssues(issues)
		return nil
	},
}
