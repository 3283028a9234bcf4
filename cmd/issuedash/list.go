package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/devrel-tools/issuedash/internal/normalize"
	"github.com/devrel-tools/issuedash/internal/types"
)

var listFilter types.IssueFilter

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues, optionally filtered",
	Long: `List issues most-recent-first. Filter flags are AND-combined;
date bounds compare against the raw date text, which the sync keeps in the
worksheet's own format.

Examples:
  issuedash list
  issuedash list --progress Done --owner alice
  issuedash list --from 2026-01-01 --to 2026-01-31 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		issues, err := store.FilterIssues(ctx, listFilter)
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

func init() {
	listCmd.Flags().StringVar(&listFilter.Category, "category", "", "Filter by category")
	listCmd.Flags().StringVar(&listFilter.Progress, "progress", "", "Filter by raw progress value")
	listCmd.Flags().StringVar(&listFilter.Owner, "owner", "", "Filter by owner")
	listCmd.Flags().StringVar(&listFilter.DateFrom, "from", "", "Filter by date lower bound (inclusive)")
	listCmd.Flags().StringVar(&listFilter.DateTo, "to", "", "Filter by date upper bound (inclusive)")
	listCmd.Flags().StringVar(&listFilter.ProblemCategory, "problem-category", "", "Filter by problem category")
}

func printIssues(issues []*types.Issue) {
	if len(issues) == 0 {
		fmt.Println("No issues found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTATUS\tPROBLEM TYPE\tOWNER\tISSUE DETAILS")
	for _, issue := range issues {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			issue.ID, issue.Date, normalize.Progress(issue.Progress),
			issue.ProblemCategory, issue.Owner, issue.Category)
	}
	_ = w.Flush()
	fmt.Printf("\n%d issue(s)\n", len(issues))
}
