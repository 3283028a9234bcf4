package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var valuesCmd = &cobra.Command{
	Use:   "values <column>",
	Short: "List distinct non-empty values of a column",
	Long: `List the distinct non-empty values of a column, sorted. Useful for
building filter menus. Supported columns: date, channel, original_source,
category, owner, progress, result, problem_category.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		values, err := store.DistinctValues(ctx, args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(values)
		}

		for _, value := range values {
			fmt.Println(value)
		}
		return nil
	},
}
