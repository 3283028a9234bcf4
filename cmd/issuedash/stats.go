package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/devrel-tools/issuedash/internal/normalize"
)

// StatsOutput is the JSON shape of the stats command. NormalizedProgress
// rolls the raw progress counts up into the canonical value set.
type StatsOutput struct {
	Total              int            `json:"total"`
	ByProgress         map[string]int `json:"by_progress"`
	NormalizedProgress map[string]int `json:"normalized_progress"`
	ByCategory         map[string]int `json:"by_category"`
	ByProblemCategory  map[string]int `json:"by_problem_category"`
	ByOwner            map[string]int `json:"by_owner"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		stats, err := store.GetStatistics(ctx)
		if err != nil {
			return err
		}

		normalized := make(map[string]int)
		for raw, count := range stats.ByProgress {
			normalized[normalize.Progress(raw)] += count
		}

		if jsonOutput {
			return printJSON(StatsOutput{
				Total:              stats.Total,
				ByProgress:         stats.ByProgress,
				NormalizedProgress: normalized,
				ByCategory:         stats.ByCategory,
				ByProblemCategory:  stats.ByProblemCategory,
				ByOwner:            stats.ByOwner,
			})
		}

		fmt.Printf("Total issues: %d\n\n", stats.Total)

		fmt.Println("By status:")
		for _, value := range normalize.ProgressValues {
			if count, ok := normalized[value]; ok {
				fmt.Printf("  %-12s %d\n", value, count)
			}
		}
		if count, ok := normalized[normalize.ProgressUnknown]; ok {
			fmt.Printf("  %-12s %d\n", normalize.ProgressUnknown, count)
		}

		printGroup("By problem type:", stats.ByProblemCategory)
		printGroup("By owner:", stats.ByOwner)
		return nil
	},
}

func printGroup(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	// Highest count first, name as tie-break.
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Printf("\n%s\n", title)
	for _, key := range keys {
		name := key
		if name == "" {
			name = "(none)"
		}
		fmt.Printf("  %-24s %d\n", name, counts[key])
	}
}
