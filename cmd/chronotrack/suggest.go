package main

import (
	"fmt"

	"github.com/rvoss/chronotrack/internal/domain/assign"
	"github.com/spf13/cobra"
)

func newSuggestCmd() *cobra.Command {
	var (
		daysBack    int
		limit       int
		minDuration int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "List suggested project assignments for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			start, end := daysBackRange(daysBack)
			suggestions, err := a.assigner.SuggestionsForReview(cmd.Context(), assign.ReviewOptions{
				Start:       &start,
				End:         &end,
				Limit:       limit,
				MinDuration: minDuration,
			})
			if err != nil {
				return fmt.Errorf("failed to build suggestions: %w", err)
			}

			if len(suggestions) == 0 {
				fmt.Println("No suggestions.")
				return nil
			}

			for _, sug := range suggestions {
				fmt.Printf("#%-6d %-20s -> %-20s [%.0f%%]  %s\n",
					sug.Activity.ID, sug.Activity.AppName,
					sug.ProjectName, sug.Confidence*100,
					formatDuration(sug.Activity.Duration))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&daysBack, "days-back", 7, "how many days of activities to consider")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of suggestions")
	cmd.Flags().IntVar(&minDuration, "min-duration", 60, "skip activities shorter than this (seconds)")
	return cmd
}
