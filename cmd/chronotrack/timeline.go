package main

import (
	"fmt"

	"github.com/rvoss/chronotrack/internal/domain/timeline"
	"github.com/spf13/cobra"
)

func newTimelineCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the merged timeline for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			activities, err := a.activities.ListDay(ctx, day)
			if err != nil {
				return fmt.Errorf("failed to load activities: %w", err)
			}

			activities = timeline.Filter(activities, a.cfg.Ignore.ShouldIgnore)
			opts := timeline.OptionsFromSettings(ctx, a.settings, timeline.Options{
				MinActivityDuration: a.cfg.Timeline.MinActivityDuration,
				MergeGap:            a.cfg.Timeline.MergeGap,
				ProjectMergeGap:     a.cfg.Timeline.ProjectMergeGap,
			})
			blocks := timeline.Merge(activities, opts)

			if len(blocks) == 0 {
				fmt.Printf("No activity on %s\n", day.Format("2006-01-02"))
				return nil
			}

			fmt.Printf("Timeline for %s\n\n", day.Format("2006-01-02"))
			for _, block := range blocks {
				label := block.AppName
				if block.IsIdle {
					label = "(idle)"
				}
				title := block.WindowTitle
				if len(title) > 60 {
					title = title[:57] + "..."
				}
				fmt.Printf("%s - %s  %-8s  %-24s %s\n",
					block.Timestamp.Format("15:04:05"),
					block.EndTime.Format("15:04:05"),
					formatDuration(block.Duration),
					label, title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "day to show (YYYY-MM-DD, default today)")
	return cmd
}
