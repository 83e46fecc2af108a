package main

import (
	"fmt"

	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/domain/timeline"
	"github.com/rvoss/chronotrack/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-project totals for a day",
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

			projects, err := a.projects.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to load projects: %w", err)
			}
			byID := make(map[int64]project.Project, len(projects))
			for _, p := range projects {
				byID[p.ID] = p
			}

			daily := report.BuildDaily(day, blocks, byID)

			fmt.Printf("Report for %s\n\n", day.Format("2006-01-02"))
			if len(daily.Totals) == 0 && daily.IdleSeconds == 0 {
				fmt.Println("No activity recorded.")
				return nil
			}

			for _, total := range daily.Totals {
				name := total.Name
				if name == "" {
					name = "(unassigned)"
				}
				fmt.Printf("%-28s %10s  (%d blocks)\n",
					name, formatDuration(total.Seconds), total.Blocks)
			}
			fmt.Printf("\nActive: %s  Idle: %s\n",
				formatDuration(daily.TrackedSeconds), formatDuration(daily.IdleSeconds))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "day to report (YYYY-MM-DD, default today)")
	return cmd
}
