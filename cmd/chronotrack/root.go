package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chronotrack",
		Short: "Activity timeline engine for tracked desktop activity",
		Long: `chronotrack maintains an overlap-free store of tracked desktop
activity, merges it into readable timeline blocks, and assigns
activities to projects automatically based on usage history.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newTimelineCmd(),
		newReportCmd(),
		newAssignCmd(),
		newSuggestCmd(),
		newRepairCmd(),
		newProjectsCmd(),
		newScheduleCmd(),
	)

	return cmd
}

// parseDate accepts YYYY-MM-DD, defaulting to today when empty.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return day, nil
}

// daysBackRange returns [now-days, now] for history-scoped commands.
func daysBackRange(days int) (time.Time, time.Time) {
	end := time.Now()
	return end.AddDate(0, 0, -days), end
}

func formatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}
