package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rvoss/chronotrack/internal/domain/assign"
	"github.com/rvoss/chronotrack/internal/domain/project"
	"github.com/rvoss/chronotrack/internal/domain/timeline"
	"github.com/rvoss/chronotrack/internal/report"
	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	var (
		assignAt string
		reportAt string
		daysBack int
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run periodic maintenance in the foreground",
		Long: `schedule executes maintenance jobs on a daily schedule: auto-assignment
of unassigned activities plus overlap repair, and a daily summary logged
for the previous day. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			assignSpec, err := cronSpecAt(assignAt)
			if err != nil {
				return err
			}
			reportSpec, err := cronSpecAt(reportAt)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			scheduler := cron.New()
			if _, err := scheduler.AddFunc(assignSpec, func() {
				a.runScheduledAssign(ctx, daysBack)
			}); err != nil {
				return fmt.Errorf("failed to schedule assign job: %w", err)
			}
			if _, err := scheduler.AddFunc(reportSpec, func() {
				a.runScheduledReport(ctx)
			}); err != nil {
				return fmt.Errorf("failed to schedule report job: %w", err)
			}

			a.logger.Info("scheduler started", "assign_at", assignAt, "report_at", reportAt)
			scheduler.Start()
			<-ctx.Done()
			<-scheduler.Stop().Done()
			a.logger.Info("scheduler stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&assignAt, "assign-at", "03:30", "daily auto-assign and repair time (HH:MM)")
	cmd.Flags().StringVar(&reportAt, "report-at", "06:00", "daily report time (HH:MM)")
	cmd.Flags().IntVar(&daysBack, "days-back", 7, "how many days of activities to auto-assign")
	return cmd
}

func (a *app) runScheduledAssign(ctx context.Context, daysBack int) {
	start, end := daysBackRange(daysBack)
	stats, err := a.assigner.AutoAssignUnassigned(ctx, assign.AutoAssignOptions{
		Start:         &start,
		End:           &end,
		MinConfidence: a.cfg.Assign.MinConfidence,
	})
	if err != nil {
		a.logger.Error("scheduled auto-assign failed", "error", err)
		return
	}
	a.logger.Info("scheduled auto-assign done",
		"assigned", stats.Assigned, "skipped", stats.SkippedLowConfidence)

	if _, err := a.repairer.Cleanup(ctx, false); err != nil {
		a.logger.Error("scheduled overlap repair failed", "error", err)
	}
}

// runScheduledReport logs yesterday's per-project totals.
func (a *app) runScheduledReport(ctx context.Context) {
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	activities, err := a.activities.ListDay(ctx, day)
	if err != nil {
		a.logger.Error("scheduled report failed", "error", err)
		return
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
		a.logger.Error("scheduled report failed", "error", err)
		return
	}
	byID := make(map[int64]project.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	daily := report.BuildDaily(day, blocks, byID)
	a.logger.Info("daily summary",
		"date", day.Format("2006-01-02"),
		"active_seconds", daily.TrackedSeconds,
		"idle_seconds", daily.IdleSeconds,
		"projects", len(daily.Totals))
	for _, total := range daily.Totals {
		name := total.Name
		if name == "" {
			name = "(unassigned)"
		}
		a.logger.Info("daily project total",
			"date", day.Format("2006-01-02"),
			"project", name, "seconds", total.Seconds, "blocks", total.Blocks)
	}
}

// cronSpecAt converts HH:MM into a daily cron expression.
func cronSpecAt(at string) (string, error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q (want HH:MM)", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", at)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
