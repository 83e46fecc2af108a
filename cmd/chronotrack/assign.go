package main

import (
	"fmt"

	"github.com/rvoss/chronotrack/internal/domain/assign"
	"github.com/spf13/cobra"
)

func newAssignCmd() *cobra.Command {
	var (
		daysBack   int
		confidence float64
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Auto-assign unassigned activities to projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			minConfidence := confidence
			if !cmd.Flags().Changed("confidence") {
				minConfidence = a.cfg.Assign.MinConfidence
			}

			start, end := daysBackRange(daysBack)
			stats, err := a.assigner.AutoAssignUnassigned(cmd.Context(), assign.AutoAssignOptions{
				Start:         &start,
				End:           &end,
				MinConfidence: minConfidence,
				DryRun:        dryRun,
			})
			if err != nil {
				return fmt.Errorf("auto-assign failed: %w", err)
			}

			verb := "Assigned"
			if dryRun {
				verb = "Would assign"
			}
			for _, as := range stats.Assignments {
				fmt.Printf("%s %s (%s) -> %s  [%.0f%%]\n",
					verb, as.AppName, as.WindowTitle, as.ProjectName, as.Confidence*100)
			}
			fmt.Printf("\n%d unassigned, %d assigned, %d below confidence %.2f\n",
				stats.TotalUnassigned, stats.Assigned, stats.SkippedLowConfidence, minConfidence)
			return nil
		},
	}

	cmd.Flags().IntVar(&daysBack, "days-back", 7, "how many days of activities to consider")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.7, "minimum confidence to apply an assignment")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report assignments without writing them")
	return cmd
}
