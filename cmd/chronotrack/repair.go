package main

import (
	"fmt"

	"github.com/rvoss/chronotrack/internal/domain/repair"
	"github.com/spf13/cobra"
)

func newRepairCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Find and repair overlapping stored activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			actions, err := a.repairer.Cleanup(cmd.Context(), !apply)
			if err != nil {
				return fmt.Errorf("overlap cleanup failed: %w", err)
			}

			if len(actions) == 0 {
				fmt.Println("No overlaps found.")
				return nil
			}

			for _, action := range actions {
				switch action.Op {
				case repair.OpDelete:
					fmt.Printf("delete #%d: %s\n", action.ActivityID, action.Reason)
				case repair.OpSetDuration:
					fmt.Printf("set #%d duration to %s: %s\n",
						action.ActivityID, formatDuration(action.NewDuration), action.Reason)
				}
			}
			if apply {
				fmt.Printf("\nApplied %d actions.\n", len(actions))
			} else {
				fmt.Printf("\nPlanned %d actions. Re-run with --apply to execute.\n", len(actions))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "apply repairs instead of planning them")
	return cmd
}
