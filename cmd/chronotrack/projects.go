package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectsListCmd(), newProjectsAddCmd(), newProjectsRecentCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			projects, err := a.projects.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}
			if len(projects) == 0 {
				fmt.Println("No projects.")
				return nil
			}
			for _, proj := range projects {
				lastUsed := "never"
				if proj.LastUsed != nil {
					lastUsed = proj.LastUsed.Format("2006-01-02 15:04")
				}
				fmt.Printf("#%-4d %-28s %-8s last used %s\n",
					proj.ID, proj.Name, proj.Color, lastUsed)
			}
			return nil
		},
	}
}

func newProjectsAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			proj, err := a.projects.Create(cmd.Context(), args[0], color)
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}
			fmt.Printf("Created project #%d %s (%s)\n", proj.ID, proj.Name, proj.Color)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "display color as a hex string")
	return cmd
}

func newProjectsRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently used projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			projects, err := a.projects.RecentlyUsed(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list recent projects: %w", err)
			}
			if len(projects) == 0 {
				fmt.Println("No recently used projects.")
				return nil
			}
			for _, proj := range projects {
				fmt.Printf("#%-4d %-28s used %s\n",
					proj.ID, proj.Name, proj.LastUsed.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of projects")
	return cmd
}
