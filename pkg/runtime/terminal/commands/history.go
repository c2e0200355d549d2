package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func NewHistoryCmd(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect report execution history",
	}

	cmd.AddCommand(newHistoryListCmd(deps))
	cmd.AddCommand(newHistoryDeleteCmd(deps))

	return cmd
}

func newHistoryListCmd(deps Dependencies) *cobra.Command {
	limit := deps.HistoryLimit

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent executions for the current profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			executions, err := deps.Reports.ListExecutions(ctx, deps.Profile.UserID, limit)
			if err != nil {
				return fmt.Errorf("failed to list executions: %w", err)
			}

			if len(executions) == 0 {
				fmt.Fprintln(deps.Output, "no executions recorded")
				return nil
			}
			for _, e := range executions {
				exported := ""
				if e.Exported {
					exported = " exported=" + e.ExportFormat
				}
				fmt.Fprintf(deps.Output, "%s  %-14s %s to %s  rows=%d%s  %s\n",
					e.ID, e.ReportType, e.DateRangeStart, e.DateRangeEnd,
					e.ResultCount, exported, e.ExecutedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", deps.HistoryLimit, "Maximum executions to list")

	return cmd
}

func newHistoryDeleteCmd(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an execution from history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := deps.Reports.DeleteExecution(ctx, args[0], deps.Profile.UserID); err != nil {
				return fmt.Errorf("failed to delete execution: %w", err)
			}
			fmt.Fprintln(deps.Output, "execution deleted")
			return nil
		},
	}
}

// NewPurgeCmd removes every template and execution owned by the current
// profile, the same wipe the console performs on account removal.
func NewPurgeCmd(deps Dependencies) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all templates and history for the current profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return fmt.Errorf("pass --yes to confirm purging all data for profile %q", deps.Profile.Name)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := deps.Reports.ClearUserData(ctx, deps.Profile.UserID); err != nil {
				return fmt.Errorf("failed to purge user data: %w", err)
			}
			fmt.Fprintln(deps.Output, "user data purged")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the purge")

	return cmd
}
