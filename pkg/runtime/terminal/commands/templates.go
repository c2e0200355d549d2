package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

func NewTemplatesCmd(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage saved report templates",
	}

	cmd.AddCommand(newTemplatesListCmd(deps))
	cmd.AddCommand(newTemplatesSaveCmd(deps))
	cmd.AddCommand(newTemplatesDeleteCmd(deps))

	return cmd
}

func newTemplatesListCmd(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates visible to the current profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			templates, err := deps.Reports.ListTemplates(ctx, deps.Profile.UserID)
			if err != nil {
				return fmt.Errorf("failed to list templates: %w", err)
			}

			if len(templates) == 0 {
				fmt.Fprintln(deps.Output, "no templates saved")
				return nil
			}
			for _, t := range templates {
				visibility := "private"
				if t.IsPublic {
					visibility = "public"
				}
				fmt.Fprintf(deps.Output, "%s  %-24s %-14s %s  %s\n",
					t.ID, t.Name, t.ReportType, visibility, t.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

type templatesSaveCmd struct {
	name        string
	description string
	reportType  string
	dateRange   string
	startDate   string
	endDate     string
	teamID      string
	sortBy      string
	direction   string

	deps Dependencies
}

func newTemplatesSaveCmd(deps Dependencies) *cobra.Command {
	sc := &templatesSaveCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the given configuration as a template",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.name, "name", "", "Template name")
	cmd.Flags().StringVar(&sc.description, "description", "", "Template description")
	cmd.Flags().StringVar(&sc.reportType, "type", "", "Report type")
	cmd.Flags().StringVar(&sc.dateRange, "range", "month", "Date range")
	cmd.Flags().StringVar(&sc.startDate, "start", "", "Custom range start date")
	cmd.Flags().StringVar(&sc.endDate, "end", "", "Custom range end date")
	cmd.Flags().StringVar(&sc.teamID, "team", "", "Restrict to one team")
	cmd.Flags().StringVar(&sc.sortBy, "sort-by", "", "Column to sort by")
	cmd.Flags().StringVar(&sc.direction, "direction", "asc", "Sort direction")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (sc *templatesSaveCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	cfg := domain.ReportConfiguration{
		ReportType:    domain.ReportType(sc.reportType),
		DateRange:     domain.DateRangeKind(sc.dateRange),
		StartDate:     sc.startDate,
		EndDate:       sc.endDate,
		TeamID:        sc.teamID,
		SortBy:        sc.sortBy,
		SortDirection: domain.SortDirection(sc.direction),
	}

	tpl, err := sc.deps.Reports.SaveTemplate(ctx, sc.deps.Profile.UserID, sc.name, sc.description, cfg)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	fmt.Fprintf(sc.deps.Output, "saved template %s (%s)\n", tpl.Name, tpl.ID)
	return nil
}

func newTemplatesDeleteCmd(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an owned template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := deps.Reports.DeleteTemplate(ctx, args[0], deps.Profile.UserID); err != nil {
				return fmt.Errorf("failed to delete template: %w", err)
			}
			fmt.Fprintln(deps.Output, "template deleted")
			return nil
		},
	}
}
