package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/runtime/terminal/export"
	"github.com/sched-tools/ops-atlas/pkg/services/config"
	exportsvc "github.com/sched-tools/ops-atlas/pkg/services/export"
	"github.com/sched-tools/ops-atlas/pkg/services/report"
	"github.com/sched-tools/ops-atlas/pkg/store/reports"
)

// Dependencies are the constructed services every command runs against.
type Dependencies struct {
	Engine       *report.Engine
	Reports      reports.Store
	Exporter     *exportsvc.Exporter
	Profile      config.Profile
	Snapshot     domain.Snapshot
	ExportDir    string
	HistoryLimit int
	Output       io.Writer
}

type RunCmd struct {
	reportType   string
	dateRange    string
	startDate    string
	endDate      string
	teamID       string
	sortBy       string
	direction    string
	columns      []string
	exportFormat string
	templateID   string

	deps     Dependencies
	reporter *export.Reporter
}

func NewRunCmd(deps Dependencies, reporter *export.Reporter) *cobra.Command {
	rc := &RunCmd{deps: deps, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a report and record it in history",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.reportType, "type", "", "Report type (appointments, tiv, accelerations, team-activity, capacity)")
	cmd.Flags().StringVar(&rc.dateRange, "range", "month", "Date range (today, week, month, quarter, year, custom)")
	cmd.Flags().StringVar(&rc.startDate, "start", "", "Custom range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.endDate, "end", "", "Custom range end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.teamID, "team", "", "Restrict to one team")
	cmd.Flags().StringVar(&rc.sortBy, "sort-by", "", "Column to sort by")
	cmd.Flags().StringVar(&rc.direction, "direction", "asc", "Sort direction (asc, desc)")
	cmd.Flags().StringSliceVar(&rc.columns, "columns", nil, "Columns to include (default all)")
	cmd.Flags().StringVar(&rc.exportFormat, "export", "", "Export the result set (csv, json)")
	cmd.Flags().StringVar(&rc.templateID, "template", "", "Template id to attribute the run to")

	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	cfg := domain.ReportConfiguration{
		ReportType:    domain.ReportType(rc.reportType),
		DateRange:     domain.DateRangeKind(rc.dateRange),
		StartDate:     rc.startDate,
		EndDate:       rc.endDate,
		TeamID:        rc.teamID,
		Columns:       rc.columns,
		SortBy:        rc.sortBy,
		SortDirection: domain.SortDirection(rc.direction),
	}

	generated, exec, err := rc.deps.Engine.Run(ctx, cfg, rc.deps.Snapshot, rc.deps.Profile.UserID, rc.templateID)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	title := fmt.Sprintf("%s report", rc.reportType)
	if err := rc.reporter.Handle(generated, title); err != nil {
		return err
	}

	if rc.exportFormat != "" {
		name := rc.reportType + "-report"
		path, err := rc.deps.Exporter.WriteFile(ctx, rc.deps.ExportDir, name, rc.exportFormat, generated.Data, generated.Columns)
		if err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		if path != "" {
			if err := rc.deps.Reports.MarkExecutionExported(ctx, exec.ID, rc.deps.Profile.UserID, rc.exportFormat); err != nil {
				return err
			}
			fmt.Fprintf(rc.deps.Output, "exported to %s\n", path)
		}
	}

	return nil
}
