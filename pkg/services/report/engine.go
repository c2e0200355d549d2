package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/store/reports"
)

const summaryDateFormat = "2006-01-02"

// Engine runs the full reporting cycle: resolve the window, generate
// and aggregate rows, order and project them, and record the execution.
type Engine struct {
	generator *Generator
	store     reports.Store
	now       func() time.Time
}

type EngineOption func(*Engine)

func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(generator *Generator, store reports.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		generator: generator,
		store:     store,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate produces a report without touching execution history; the
// preview path of the console uses it directly.
func (e *Engine) Generate(ctx context.Context, cfg domain.ReportConfiguration, snap domain.Snapshot) (*domain.GeneratedReport, error) {
	r := ResolveRange(cfg.DateRange, cfg.StartDate, cfg.EndDate, e.now())

	rows, columns, err := e.generator.Generate(ctx, cfg, snap, r)
	if err != nil {
		return nil, err
	}

	metrics := CalculateMetrics(cfg.ReportType, rows, len(snap.Users))

	// Sorting is skipped when the key does not resolve against the
	// generated shape.
	if cfg.SortBy != "" && len(rows) > 0 {
		if _, ok := rows[0][cfg.SortBy]; ok {
			rows = SortRows(rows, cfg.SortBy, cfg.SortDirection)
		}
	}

	if len(cfg.Columns) > 0 && len(rows) > 0 {
		selected := make([]string, 0, len(cfg.Columns))
		for _, col := range cfg.Columns {
			if _, ok := rows[0][col]; ok {
				selected = append(selected, col)
			}
		}
		rows = SelectColumns(rows, cfg.Columns)
		columns = selected
	}

	return &domain.GeneratedReport{
		Data:    rows,
		Columns: columns,
		Summary: domain.ReportSummary{
			TotalRecords: len(rows),
			DateRange: domain.SummaryRange{
				Start: r.Start.Format(summaryDateFormat),
				End:   r.End.Format(summaryDateFormat),
			},
			Metrics: metrics,
		},
	}, nil
}

// Run generates a report and records the execution in the caller's
// history. templateID is empty for ad-hoc runs.
func (e *Engine) Run(ctx context.Context, cfg domain.ReportConfiguration, snap domain.Snapshot, userID, templateID string) (*domain.GeneratedReport, *domain.ReportExecution, error) {
	generated, err := e.Generate(ctx, cfg, snap)
	if err != nil {
		return nil, nil, err
	}

	filters := cfg.Filters
	if filters == nil {
		filters = map[string]any{}
	}

	exec, err := e.store.SaveExecution(ctx, domain.ReportExecution{
		TemplateID:     templateID,
		UserID:         userID,
		ReportType:     cfg.ReportType,
		DateRangeStart: generated.Summary.DateRange.Start,
		DateRangeEnd:   generated.Summary.DateRange.End,
		Filters:        filters,
		ResultCount:    len(generated.Data),
		ResultSummary:  generated.Summary,
		Exported:       false,
	})
	if err != nil {
		return nil, nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("report_type", string(cfg.ReportType)).
		Str("user_id", userID).
		Int("rows", len(generated.Data)).
		Msg("report generated")

	return generated, exec, nil
}
