package domain

import "time"

// ReportType selects the generation and metric rules applied to a run.
type ReportType string

const (
	ReportAppointments  ReportType = "appointments"
	ReportTIV           ReportType = "tiv"
	ReportAccelerations ReportType = "accelerations"
	ReportTeamActivity  ReportType = "team-activity"
	ReportCapacity      ReportType = "capacity"
)

// DateRangeKind names a reporting window relative to "now", or a custom interval.
type DateRangeKind string

const (
	RangeToday   DateRangeKind = "today"
	RangeWeek    DateRangeKind = "week"
	RangeMonth   DateRangeKind = "month"
	RangeQuarter DateRangeKind = "quarter"
	RangeYear    DateRangeKind = "year"
	RangeCustom  DateRangeKind = "custom"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ReportConfiguration is the declarative input of one report run.
// When DateRange is RangeCustom, StartDate/EndDate carry ISO dates;
// for any other kind the named range is authoritative.
type ReportConfiguration struct {
	ReportType    ReportType     `json:"reportType"`
	DateRange     DateRangeKind  `json:"dateRange"`
	StartDate     string         `json:"startDate,omitempty"`
	EndDate       string         `json:"endDate,omitempty"`
	TeamID        string         `json:"teamId,omitempty"`
	UserID        string         `json:"userId,omitempty"`
	Status        string         `json:"status,omitempty"`
	Columns       []string       `json:"columns"`
	GroupBy       string         `json:"groupBy,omitempty"`
	SortBy        string         `json:"sortBy"`
	SortDirection SortDirection  `json:"sortDirection"`
	Filters       map[string]any `json:"filters,omitempty"`
}

// Row is one generated report record. Values are strings or numbers,
// shaped per report type.
type Row map[string]any

// DateRange is a closed interval of calendar instants.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ReportSummary describes one generation cycle. Metrics is an open
// mapping whose keys depend on the report type; values are scalars or
// pre-formatted strings.
type ReportSummary struct {
	TotalRecords int            `json:"totalRecords"`
	DateRange    SummaryRange   `json:"dateRange"`
	Metrics      map[string]any `json:"metrics"`
}

type SummaryRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GeneratedReport is the transient output of one run. It is returned to
// the caller for rendering and never persisted as a unit; only its
// summary survives via ReportExecution. Columns carries the projection
// order so tabular exports stay deterministic.
type GeneratedReport struct {
	Data    []Row         `json:"data"`
	Columns []string      `json:"columns"`
	Summary ReportSummary `json:"summary"`
}
