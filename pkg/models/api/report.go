package api

import "time"

type ReportConfiguration struct {
	ReportType    string         `json:"reportType"`
	DateRange     string         `json:"dateRange"`
	StartDate     string         `json:"startDate,omitempty"`
	EndDate       string         `json:"endDate,omitempty"`
	TeamID        string         `json:"teamId,omitempty"`
	UserID        string         `json:"userId,omitempty"`
	Status        string         `json:"status,omitempty"`
	Columns       []string       `json:"columns"`
	GroupBy       string         `json:"groupBy,omitempty"`
	SortBy        string         `json:"sortBy"`
	SortDirection string         `json:"sortDirection"`
	Filters       map[string]any `json:"filters,omitempty"`
}

type GenerateReportRequest struct {
	Configuration ReportConfiguration `json:"configuration"`
	TemplateID    string              `json:"templateId,omitempty"`
}

type ReportSummary struct {
	TotalRecords int            `json:"totalRecords"`
	DateRange    SummaryRange   `json:"dateRange"`
	Metrics      map[string]any `json:"metrics"`
}

type SummaryRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GeneratedReport struct {
	Data        []map[string]any `json:"data"`
	Columns     []string         `json:"columns"`
	Summary     ReportSummary    `json:"summary"`
	ExecutionID string           `json:"executionId,omitempty"`
}

type ReportTemplate struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	ReportType    string              `json:"reportType"`
	Configuration ReportConfiguration `json:"configuration"`
	IsPublic      bool                `json:"isPublic"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type SaveTemplateRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Configuration ReportConfiguration `json:"configuration"`
}

type UpdateTemplateRequest struct {
	Name          *string              `json:"name,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Configuration *ReportConfiguration `json:"configuration,omitempty"`
	IsPublic      *bool                `json:"isPublic,omitempty"`
}

type ReportExecution struct {
	ID             string         `json:"id"`
	TemplateID     string         `json:"templateId,omitempty"`
	UserID         string         `json:"userId"`
	ReportType     string         `json:"reportType"`
	DateRangeStart string         `json:"dateRangeStart"`
	DateRangeEnd   string         `json:"dateRangeEnd"`
	Filters        map[string]any `json:"filters"`
	ResultCount    int            `json:"resultCount"`
	ResultSummary  ReportSummary  `json:"resultSummary"`
	ExecutedAt     time.Time      `json:"executedAt"`
	Exported       bool           `json:"exported"`
	ExportFormat   string         `json:"exportFormat,omitempty"`
}

type ExportRequest struct {
	Configuration ReportConfiguration `json:"configuration"`
	ExecutionID   string              `json:"executionId,omitempty"`
	Format        string              `json:"format"`
	Name          string              `json:"name,omitempty"`
}

type ExportResponse struct {
	Path string `json:"path"`
}

type Error struct {
	Error string `json:"error"`
}
