package domain

import "time"

// ReportTemplate is a saved configuration. Readable by its owner or by
// anyone when IsPublic; mutable only by the owner.
type ReportTemplate struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	ReportType    ReportType          `json:"reportType"`
	Configuration ReportConfiguration `json:"configuration"`
	IsPublic      bool                `json:"isPublic"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// TemplateUpdate carries the mutable template fields. Nil pointers
// leave the stored value untouched.
type TemplateUpdate struct {
	Name          *string              `json:"name,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Configuration *ReportConfiguration `json:"configuration,omitempty"`
	IsPublic      *bool                `json:"isPublic,omitempty"`
}

// ReportExecution records one completed run. Owned exclusively by
// UserID and immutable once written, except for the Exported and
// ExportFormat fields which flip when the result set is downloaded.
type ReportExecution struct {
	ID             string         `json:"id"`
	TemplateID     string         `json:"templateId,omitempty"`
	UserID         string         `json:"userId"`
	ReportType     ReportType     `json:"reportType"`
	DateRangeStart string         `json:"dateRangeStart"`
	DateRangeEnd   string         `json:"dateRangeEnd"`
	Filters        map[string]any `json:"filters"`
	ResultCount    int            `json:"resultCount"`
	ResultSummary  ReportSummary  `json:"resultSummary"`
	ExecutedAt     time.Time      `json:"executedAt"`
	Exported       bool           `json:"exported"`
	ExportFormat   string         `json:"exportFormat,omitempty"`
}
