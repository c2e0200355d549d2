package adapters

import (
	"github.com/sched-tools/ops-atlas/pkg/models/api"
	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

func MapReportConfigurationApiToDomain(cfg api.ReportConfiguration) domain.ReportConfiguration {
	return domain.ReportConfiguration{
		ReportType:    domain.ReportType(cfg.ReportType),
		DateRange:     domain.DateRangeKind(cfg.DateRange),
		StartDate:     cfg.StartDate,
		EndDate:       cfg.EndDate,
		TeamID:        cfg.TeamID,
		UserID:        cfg.UserID,
		Status:        cfg.Status,
		Columns:       cfg.Columns,
		GroupBy:       cfg.GroupBy,
		SortBy:        cfg.SortBy,
		SortDirection: domain.SortDirection(cfg.SortDirection),
		Filters:       cfg.Filters,
	}
}

func MapReportConfigurationDomainToApi(cfg domain.ReportConfiguration) api.ReportConfiguration {
	return api.ReportConfiguration{
		ReportType:    string(cfg.ReportType),
		DateRange:     string(cfg.DateRange),
		StartDate:     cfg.StartDate,
		EndDate:       cfg.EndDate,
		TeamID:        cfg.TeamID,
		UserID:        cfg.UserID,
		Status:        cfg.Status,
		Columns:       cfg.Columns,
		GroupBy:       cfg.GroupBy,
		SortBy:        cfg.SortBy,
		SortDirection: string(cfg.SortDirection),
		Filters:       cfg.Filters,
	}
}

func MapSummaryDomainToApi(s domain.ReportSummary) api.ReportSummary {
	return api.ReportSummary{
		TotalRecords: s.TotalRecords,
		DateRange:    api.SummaryRange{Start: s.DateRange.Start, End: s.DateRange.End},
		Metrics:      s.Metrics,
	}
}

func MapGeneratedReportDomainToApi(r *domain.GeneratedReport, executionID string) api.GeneratedReport {
	data := make([]map[string]any, 0, len(r.Data))
	for _, row := range r.Data {
		data = append(data, row)
	}
	return api.GeneratedReport{
		Data:        data,
		Columns:     r.Columns,
		Summary:     MapSummaryDomainToApi(r.Summary),
		ExecutionID: executionID,
	}
}

func MapTemplateDomainToApi(t domain.ReportTemplate) api.ReportTemplate {
	return api.ReportTemplate{
		ID:            t.ID,
		UserID:        t.UserID,
		Name:          t.Name,
		Description:   t.Description,
		ReportType:    string(t.ReportType),
		Configuration: MapReportConfigurationDomainToApi(t.Configuration),
		IsPublic:      t.IsPublic,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func MapTemplateUpdateApiToDomain(req api.UpdateTemplateRequest) domain.TemplateUpdate {
	upd := domain.TemplateUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if req.Configuration != nil {
		cfg := MapReportConfigurationApiToDomain(*req.Configuration)
		upd.Configuration = &cfg
	}
	return upd
}

func MapExecutionDomainToApi(e domain.ReportExecution) api.ReportExecution {
	return api.ReportExecution{
		ID:             e.ID,
		TemplateID:     e.TemplateID,
		UserID:         e.UserID,
		ReportType:     string(e.ReportType),
		DateRangeStart: e.DateRangeStart,
		DateRangeEnd:   e.DateRangeEnd,
		Filters:        e.Filters,
		ResultCount:    e.ResultCount,
		ResultSummary:  MapSummaryDomainToApi(e.ResultSummary),
		ExecutedAt:     e.ExecutedAt,
		Exported:       e.Exported,
		ExportFormat:   e.ExportFormat,
	}
}
