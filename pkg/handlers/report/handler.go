package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sched-tools/ops-atlas/pkg/adapters"
	"github.com/sched-tools/ops-atlas/pkg/models/api"
	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/services/export"
	reportsvc "github.com/sched-tools/ops-atlas/pkg/services/report"
	"github.com/sched-tools/ops-atlas/pkg/store/reports"
)

// userHeader carries the acting user's id. Authentication itself is a
// collaborator of the console, not part of the engine.
const userHeader = "X-User-Id"

// SnapshotProvider hands the handler the current read-only domain
// snapshot for each request.
type SnapshotProvider func() domain.Snapshot

type Handler struct {
	engine    *reportsvc.Engine
	store     reports.Store
	exporter  *export.Exporter
	snapshot  SnapshotProvider
	exportDir string
}

func NewHandler(engine *reportsvc.Engine, store reports.Store, exporter *export.Exporter, snapshot SnapshotProvider, exportDir string) *Handler {
	return &Handler{
		engine:    engine,
		store:     store,
		exporter:  exporter,
		snapshot:  snapshot,
		exportDir: exportDir,
	}
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := adapters.MapReportConfigurationApiToDomain(req.Configuration)
	generated, exec, err := h.engine.Run(ctx, cfg, h.snapshot(), userID, req.TemplateID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to generate report")
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	writeJSON(w, http.StatusOK, adapters.MapGeneratedReportDomainToApi(generated, exec.ID))
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	templates, err := h.store.ListTemplates(ctx, userID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list templates")
		writeError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}

	response := make([]api.ReportTemplate, 0, len(templates))
	for _, t := range templates {
		response = append(response, adapters.MapTemplateDomainToApi(t))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.requireUser(w, r); !ok {
		return
	}

	tpl, err := h.store.GetTemplate(ctx, chi.URLParam(r, "id"))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load template")
		writeError(w, http.StatusInternalServerError, "failed to load template")
		return
	}
	if tpl == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, adapters.MapTemplateDomainToApi(*tpl))
}

func (h *Handler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := adapters.MapReportConfigurationApiToDomain(req.Configuration)
	tpl, err := h.store.SaveTemplate(ctx, userID, req.Name, req.Description, cfg)
	if errors.Is(err, reports.ErrNameRequired) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to save template")
		writeError(w, http.StatusInternalServerError, "failed to save template")
		return
	}
	writeJSON(w, http.StatusCreated, adapters.MapTemplateDomainToApi(*tpl))
}

func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tpl, err := h.store.UpdateTemplate(ctx, chi.URLParam(r, "id"), userID, adapters.MapTemplateUpdateApiToDomain(req))
	if errors.Is(err, reports.ErrTemplateNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to update template")
		writeError(w, http.StatusInternalServerError, "failed to update template")
		return
	}
	writeJSON(w, http.StatusOK, adapters.MapTemplateDomainToApi(*tpl))
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteTemplate(ctx, chi.URLParam(r, "id"), userID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to delete template")
		writeError(w, http.StatusInternalServerError, "failed to delete template")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListExecutions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	executions, err := h.store.ListExecutions(ctx, userID, limit)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list executions")
		writeError(w, http.StatusInternalServerError, "failed to list executions")
		return
	}

	response := make([]api.ReportExecution, 0, len(executions))
	for _, e := range executions {
		response = append(response, adapters.MapExecutionDomainToApi(e))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) DeleteExecution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteExecution(ctx, chi.URLParam(r, "id"), userID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to delete execution")
		writeError(w, http.StatusInternalServerError, "failed to delete execution")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportReport regenerates the configured report, writes the download
// file, and flips the exported flag on the originating execution when
// one is named.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := adapters.MapReportConfigurationApiToDomain(req.Configuration)
	generated, err := h.engine.Generate(ctx, cfg, h.snapshot())
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to generate report for export")
		writeError(w, http.StatusInternalServerError, "failed to export report")
		return
	}

	name := req.Name
	if name == "" {
		name = string(cfg.ReportType) + "-report"
	}

	path, err := h.exporter.WriteFile(ctx, h.exportDir, name, req.Format, generated.Data, generated.Columns)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write export file")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ExecutionID != "" && path != "" {
		if err := h.store.MarkExecutionExported(ctx, req.ExecutionID, userID, req.Format); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to mark execution exported")
		}
	}

	writeJSON(w, http.StatusOK, api.ExportResponse{Path: path})
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return "", false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: message})
}
