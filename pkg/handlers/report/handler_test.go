package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sched-tools/ops-atlas/pkg/models/api"
	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/services/export"
	reportsvc "github.com/sched-tools/ops-atlas/pkg/services/report"
	"github.com/sched-tools/ops-atlas/pkg/store/kv"
	"github.com/sched-tools/ops-atlas/pkg/store/reports"
	"github.com/sched-tools/ops-atlas/pkg/store/requests"
)

type fixture struct {
	handler *Handler
	store   reports.Store
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	now := func() time.Time { return time.Date(2025, 3, 12, 15, 4, 0, 0, time.UTC) }
	seq := 0

	kvStore := kv.NewMemoryStore()
	reportStore, err := reports.NewStore(kvStore,
		reports.WithClock(now),
		reports.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	require.NoError(t, err)
	requestStore, err := requests.NewStore(kvStore)
	require.NoError(t, err)

	engine := reportsvc.NewEngine(reportsvc.NewGenerator(requestStore), reportStore,
		reportsvc.WithEngineClock(now))
	exporter := export.NewExporter(export.WithClock(now))

	snap := domain.Snapshot{
		Teams: []domain.Team{{ID: "t1", Name: "Alpha"}},
		Users: []domain.User{{ID: "u1", Email: "alice@example.com", TeamID: "t1"}},
		Events: []domain.CalendarEvent{
			{
				ID:           "e1",
				OrderID:      "o1",
				CustomerName: "Acme",
				StartTime:    "2025-03-10T09:00:00",
				EndTime:      "2025-03-10T10:00:00",
				ProductType:  "fiber",
				CreatedBy:    "u1",
			},
		},
	}

	handler := NewHandler(engine, reportStore, exporter,
		func() domain.Snapshot { return snap }, t.TempDir())

	return &fixture{handler: handler, store: reportStore}
}

func newRequest(method, target, userID string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandler_GenerateReport(t *testing.T) {
	t.Run("successful generation records an execution", func(t *testing.T) {
		f := setupFixture(t)
		body := api.GenerateReportRequest{
			Configuration: api.ReportConfiguration{
				ReportType: "appointments",
				DateRange:  "month",
			},
		}

		rec := httptest.NewRecorder()
		f.handler.GenerateReport(rec, newRequest("POST", "/api/v1/reports/generate", "u1", body))

		assert.Equal(t, http.StatusOK, rec.Code)

		var response api.GeneratedReport
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, "Acme", response.Data[0]["customerName"])
		assert.Equal(t, 1, response.Summary.TotalRecords)
		assert.NotEmpty(t, response.ExecutionID)

		executions, err := f.store.ListExecutions(context.Background(), "u1", 0)
		require.NoError(t, err)
		assert.Len(t, executions, 1)
	})

	t.Run("missing user header", func(t *testing.T) {
		f := setupFixture(t)

		rec := httptest.NewRecorder()
		f.handler.GenerateReport(rec, newRequest("POST", "/api/v1/reports/generate", "", api.GenerateReportRequest{}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := setupFixture(t)

		req := httptest.NewRequest("POST", "/api/v1/reports/generate", bytes.NewBufferString("{not json"))
		req.Header.Set("X-User-Id", "u1")
		rec := httptest.NewRecorder()
		f.handler.GenerateReport(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Templates(t *testing.T) {
	t.Run("save then fetch", func(t *testing.T) {
		f := setupFixture(t)
		body := api.SaveTemplateRequest{
			Name: "weekly",
			Configuration: api.ReportConfiguration{
				ReportType: "appointments",
				DateRange:  "week",
			},
		}

		rec := httptest.NewRecorder()
		f.handler.SaveTemplate(rec, newRequest("POST", "/api/v1/reports/templates", "u1", body))
		require.Equal(t, http.StatusCreated, rec.Code)

		var saved api.ReportTemplate
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&saved))
		assert.Equal(t, "weekly", saved.Name)
		assert.False(t, saved.IsPublic)

		getReq := withURLParam(newRequest("GET", "/api/v1/reports/templates/"+saved.ID, "u1", nil), "id", saved.ID)
		getRec := httptest.NewRecorder()
		f.handler.GetTemplate(getRec, getReq)

		assert.Equal(t, http.StatusOK, getRec.Code)
	})

	t.Run("nameless save is rejected", func(t *testing.T) {
		f := setupFixture(t)
		body := api.SaveTemplateRequest{
			Configuration: api.ReportConfiguration{ReportType: "appointments"},
		}

		rec := httptest.NewRecorder()
		f.handler.SaveTemplate(rec, newRequest("POST", "/api/v1/reports/templates", "u1", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown template is 404", func(t *testing.T) {
		f := setupFixture(t)

		req := withURLParam(newRequest("GET", "/api/v1/reports/templates/missing", "u1", nil), "id", "missing")
		rec := httptest.NewRecorder()
		f.handler.GetTemplate(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("updating someone else's template is 404", func(t *testing.T) {
		f := setupFixture(t)

		tpl, err := f.store.SaveTemplate(context.Background(), "u1", "mine", "", domain.ReportConfiguration{})
		require.NoError(t, err)

		name := "hijacked"
		body := api.UpdateTemplateRequest{Name: &name}
		req := withURLParam(newRequest("PATCH", "/api/v1/reports/templates/"+tpl.ID, "u2", body), "id", tpl.ID)
		rec := httptest.NewRecorder()
		f.handler.UpdateTemplate(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete returns no content", func(t *testing.T) {
		f := setupFixture(t)

		tpl, err := f.store.SaveTemplate(context.Background(), "u1", "mine", "", domain.ReportConfiguration{})
		require.NoError(t, err)

		req := withURLParam(newRequest("DELETE", "/api/v1/reports/templates/"+tpl.ID, "u1", nil), "id", tpl.ID)
		rec := httptest.NewRecorder()
		f.handler.DeleteTemplate(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestHandler_ListExecutions(t *testing.T) {
	f := setupFixture(t)

	_, err := f.store.SaveExecution(context.Background(), domain.ReportExecution{UserID: "u1", ReportType: "appointments"})
	require.NoError(t, err)
	_, err = f.store.SaveExecution(context.Background(), domain.ReportExecution{UserID: "u2", ReportType: "tiv"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	f.handler.ListExecutions(rec, newRequest("GET", "/api/v1/reports/executions?limit=10", "u1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []api.ReportExecution
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "u1", response[0].UserID)
}

func TestHandler_ExportReport(t *testing.T) {
	t.Run("writes the file and marks the execution", func(t *testing.T) {
		f := setupFixture(t)

		exec, err := f.store.SaveExecution(context.Background(), domain.ReportExecution{UserID: "u1", ReportType: "appointments"})
		require.NoError(t, err)

		body := api.ExportRequest{
			Configuration: api.ReportConfiguration{
				ReportType: "appointments",
				DateRange:  "month",
			},
			ExecutionID: exec.ID,
			Format:      "csv",
		}

		rec := httptest.NewRecorder()
		f.handler.ExportReport(rec, newRequest("POST", "/api/v1/reports/export", "u1", body))

		require.Equal(t, http.StatusOK, rec.Code)

		var response api.ExportResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Contains(t, response.Path, "appointments-report-2025-03-12-1504.csv")

		executions, err := f.store.ListExecutions(context.Background(), "u1", 0)
		require.NoError(t, err)
		require.Len(t, executions, 1)
		assert.True(t, executions[0].Exported)
		assert.Equal(t, "csv", executions[0].ExportFormat)
	})

	t.Run("unsupported format is rejected", func(t *testing.T) {
		f := setupFixture(t)

		body := api.ExportRequest{
			Configuration: api.ReportConfiguration{ReportType: "appointments", DateRange: "month"},
			Format:        "xlsx",
		}

		rec := httptest.NewRecorder()
		f.handler.ExportReport(rec, newRequest("POST", "/api/v1/reports/export", "u1", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
