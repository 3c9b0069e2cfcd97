package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	server "github.com/guardline/shiftwatch/pkg/controller/http"
	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/model/shift"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/repository/memory"
	"github.com/guardline/shiftwatch/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newTestServer(t *testing.T) (*server.Server, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithShiftSource(repo),
	)
	return server.New(uc), repo
}

func postJSON(t *testing.T, srv *server.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	gt.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func createAlertInput(shiftID string) usecase.CreateAlertInput {
	return usecase.CreateAlertInput{
		ShiftID:         types.ShiftID(shiftID),
		AlertType:       types.AlertTypeUnassigned24h,
		Priority:        types.AlertPriorityMedium,
		HoursUntilShift: 10,
		ShiftStartAt:    time.Now().Add(10 * time.Hour),
	}
}

func TestCreateAlertEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := postJSON(t, srv, "/api/alerts", createAlertInput("shift-1"))
	gt.Value(t, w.Code).Equal(http.StatusCreated)

	var created alert.Alert
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	gt.Value(t, created.ShiftID).Equal(types.ShiftID("shift-1"))
	gt.Value(t, created.Status).Equal(types.AlertStatusActive)

	// Duplicate creation for the same shift conflicts.
	w = postJSON(t, srv, "/api/alerts", createAlertInput("shift-1"))
	gt.Value(t, w.Code).Equal(http.StatusConflict)
}

func TestCreateAlertEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	w := postJSON(t, srv, "/api/alerts", createAlertInput(""))
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)

	req := httptest.NewRequest(http.MethodPost, "/api/alerts", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestGetAlertEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := postJSON(t, srv, "/api/alerts", createAlertInput("shift-1"))
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	var created alert.Alert
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/alerts/"+created.ID.String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var got alert.Alert
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	gt.Value(t, got.ID).Equal(created.ID)
}

func TestGetAlertEndpointNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts/"+types.NewAlertID().String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestAlertLifecycleEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	w := postJSON(t, srv, "/api/alerts", createAlertInput("shift-1"))
	var created alert.Alert
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = postJSON(t, srv, "/api/alerts/"+created.ID.String()+"/acknowledge",
		map[string]string{"user_id": "supervisor-1"})
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var acked alert.Alert
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &acked))
	gt.Value(t, acked.Status).Equal(types.AlertStatusAcknowledged)
	gt.Value(t, acked.AcknowledgedBy).Equal(types.UserID("supervisor-1"))

	// Acknowledging again conflicts.
	w = postJSON(t, srv, "/api/alerts/"+created.ID.String()+"/acknowledge",
		map[string]string{"user_id": "supervisor-2"})
	gt.Value(t, w.Code).Equal(http.StatusConflict)

	w = postJSON(t, srv, "/api/alerts/"+created.ID.String()+"/resolve",
		map[string]string{"user_id": "supervisor-1", "reason": "guard confirmed"})
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var resolved alert.Alert
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	gt.Value(t, resolved.Status).Equal(types.AlertStatusResolved)
}

func TestEscalateAlertEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := postJSON(t, srv, "/api/alerts", createAlertInput("shift-1"))
	var created alert.Alert
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	for i := 0; i < 4; i++ {
		w = postJSON(t, srv, "/api/alerts/"+created.ID.String()+"/escalate",
			map[string]string{"priority": "high"})
		gt.Value(t, w.Code).Equal(http.StatusOK)
	}

	var escalated alert.Alert
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &escalated))
	gt.Value(t, escalated.EscalationLevel).Equal(5)
	gt.Value(t, escalated.Priority).Equal(types.AlertPriorityHigh)

	// The ceiling maps to a conflict.
	w = postJSON(t, srv, "/api/alerts/"+created.ID.String()+"/escalate",
		map[string]string{})
	gt.Value(t, w.Code).Equal(http.StatusConflict)
}

func TestListAlertsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	gt.Value(t, postJSON(t, srv, "/api/alerts", createAlertInput("shift-1")).Code).
		Equal(http.StatusCreated)
	gt.Value(t, postJSON(t, srv, "/api/alerts", createAlertInput("shift-2")).Code).
		Equal(http.StatusCreated)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts?status=active", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var body struct {
		Alerts []*alert.Alert `json:"alerts"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	gt.Array(t, body.Alerts).Length(2)

	// Invalid status filter is a client error.
	req = httptest.NewRequest(http.MethodGet, "/api/alerts?status=bogus", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestMonitorRunEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	now := time.Now()
	gt.NoError(t, repo.PutShift(t.Context(), &shift.Shift{
		ID:        types.ShiftID("shift-1"),
		Status:    types.ShiftStatusUnassigned,
		StartTime: now.Add(10 * time.Hour),
		EndTime:   now.Add(18 * time.Hour),
		Priority:  3,
	}))

	w := postJSON(t, srv, "/api/monitor/run", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var result usecase.MonitorResult
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	gt.Value(t, result.Monitored).Equal(1)
	gt.Value(t, result.AlertsCreated).Equal(1)

	// A second run detects the existing alert and creates nothing.
	w = postJSON(t, srv, "/api/monitor/run", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	gt.Value(t, result.AlertsCreated).Equal(0)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}
