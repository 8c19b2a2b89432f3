package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/backoffice/internal/backend"
	"github.com/clinicops/backoffice/internal/intake"
	"github.com/clinicops/backoffice/internal/schedule"
	"github.com/clinicops/backoffice/internal/stats"
)

type fakeBackend struct {
	locations []backend.Location
	doctors   []backend.Doctor
	staff     []backend.Staff
	schedules []backend.ScheduleEntry
	invoices  []backend.Invoice
	patient   *backend.Patient
	ticket    *backend.WalkInTicket

	listErr   error
	lookupErr error
	submitErr error
	walkIn    backend.WalkInRequest
}

func (f *fakeBackend) ListLocations(context.Context) ([]backend.Location, error) {
	return f.locations, f.listErr
}

func (f *fakeBackend) ListDoctors(context.Context) ([]backend.Doctor, error) {
	return f.doctors, f.listErr
}

func (f *fakeBackend) ListStaff(context.Context, backend.StaffRole) ([]backend.Staff, error) {
	return f.staff, f.listErr
}

func (f *fakeBackend) ListSchedules(context.Context, backend.ListSchedulesParams) ([]backend.ScheduleEntry, error) {
	return f.schedules, f.listErr
}

func (f *fakeBackend) CreateSchedule(_ context.Context, req backend.CreateScheduleRequest) (*backend.ScheduleEntry, error) {
	return &backend.ScheduleEntry{ID: "new", Date: req.Date, LocationID: req.LocationID}, nil
}

func (f *fakeBackend) UpdateSchedule(_ context.Context, id string, _ backend.UpdateScheduleRequest) (*backend.ScheduleEntry, error) {
	return &backend.ScheduleEntry{ID: id}, nil
}

func (f *fakeBackend) DeleteSchedule(context.Context, string) error { return nil }

func (f *fakeBackend) LookupPatient(context.Context, string) (*backend.Patient, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.patient, nil
}

func (f *fakeBackend) SubmitWalkIn(_ context.Context, req backend.WalkInRequest) (*backend.WalkInTicket, error) {
	f.walkIn = req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.ticket, nil
}

func (f *fakeBackend) ListInvoices(context.Context, backend.ListInvoicesParams) ([]backend.Invoice, error) {
	return f.invoices, f.listErr
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestDirectoryListLocations(t *testing.T) {
	api := &fakeBackend{locations: []backend.Location{{ID: "loc-1", Name: "Downtown"}}}
	h := NewDirectoryHandler(api, nil)

	rec := httptest.NewRecorder()
	h.ListLocations(rec, httptest.NewRequest(http.MethodGet, "/api/locations", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, true, env["success"])
	data := env["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Downtown", data[0].(map[string]any)["name"])
}

func TestDirectoryUnauthorizedMapsTo401(t *testing.T) {
	api := &fakeBackend{listErr: backend.ErrUnauthorized}
	h := NewDirectoryHandler(api, nil)

	rec := httptest.NewRecorder()
	h.ListDoctors(rec, httptest.NewRequest(http.MethodGet, "/api/doctors", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "You are not logged in.", env["message"])
}

func TestScheduleGetMonthReturnsFortyTwoCells(t *testing.T) {
	api := &fakeBackend{schedules: []backend.ScheduleEntry{
		{ID: "e1", PersonType: backend.PersonDoctor, Date: "2025-03-05", StartTime: "08:00", EndTime: "17:00"},
	}}
	svc := schedule.NewService(api, "UTC", nil)
	h := NewScheduleHandler(svc, nil)

	rec := httptest.NewRecorder()
	h.GetMonth(rec, httptest.NewRequest(http.MethodGet, "/api/calendar?year=2025&month=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	cells := env["data"].(map[string]any)["cells"].([]any)
	assert.Len(t, cells, 42)
}

func TestScheduleGetMonthRejectsBadMonth(t *testing.T) {
	svc := schedule.NewService(&fakeBackend{}, "UTC", nil)
	h := NewScheduleHandler(svc, nil)

	rec := httptest.NewRecorder()
	h.GetMonth(rec, httptest.NewRequest(http.MethodGet, "/api/calendar?year=2025&month=13", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	fields := env["errors"].(map[string]any)
	assert.Contains(t, fields, "month")
}

func TestScheduleCreateReturnsRefreshedMonth(t *testing.T) {
	api := &fakeBackend{}
	svc := schedule.NewService(api, "UTC", nil)
	h := NewScheduleHandler(svc, nil)

	body, _ := json.Marshal(backend.CreateScheduleRequest{
		PersonType: backend.PersonDoctor,
		PersonID:   "d1",
		Date:       "2025-03-05",
		StartTime:  "08:00",
		EndTime:    "17:00",
		LocationID: "loc-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/schedules?year=2025&month=3", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateEntry(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	view := env["data"].(map[string]any)
	assert.Equal(t, float64(2025), view["year"])
	assert.Len(t, view["cells"].([]any), 42)
}

func TestScheduleDeleteMissingIDRejected(t *testing.T) {
	svc := schedule.NewService(&fakeBackend{}, "UTC", nil)
	h := NewScheduleHandler(svc, nil)

	rec := httptest.NewRecorder()
	h.DeleteEntry(rec, httptest.NewRequest(http.MethodDelete, "/api/schedules", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func intakeRouter(h *IntakeHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/intake", h.StartSession)
	r.Get("/api/intake/{sessionID}", h.GetSession)
	r.Post("/api/intake/{sessionID}/search", h.Search)
	r.Post("/api/intake/{sessionID}/confirm", h.Confirm)
	r.Post("/api/intake/{sessionID}/back", h.Back)
	r.Post("/api/intake/{sessionID}/queue", h.Queue)
	return r
}

func TestIntakeFullFlowNewRegistration(t *testing.T) {
	api := &fakeBackend{
		locations: []backend.Location{{ID: "loc-1"}},
		lookupErr: backend.ErrNotFound,
		ticket:    &backend.WalkInTicket{ID: "t1", QueueNumber: 7, LocationID: "loc-1"},
	}
	svc := intake.NewService(intake.NewMemoryStore(0), api, nil, nil)
	router := intakeRouter(NewIntakeHandler(svc, nil))

	// Start.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := decodeEnvelope(t, rec)["data"].(map[string]any)["id"].(string)

	// Search: unknown ID switches to new-registration mode.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake/"+sessionID+"/search",
		bytes.NewReader([]byte(`{"id_card":"123456789012"}`))))
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "confirming", state["step"])
	assert.Nil(t, state["matched_patient"])

	// Confirm with the registration details.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake/"+sessionID+"/confirm",
		bytes.NewReader([]byte(`{"full_name":"Tran Thi B","date_of_birth":"1992-04-01","phone":"0901234567"}`))))
	require.Equal(t, http.StatusOK, rec.Code)

	// Queue.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake/"+sessionID+"/queue",
		bytes.NewReader([]byte(`{}`))))
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Queued at position 7.", result["message"])
	require.NotNil(t, api.walkIn.Patient)
	assert.Equal(t, "123456789012", api.walkIn.Patient.IDCard)

	// Session is gone after a successful submission.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/intake/"+sessionID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIntakeQueueChunkedBodyOverridesLocation(t *testing.T) {
	api := &fakeBackend{
		locations: []backend.Location{{ID: "loc-1"}, {ID: "loc-2"}},
		patient: &backend.Patient{
			ID: "p1", IDCard: "079203001234", FullName: "Nguyen Van A",
			DateOfBirth: "1990-04-12", Phone: "0912345678",
		},
		ticket: &backend.WalkInTicket{ID: "t1", QueueNumber: 3, LocationID: "loc-2"},
	}
	svc := intake.NewService(intake.NewMemoryStore(0), api, nil, nil)
	router := intakeRouter(NewIntakeHandler(svc, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake", nil))
	sessionID := decodeEnvelope(t, rec)["data"].(map[string]any)["id"].(string)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake/"+sessionID+"/search",
		bytes.NewReader([]byte(`{"id_card":"079203001234"}`))))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake/"+sessionID+"/confirm",
		bytes.NewReader([]byte(`{}`))))
	require.Equal(t, http.StatusOK, rec.Code)

	// A body behind an unsized reader arrives with ContentLength -1, the
	// same shape as a chunked upload; the override must still apply.
	chunked := io.MultiReader(bytes.NewReader([]byte(`{"location_id":"loc-2"}`)))
	req := httptest.NewRequest(http.MethodPost, "/api/intake/"+sessionID+"/queue", chunked)
	require.Equal(t, int64(-1), req.ContentLength)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "loc-2", api.walkIn.LocationID)
}

func TestIntakeMalformedIDReturns422(t *testing.T) {
	api := &fakeBackend{locations: []backend.Location{{ID: "loc-1"}}}
	svc := intake.NewService(intake.NewMemoryStore(0), api, nil, nil)
	router := intakeRouter(NewIntakeHandler(svc, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake", nil))
	sessionID := decodeEnvelope(t, rec)["data"].(map[string]any)["id"].(string)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake/"+sessionID+"/search",
		bytes.NewReader([]byte(`{"id_card":"12ab"}`))))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["errors"].(map[string]any), "id_card")
}

func TestIntakeConfirmOutOfOrderReturns409(t *testing.T) {
	api := &fakeBackend{locations: []backend.Location{{ID: "loc-1"}}}
	svc := intake.NewService(intake.NewMemoryStore(0), api, nil, nil)
	router := intakeRouter(NewIntakeHandler(svc, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake", nil))
	sessionID := decodeEnvelope(t, rec)["data"].(map[string]any)["id"].(string)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/intake/"+sessionID+"/confirm",
		bytes.NewReader([]byte(`{}`))))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestIntakeUnknownSessionReturns404(t *testing.T) {
	svc := intake.NewService(intake.NewMemoryStore(0), &fakeBackend{}, nil, nil)
	router := intakeRouter(NewIntakeHandler(svc, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/intake/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsRevenue(t *testing.T) {
	api := &fakeBackend{invoices: []backend.Invoice{
		{ID: "i1", Amount: 5000, Status: "paid"},
		{ID: "i2", Amount: 2500, Status: "pending"},
	}}
	h := NewStatsHandler(stats.NewService(api, nil), nil)

	rec := httptest.NewRecorder()
	h.Revenue(rec, httptest.NewRequest(http.MethodGet, "/api/stats/revenue?location_id=loc-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), report["invoice_count"])
	assert.Equal(t, float64(5000), report["paid_total"])
	assert.Equal(t, float64(2500), report["outstanding_total"])
}

func TestWriteDomainErrorKeepsServerWording(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, &backend.APIError{StatusCode: 422, Message: "date overlaps an existing shift"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "date overlaps an existing shift", env["message"])
}

func TestWriteDomainErrorFallsBackFor502(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Something went wrong. Please try again.", env["message"])
}
