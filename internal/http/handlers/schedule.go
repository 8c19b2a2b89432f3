package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinicops/backoffice/internal/backend"
	"github.com/clinicops/backoffice/internal/schedule"
	"github.com/clinicops/backoffice/pkg/logging"
)

// ScheduleHandler serves the month calendar and its mutations. Every
// mutation responds with the refreshed month view so the caller never
// renders stale cells.
type ScheduleHandler struct {
	svc    *schedule.Service
	logger *logging.Logger
}

// NewScheduleHandler creates a schedule handler.
func NewScheduleHandler(svc *schedule.Service, logger *logging.Logger) *ScheduleHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleHandler{svc: svc, logger: logger}
}

// monthQuery parses the calendar page selector from the query string.
// Year and month default to the current month when absent.
func monthQuery(r *http.Request) (schedule.MonthQuery, map[string]string) {
	q := r.URL.Query()
	now := time.Now()

	query := schedule.MonthQuery{
		Year:       now.Year(),
		Month:      now.Month(),
		LocationID: q.Get("location_id"),
		PersonType: backend.PersonType(q.Get("person_type")),
		StaffRole:  backend.StaffRole(q.Get("staff_role")),
	}

	fields := map[string]string{}
	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1970 || year > 9999 {
			fields["year"] = "must be a four-digit year"
		} else {
			query.Year = year
		}
	}
	if raw := q.Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			fields["month"] = "must be between 1 and 12"
		} else {
			query.Month = time.Month(month)
		}
	}
	if len(fields) > 0 {
		return query, fields
	}
	return query, nil
}

// GetMonth returns the 42-cell month view.
// GET /api/calendar?year=2025&month=3&location_id=...&person_type=doctor
func (h *ScheduleHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	query, fields := monthQuery(r)
	if fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fields)
		return
	}

	view, err := h.svc.MonthView(r.Context(), query)
	if err != nil {
		h.logger.Error("build month view", "error", err, "year", query.Year, "month", int(query.Month))
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, view)
}

// CreateEntry adds a schedule entry and returns the refreshed month.
// POST /api/schedules
func (h *ScheduleHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	query, fields := monthQuery(r)
	if fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fields)
		return
	}

	var req backend.CreateScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.svc.CreateEntry(r.Context(), query, req)
	if err != nil {
		h.logger.Error("create schedule entry", "error", err)
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, view)
}

// UpdateEntry mutates a schedule entry and returns the refreshed month.
// PUT /api/schedules/{entryID}
func (h *ScheduleHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry id", nil)
		return
	}

	query, fields := monthQuery(r)
	if fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fields)
		return
	}

	var req backend.UpdateScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.svc.UpdateEntry(r.Context(), query, entryID, req)
	if err != nil {
		h.logger.Error("update schedule entry", "error", err, "entry_id", entryID)
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, view)
}

// DeleteEntry removes a schedule entry and returns the refreshed month.
// DELETE /api/schedules/{entryID}
func (h *ScheduleHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry id", nil)
		return
	}

	query, fields := monthQuery(r)
	if fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fields)
		return
	}

	view, err := h.svc.DeleteEntry(r.Context(), query, entryID)
	if err != nil {
		h.logger.Error("delete schedule entry", "error", err, "entry_id", entryID)
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, view)
}
