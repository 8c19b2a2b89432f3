package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicops/backoffice/internal/intake"
	"github.com/clinicops/backoffice/pkg/logging"
)

// IntakeHandler exposes the walk-in wizard over HTTP. Each session is a
// server-side state machine; the endpoints are its transitions.
type IntakeHandler struct {
	svc    *intake.Service
	logger *logging.Logger
}

// NewIntakeHandler creates an intake handler.
func NewIntakeHandler(svc *intake.Service, logger *logging.Logger) *IntakeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &IntakeHandler{svc: svc, logger: logger}
}

// StartSession opens a new intake session at the searching step.
// POST /api/intake
func (h *IntakeHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.StartSession(r.Context())
	if err != nil {
		h.logger.Error("start intake session", "error", err)
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, session)
}

// GetSession returns the current wizard state.
// GET /api/intake/{sessionID}
func (h *IntakeHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, session)
}

// Search looks up a national ID and advances to the confirming step.
// POST /api/intake/{sessionID}/search
func (h *IntakeHandler) Search(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDCard string `json:"id_card"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	session, err := h.svc.Search(r.Context(), chi.URLParam(r, "sessionID"), body.IDCard)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, session)
}

// Confirm accepts the patient details and advances to the queueing step.
// POST /api/intake/{sessionID}/confirm
func (h *IntakeHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var draft intake.DraftPatient
	if !decodeBody(w, r, &draft) {
		return
	}

	session, err := h.svc.Confirm(r.Context(), chi.URLParam(r, "sessionID"), draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, session)
}

// Back moves the wizard one step backward.
// POST /api/intake/{sessionID}/back
func (h *IntakeHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Back(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, session)
}

// Queue submits the walk-in and, on success, discards the session.
// POST /api/intake/{sessionID}/queue
func (h *IntakeHandler) Queue(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LocationID string `json:"location_id"`
	}
	// An empty body keeps the session's defaulted location; decoding must not
	// depend on Content-Length, which chunked requests report as -1.
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := h.svc.Queue(r.Context(), chi.URLParam(r, "sessionID"), body.LocationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}
