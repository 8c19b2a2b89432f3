package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicops/backoffice/internal/backend"
	"github.com/clinicops/backoffice/internal/intake"
)

// dataEnvelope mirrors the backend's success wire shape so the front end
// consumes one format end to end.
type dataEnvelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data"`
	Pagination *backend.Pagination `json:"pagination,omitempty"`
}

type errorEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, errorEnvelope{Success: false, Message: message, Errors: fields})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeDomainError maps service errors onto HTTP statuses. Field-level
// validation problems come back as 422 with per-field messages; everything
// the backend rejected keeps the server's own wording.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *intake.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", verr.Fields)
		return
	}

	switch {
	case errors.Is(err, intake.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found", nil)
	case errors.Is(err, intake.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "action not allowed from the current step", nil)
	case errors.Is(err, backend.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, backend.UserMessage(err), nil)
	case errors.Is(err, backend.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", nil)
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			status := http.StatusBadGateway
			if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
				status = apiErr.StatusCode
			}
			writeError(w, status, backend.UserMessage(err), nil)
			return
		}
		writeError(w, http.StatusBadGateway, backend.UserMessage(err), nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}
