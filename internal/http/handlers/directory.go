package handlers

import (
	"context"
	"net/http"

	"github.com/clinicops/backoffice/internal/backend"
	"github.com/clinicops/backoffice/pkg/logging"
)

// DirectoryAPI is the backend slice the directory endpoints proxy.
type DirectoryAPI interface {
	ListLocations(ctx context.Context) ([]backend.Location, error)
	ListDoctors(ctx context.Context) ([]backend.Doctor, error)
	ListStaff(ctx context.Context, role backend.StaffRole) ([]backend.Staff, error)
}

// DirectoryHandler serves the location, doctor and staff pickers.
type DirectoryHandler struct {
	api    DirectoryAPI
	logger *logging.Logger
}

// NewDirectoryHandler creates a directory handler.
func NewDirectoryHandler(api DirectoryAPI, logger *logging.Logger) *DirectoryHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DirectoryHandler{api: api, logger: logger}
}

// ListLocations returns all clinic locations.
// GET /api/locations
func (h *DirectoryHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.api.ListLocations(r.Context())
	if err != nil {
		h.logger.Error("list locations", "error", err)
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, locations)
}

// ListDoctors returns the doctor directory.
// GET /api/doctors
func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.api.ListDoctors(r.Context())
	if err != nil {
		h.logger.Error("list doctors", "error", err)
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, doctors)
}

// ListStaff returns the staff directory, optionally filtered by role.
// GET /api/staff?role=receptionist
func (h *DirectoryHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	role := backend.StaffRole(r.URL.Query().Get("role"))
	staff, err := h.api.ListStaff(r.Context(), role)
	if err != nil {
		h.logger.Error("list staff", "error", err, "role", role)
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, staff)
}
