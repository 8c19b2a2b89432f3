package handlers

import (
	"net/http"
	"time"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	startedAt time.Time
	env       string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{startedAt: time.Now().UTC(), env: env}
}

// Check returns service status.
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"env":            h.env,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}
