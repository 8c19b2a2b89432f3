package handlers

import (
	"net/http"

	"github.com/clinicops/backoffice/internal/stats"
	"github.com/clinicops/backoffice/pkg/logging"
)

// StatsHandler serves the revenue report.
type StatsHandler struct {
	svc    *stats.Service
	logger *logging.Logger
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(svc *stats.Service, logger *logging.Logger) *StatsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

// Revenue returns billing totals for a location over an optional period.
// GET /api/stats/revenue?location_id=...&from=2025-01-01&to=2025-01-31
func (h *StatsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.svc.Revenue(r.Context(), q.Get("location_id"), q.Get("from"), q.Get("to"))
	if err != nil {
		h.logger.Error("compute revenue report", "error", err)
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, report)
}
