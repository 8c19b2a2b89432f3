package stats

import (
	"context"
	"fmt"

	"github.com/clinicops/backoffice/internal/backend"
	"github.com/clinicops/backoffice/pkg/logging"
)

// API is the invoice listing the revenue report is computed from.
type API interface {
	ListInvoices(ctx context.Context, params backend.ListInvoicesParams) ([]backend.Invoice, error)
}

// Revenue represents per-location billing metrics over a period.
type Revenue struct {
	LocationID       string `json:"location_id"`
	InvoiceCount     int    `json:"invoice_count"`
	PaidCount        int    `json:"paid_count"`
	PaidTotal        int64  `json:"paid_total"`
	OutstandingTotal int64  `json:"outstanding_total"`
	PeriodStart      string `json:"period_start"`
	PeriodEnd        string `json:"period_end"`
}

// Service aggregates invoices fetched from the backend.
type Service struct {
	api    API
	logger *logging.Logger
}

// NewService creates a revenue stats service.
func NewService(api API, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: api, logger: logger}
}

// Revenue computes billing totals for a location. from/to are inclusive
// calendar days; when both are empty the report covers all time.
func (s *Service) Revenue(ctx context.Context, locationID, from, to string) (*Revenue, error) {
	invoices, err := s.api.ListInvoices(ctx, backend.ListInvoicesParams{
		LocationID: locationID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, fmt.Errorf("stats: list invoices: %w", err)
	}

	rev := &Revenue{
		LocationID:  locationID,
		PeriodStart: from,
		PeriodEnd:   to,
	}
	if from == "" && to == "" {
		rev.PeriodStart = "all-time"
		rev.PeriodEnd = "now"
	}

	for _, inv := range invoices {
		rev.InvoiceCount++
		if inv.Status == "paid" {
			rev.PaidCount++
			rev.PaidTotal += inv.Amount
		} else {
			rev.OutstandingTotal += inv.Amount
		}
	}
	return rev, nil
}
