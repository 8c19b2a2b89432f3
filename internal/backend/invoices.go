package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListInvoices returns invoices for a location within an issued-date range.
func (c *Client) ListInvoices(ctx context.Context, params ListInvoicesParams) ([]Invoice, error) {
	query := url.Values{}
	if params.LocationID != "" {
		query.Set("location_id", params.LocationID)
	}
	if params.From != "" {
		query.Set("from", params.From)
	}
	if params.To != "" {
		query.Set("to", params.To)
	}
	invoices, _, err := doList[Invoice](ctx, c, "invoices", http.MethodGet, "/api/invoices", query, nil)
	return invoices, err
}
