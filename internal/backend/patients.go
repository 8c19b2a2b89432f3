package backend

import (
	"context"
	"net/http"
	"net/url"
)

// LookupPatient finds an existing patient by 12-digit national ID. A missing
// record is reported as ErrNotFound so callers can branch on errors.Is
// instead of matching message text; any other failure is a real error.
func (c *Client) LookupPatient(ctx context.Context, nationalID string) (*Patient, error) {
	query := url.Values{"id_card": {nationalID}}
	return doItem[Patient](ctx, c, "patients", http.MethodGet, "/api/patients/lookup", query, nil)
}
