package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListLocations returns every clinic location.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	locations, _, err := doList[Location](ctx, c, "locations", http.MethodGet, "/api/locations", nil, nil)
	return locations, err
}

// ListDoctors returns the doctor directory.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	doctors, _, err := doList[Doctor](ctx, c, "doctors", http.MethodGet, "/api/doctors", nil, nil)
	return doctors, err
}

// ListStaff returns the staff directory, optionally filtered by sub-type.
func (c *Client) ListStaff(ctx context.Context, role StaffRole) ([]Staff, error) {
	var query url.Values
	if role != "" {
		query = url.Values{"role": {string(role)}}
	}
	staff, _, err := doList[Staff](ctx, c, "staff", http.MethodGet, "/api/staff", query, nil)
	return staff, err
}
