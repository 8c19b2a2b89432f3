package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListSchedules returns schedule entries for a location and date range.
func (c *Client) ListSchedules(ctx context.Context, params ListSchedulesParams) ([]ScheduleEntry, error) {
	query := url.Values{}
	if params.LocationID != "" {
		query.Set("location_id", params.LocationID)
	}
	if params.PersonType != "" {
		query.Set("person_type", string(params.PersonType))
	}
	if params.StaffRole != "" {
		query.Set("staff_role", string(params.StaffRole))
	}
	if params.From != "" {
		query.Set("from", params.From)
	}
	if params.To != "" {
		query.Set("to", params.To)
	}
	entries, _, err := doList[ScheduleEntry](ctx, c, "schedules", http.MethodGet, "/api/schedules", query, nil)
	return entries, err
}

// CreateSchedule creates a new schedule entry.
func (c *Client) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleEntry, error) {
	return doItem[ScheduleEntry](ctx, c, "schedules", http.MethodPost, "/api/schedules", nil, req)
}

// UpdateSchedule mutates an existing entry in place.
func (c *Client) UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*ScheduleEntry, error) {
	return doItem[ScheduleEntry](ctx, c, "schedules", http.MethodPut, "/api/schedules/"+url.PathEscape(id), nil, req)
}

// DeleteSchedule removes an entry. Deleting an entry another user already
// removed surfaces the server's error; there is no optimistic-lock handling.
func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	var env itemEnvelope[struct{}]
	if err := c.do(ctx, "schedules", http.MethodDelete, "/api/schedules/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return err
	}
	if !env.Success {
		return &APIError{StatusCode: http.StatusOK, Message: env.Message, Issues: env.Errors}
	}
	return nil
}
