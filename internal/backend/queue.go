package backend

import (
	"context"
	"net/http"
)

// SubmitWalkIn queues a walk-in patient at a location. The request carries
// either an existing patient id or the full new-registration payload.
func (c *Client) SubmitWalkIn(ctx context.Context, req WalkInRequest) (*WalkInTicket, error) {
	return doItem[WalkInTicket](ctx, c, "walkin_queue", http.MethodPost, "/api/walkin-queue", nil, req)
}
