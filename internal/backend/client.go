package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/clinicops/backoffice/internal/observability/metrics"
	"github.com/clinicops/backoffice/pkg/logging"
)

var tracer = otel.Tracer("backoffice.internal.backend")

const defaultTimeout = 20 * time.Second

// Client is a typed JSON client for the clinic REST backend. All responses
// follow the backend's envelope conventions: lists are
// {success, data, pagination?} and mutations {success, data, message?}.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	logger     *logging.Logger
	metrics    *metrics.BackendMetrics
}

// Config wires a Client. BaseURL and Tokens are required.
type Config struct {
	BaseURL    string
	Tokens     TokenProvider
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	Metrics    *metrics.BackendMetrics
}

// NewClient creates a backend client.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
		metrics:    cfg.Metrics,
	}
}

type apiStatus struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type listEnvelope[T any] struct {
	apiStatus
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type itemEnvelope[T any] struct {
	apiStatus
	Data T `json:"data"`
}

// doList performs a request whose response body is a list envelope.
func doList[T any](ctx context.Context, c *Client, resource, method, path string, query url.Values, body any) ([]T, *Pagination, error) {
	var env listEnvelope[T]
	if err := c.do(ctx, resource, method, path, query, body, &env); err != nil {
		return nil, nil, err
	}
	if !env.Success {
		c.observe(resource, "rejected", 0)
		return nil, nil, &APIError{StatusCode: http.StatusOK, Message: env.Message, Issues: env.Errors}
	}
	return env.Data, env.Pagination, nil
}

// doItem performs a request whose response body is a single-object envelope.
func doItem[T any](ctx context.Context, c *Client, resource, method, path string, query url.Values, body any) (*T, error) {
	var env itemEnvelope[T]
	if err := c.do(ctx, resource, method, path, query, body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		c.observe(resource, "rejected", 0)
		return nil, &APIError{StatusCode: http.StatusOK, Message: env.Message, Issues: env.Errors}
	}
	return &env.Data, nil
}

func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, body, out any) error {
	ctx, span := tracer.Start(ctx, "backend."+resource)
	defer span.End()

	if c.baseURL == "" {
		return fmt.Errorf("backend: %s: base URL not configured", resource)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: %s: marshal request: %w", resource, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("backend: %s: create request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(resource, "transport_error", time.Since(start).Seconds())
		return fmt.Errorf("backend: %s: http request: %w", resource, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(resource, "transport_error", time.Since(start).Seconds())
		return fmt.Errorf("backend: %s: read response: %w", resource, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.observe(resource, "unauthorized", time.Since(start).Seconds())
		return fmt.Errorf("%w: %s", ErrUnauthorized, resource)
	case resp.StatusCode == http.StatusNotFound:
		c.observe(resource, "not_found", time.Since(start).Seconds())
		return fmt.Errorf("%w: %s", ErrNotFound, resource)
	case resp.StatusCode >= 400:
		c.observe(resource, "error", time.Since(start).Seconds())
		var status apiStatus
		if json.Unmarshal(respBody, &status) == nil && status.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: status.Message, Issues: status.Errors}
		}
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		c.observe(resource, "decode_error", time.Since(start).Seconds())
		return fmt.Errorf("backend: %s: unmarshal response: %w", resource, err)
	}

	c.observe(resource, "ok", time.Since(start).Seconds())
	c.logger.Debug("backend call completed",
		"resource", resource,
		"method", method,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (c *Client) observe(resource, outcome string, seconds float64) {
	c.metrics.ObserveRequest(resource, outcome, seconds)
}
