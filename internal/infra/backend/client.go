// Package backend is the HTTP adapter for the LinkedIn post-agent service.
// Every tool call becomes exactly one POST to baseURL+path with a JSON body;
// the JSON answer is returned verbatim.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"
	healthPath        = "/health"
)

var (
	ErrBackendStatus            = errors.New("backend returned non-success status")
	ErrBackendUnreachable       = errors.New("backend unreachable")
	ErrMalformedBackendResponse = errors.New("malformed backend response")
)

// StatusError is returned for any non-2xx answer. Body is the response text
// as received.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Backend error %d %s: %s", e.StatusCode, e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == ErrBackendStatus }

// Client calls the backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	propagator propagation.TextMapPropagator
}

// NewClient creates a Client. A zero timeout leaves outbound calls bounded
// only by the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a Client around an existing http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		propagator: otel.GetTextMapPropagator(),
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Post sends payload to baseURL+path and returns the JSON response body.
// An absent or null payload is sent as {}.
func (c *Client) Post(ctx context.Context, path string, payload json.RawMessage) (json.RawMessage, error) {
	body := bytes.TrimSpace(payload)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		body = []byte("{}")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("backend post %s: build request: %w", path, err)
	}
	req.Header.Set(headerContentType, mimeJSON)
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: post %s: %w", ErrBackendUnreachable, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: post %s: read body: %w", ErrBackendUnreachable, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     reasonPhrase(resp),
			Body:       string(respBody),
		}
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%w: post %s: body is not valid JSON", ErrMalformedBackendResponse, path)
	}
	return json.RawMessage(respBody), nil
}

// HealthCheck calls GET /health and returns nil on a 2xx answer.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("backend healthcheck: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: healthcheck: %w", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("backend healthcheck: %w", &StatusError{StatusCode: resp.StatusCode, Status: reasonPhrase(resp)})
	}
	return nil
}

// reasonPhrase extracts "Internal Server Error" from "500 Internal Server Error".
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
