// Package hass is a minimal client for the Home Assistant REST API covering
// the three endpoints hearth needs: listing states, reading one state, and
// calling a service.
package hass

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when the server has no entity with the given ID.
var ErrNotFound = errors.New("hass: entity not found")

// StatusError is a non-2xx response from the server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hass: server returned %d: %s", e.Code, e.Body)
}

// State is one entry from /api/states.
type State struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// FriendlyName returns the friendly_name attribute, falling back to the
// entity ID when the attribute is missing.
func (s State) FriendlyName() string {
	if v, ok := s.Attributes["friendly_name"].(string); ok && v != "" {
		return v
	}
	return s.EntityID
}

// HTTPClient is an interface for HTTP request execution (for testability).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a single Home Assistant instance.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
	retryWait  time.Duration
}

// NewClient creates a client for the given base URL and long-lived access
// token. A nil httpClient gets a default with the given timeout.
func NewClient(baseURL, token string, timeout time.Duration, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		retryWait:  250 * time.Millisecond,
	}
}

// Ping checks that the API is reachable and the token is accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/", nil)
	if err != nil {
		return fmt.Errorf("hass: ping: %w", err)
	}
	return nil
}

// States fetches every entity state known to the server.
func (c *Client) States(ctx context.Context) ([]State, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/states", nil)
	if err != nil {
		return nil, fmt.Errorf("hass: fetch states: %w", err)
	}

	var states []State
	if err := json.Unmarshal(body, &states); err != nil {
		return nil, fmt.Errorf("hass: parse states: %w", err)
	}
	return states, nil
}

// State fetches the current state of a single entity.
func (c *Client) State(ctx context.Context, entityID string) (*State, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/states/"+entityID, nil)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("hass: state of %s: %w", entityID, ErrNotFound)
		}
		return nil, fmt.Errorf("hass: state of %s: %w", entityID, err)
	}

	var st State
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, fmt.Errorf("hass: parse state of %s: %w", entityID, err)
	}
	return &st, nil
}

// CallService invokes /api/services/{domain}/{service} with the given data.
func (c *Client) CallService(ctx context.Context, domain, service string, data map[string]any) error {
	path := fmt.Sprintf("/api/services/%s/%s", domain, service)
	if _, err := c.do(ctx, http.MethodPost, path, data); err != nil {
		return fmt.Errorf("hass: call %s.%s: %w", domain, service, err)
	}
	return nil
}

// do issues one request with bearer auth and a single bounded retry on
// transient failures.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	body, err := c.attempt(ctx, method, path, payload)
	if err == nil {
		return body, nil
	}

	kind := ClassifyErr(err)
	var se *StatusError
	if errors.As(err, &se) {
		kind = ClassifyStatus(se.Code)
	}
	if kind != Transient {
		return nil, err
	}

	select {
	case <-time.After(c.retryWait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return c.attempt(ctx, method, path, payload)
}

func (c *Client) attempt(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
