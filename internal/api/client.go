// Package api is a client for the Hack or Snooze REST API.
//
// The remote service owns all story and account state; this package maps its
// JSON payloads onto in-memory values (Story, User, StoryList) and keeps the
// local collections in sync after each confirmed write. Every call is a
// single HTTP round trip with no retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the hosted Hack or Snooze service.
const DefaultBaseURL = "https://hack-or-snooze-v3.herokuapp.com"

// Client talks to the Hack or Snooze API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a client for the given base URL, or for the hosted service
// when baseURL is empty.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// tokenBody is the request envelope for endpoints that carry only the
// session token.
type tokenBody struct {
	Token string `json:"token"`
}

// do sends one JSON request and decodes the response into out (skipped when
// out is nil). A non-2xx response comes back as *StatusError; transport
// failures are wrapped unmodified.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Code: resp.StatusCode, Body: string(b)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
