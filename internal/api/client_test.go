package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

const tokenFixture = "test-token-abc123"

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func storyRecord(id, title, author, rawURL, username string) map[string]any {
	return map[string]any{
		"storyId":   id,
		"title":     title,
		"author":    author,
		"url":       rawURL,
		"username":  username,
		"createdAt": "2024-01-15T10:00:00.000Z",
		"updatedAt": "2024-01-15T10:00:00.000Z",
	}
}

func userRecordFixture(username, name string, favorites, stories []map[string]any) map[string]any {
	if favorites == nil {
		favorites = []map[string]any{}
	}
	if stories == nil {
		stories = []map[string]any{}
	}
	return map[string]any{
		"username":  username,
		"name":      name,
		"createdAt": "2024-01-01T00:00:00.000Z",
		"updatedAt": "2024-01-01T00:00:00.000Z",
		"favorites": favorites,
		"stories":   stories,
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	return body
}

func TestNewDefaults(t *testing.T) {
	c := New("")
	if c.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", c.BaseURL)
	}
	if c.HTTPClient == nil {
		t.Error("expected non-nil HTTP client")
	}
	if c.HTTPClient.Timeout == 0 {
		t.Error("expected a request timeout to be set")
	}
}

func TestStatusErrorMessage(t *testing.T) {
	e := &StatusError{Code: 500, Body: "boom"}
	if e.Error() != "API returned HTTP 500: boom" {
		t.Errorf("unexpected message: %q", e.Error())
	}
	e = &StatusError{Code: 404}
	if e.Error() != "API returned HTTP 404" {
		t.Errorf("unexpected message: %q", e.Error())
	}
}
