package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON_SendsHeadersAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["name"]})
	}))
	defer ts.Close()

	c, err := New(Options{BaseURL: ts.URL, Headers: map[string]string{"X-Api-Key": "secret"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out map[string]string
	if err := c.DoJSON(context.Background(), http.MethodPost, "echo", map[string]string{"name": "x"}, &out); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if out["echo"] != "x" {
		t.Fatalf("expected echo x, got %#v", out)
	}
}

func TestDoJSON_Non2xxReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c, _ := New(Options{BaseURL: ts.URL})
	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil)
	if StatusCode(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 HTTPError, got %v", err)
	}
}

func TestNew_NoTimeoutByDefault(t *testing.T) {
	c, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.HTTP.Timeout != 0 {
		t.Fatalf("expected no client timeout, got %s", c.HTTP.Timeout)
	}
	if err := c.DoJSON(context.Background(), http.MethodGet, "/relative", nil, nil); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
}
