package verto

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient(StaticToken("test-token"))

	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected baseURL %s, got %s", DefaultBaseURL, client.baseURL)
	}

	if client.timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", client.timeout)
	}

	if client.httpClient == nil {
		t.Error("expected httpClient to be initialized")
	}

	if client.headers == nil {
		t.Error("expected headers map to be initialized")
	}

	if client.retryConfig == nil {
		t.Error("expected retryConfig to be initialized")
	}

	if client.Releases == nil || client.Organizations == nil || client.Projects == nil ||
		client.TransactionEvents == nil || client.Auth == nil || client.Users == nil {
		t.Error("expected all service groups to be initialized")
	}
}

func TestNewClientNilTokenSource(t *testing.T) {
	client := NewClient(nil)

	_, err := client.NewRequest(context.Background(), "GET", "/releases", nil)
	if !errors.Is(err, ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}

func TestClientOptions(t *testing.T) {
	customURL := "https://releases.example.com"
	customTimeout := 60 * time.Second

	client := NewClient(StaticToken("test-token"),
		WithBaseURL(customURL),
		WithTimeout(customTimeout),
		WithHeader("X-Custom-Header", "value"),
	)

	if client.baseURL != customURL {
		t.Errorf("expected baseURL %s, got %s", customURL, client.baseURL)
	}

	if client.timeout != customTimeout {
		t.Errorf("expected timeout %v, got %v", customTimeout, client.timeout)
	}

	if val, ok := client.headers["X-Custom-Header"]; !ok || val != "value" {
		t.Errorf("expected header X-Custom-Header with value 'value', got %v, %v", val, ok)
	}
}

func TestWithBaseURLTrimsTrailingSlash(t *testing.T) {
	client := NewClient(StaticToken("test-token"), WithBaseURL("https://api.example.com/"))

	if client.baseURL != "https://api.example.com" {
		t.Errorf("expected trailing slash trimmed, got %s", client.baseURL)
	}
}

func TestWithHeaders(t *testing.T) {
	headers := map[string]string{
		"X-Header-1": "value1",
		"X-Header-2": "value2",
	}

	client := NewClient(StaticToken("test-token"), WithHeaders(headers))

	for k, v := range headers {
		if val, ok := client.headers[k]; !ok || val != v {
			t.Errorf("expected header %s with value %s, got %v, %v", k, v, val, ok)
		}
	}
}

func TestNewRequest(t *testing.T) {
	client := NewClient(StaticToken("test-token"),
		WithHeader("X-Custom-Header", "custom-value"),
	)

	ctx := context.Background()
	req, err := client.NewRequest(ctx, "GET", "/releases", nil)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if req.Method != "GET" {
		t.Errorf("expected method GET, got %s", req.Method)
	}

	expectedURL := DefaultBaseURL + "/releases"
	if req.URL.String() != expectedURL {
		t.Errorf("expected URL %s, got %s", expectedURL, req.URL.String())
	}

	// Check auth header
	if auth := req.Header.Get("Authorization"); auth != "Bearer test-token" {
		t.Errorf("expected Authorization header 'Bearer test-token', got %s", auth)
	}

	// Check default headers
	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", req.Header.Get("Content-Type"))
	}

	if req.Header.Get("Accept") != "application/json" {
		t.Errorf("expected Accept application/json, got %s", req.Header.Get("Accept"))
	}

	// Check custom header
	if req.Header.Get("X-Custom-Header") != "custom-value" {
		t.Errorf("expected X-Custom-Header custom-value, got %s", req.Header.Get("X-Custom-Header"))
	}
}

func TestNewRequestWithoutToken(t *testing.T) {
	client := NewClient(StaticToken(""))

	_, err := client.NewRequest(context.Background(), "GET", "/releases", nil)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestNewRequestBlankToken(t *testing.T) {
	client := NewClient(StaticToken("   "))

	_, err := client.NewRequest(context.Background(), "GET", "/releases", nil)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired for whitespace token, got %v", err)
	}
}

func TestNewPublicRequest(t *testing.T) {
	client := NewClient(StaticToken(""))

	req, err := client.NewPublicRequest(context.Background(), "POST", "/auth/login", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if auth := req.Header.Get("Authorization"); auth != "" {
		t.Errorf("expected no Authorization header on public request, got %s", auth)
	}
}

func TestNewPublicRequestAddsLeadingSlash(t *testing.T) {
	client := NewClient(StaticToken(""))

	req, err := client.NewPublicRequest(context.Background(), "GET", "auth/login", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expectedURL := DefaultBaseURL + "/auth/login"
	if req.URL.String() != expectedURL {
		t.Errorf("expected URL %s, got %s", expectedURL, req.URL.String())
	}
}

func TestDo_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(StaticToken("test-token"),
		WithBaseURL(server.URL),
		WithRetryConfig(&RetryConfig{MaxRetries: 0, RetryDelay: 0}),
	)

	req, _ := client.NewRequest(context.Background(), "GET", "/releases", nil)
	resp, err := client.Do(req)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestDo_RetryOn5xx(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	client := NewClient(StaticToken("test-token"),
		WithBaseURL(server.URL),
		WithRetryConfig(&RetryConfig{MaxRetries: 3, RetryDelay: 1 * time.Millisecond}),
	)

	req, _ := client.NewRequest(context.Background(), "GET", "/releases", nil)
	resp, err := client.Do(req)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 after retries, got %d", resp.StatusCode)
	}

	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_NoRetryOn4xx(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(StaticToken("test-token"),
		WithBaseURL(server.URL),
		WithRetryConfig(&RetryConfig{MaxRetries: 3, RetryDelay: 1 * time.Millisecond}),
	)

	req, _ := client.NewRequest(context.Background(), "GET", "/releases", nil)
	resp, err := client.Do(req)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}

	if attempts != 1 {
		t.Errorf("expected 1 attempt (no retry on 4xx), got %d", attempts)
	}
}

func TestDo_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(StaticToken("test-token"),
		WithBaseURL(server.URL),
		WithRetryConfig(&RetryConfig{MaxRetries: 1, RetryDelay: 1 * time.Millisecond}),
	)

	req, _ := client.NewRequest(context.Background(), "GET", "/releases", nil)
	_, err := client.Do(req)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestWithRetryConfig(t *testing.T) {
	customRetry := &RetryConfig{
		MaxRetries: 5,
		RetryDelay: 2 * time.Second,
	}

	client := NewClient(StaticToken("test-token"), WithRetryConfig(customRetry))

	if client.retryConfig.MaxRetries != 5 {
		t.Errorf("expected MaxRetries 5, got %d", client.retryConfig.MaxRetries)
	}

	if client.retryConfig.RetryDelay != 2*time.Second {
		t.Errorf("expected RetryDelay 2s, got %v", client.retryConfig.RetryDelay)
	}
}

func TestWithHTTPClient(t *testing.T) {
	customClient := &http.Client{
		Timeout: 5 * time.Second,
	}

	client := NewClient(StaticToken("test-token"), WithHTTPClient(customClient))

	if client.httpClient != customClient {
		t.Error("expected custom HTTP client to be used")
	}
}

func TestDoRetryReplaysBody(t *testing.T) {
	var mu sync.Mutex
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(raw))
		first := len(bodies) == 1
		mu.Unlock()
		if first {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(StaticToken("test-token"),
		WithBaseURL(server.URL),
		WithRetryConfig(&RetryConfig{MaxRetries: 2, RetryDelay: 1 * time.Millisecond}),
	)

	payload := `{"version":"1.2.3"}`
	req, err := client.NewRequest(context.Background(), "PUT", "/releases", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(bodies))
	}
	if bodies[1] != payload {
		t.Errorf("expected retried request to carry body %q, got %q", payload, bodies[1])
	}
}
