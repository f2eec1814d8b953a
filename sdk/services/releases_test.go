package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	verto "github.com/muhammadjan5/verto-ux/sdk"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/services"
)

func newTestClient(server *httptest.Server) *verto.Client {
	return verto.NewClient(verto.StaticToken("test-token"),
		verto.WithBaseURL(server.URL),
		verto.WithRetryConfig(&verto.RetryConfig{MaxRetries: 0, RetryDelay: 0}),
	)
}

func commitPtr(s string) *string { return &s }

func TestReleaseFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/releases" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("expected bearer auth, got %q", auth)
		}
		json.NewEncoder(w).Encode(models.ReleasesData{
			"acme": {
				"prod": {Branch: "main", Version: "2.0.0", Build: 4, Date: "2024-01-01"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	data, err := client.Releases.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	release, ok := data["acme"]["prod"]
	if !ok {
		t.Fatal("expected acme/prod release in response")
	}
	if release.Version != "2.0.0" || release.Build != 4 {
		t.Errorf("unexpected release decoded: %+v", release)
	}
	if release.CommitMessage != nil {
		t.Errorf("expected nil commit message, got %v", *release.CommitMessage)
	}
}

func TestReleaseUpsert(t *testing.T) {
	var gotPayload models.ReleasePayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" || r.URL.Path != "/releases/acme/prod" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(models.ReleasesData{
			"acme": {
				"prod": {Branch: "main", Version: "2.1.0", Build: 5, Date: "2024-02-01", CommitMessage: commitPtr("fix login")},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	data, err := client.Releases.Upsert(context.Background(), "acme", "prod", models.Release{
		Branch: "main", Version: "2.1.0", Build: 5, Date: "2024-02-01", CommitMessage: commitPtr("fix login"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotPayload.Client != "acme" || gotPayload.Environment != "prod" {
		t.Errorf("expected payload to carry client/environment, got %+v", gotPayload)
	}
	if gotPayload.Branch != "main" || gotPayload.Version != "2.1.0" {
		t.Errorf("expected payload to carry release fields, got %+v", gotPayload)
	}

	if data["acme"]["prod"].Build != 5 {
		t.Errorf("expected server map decoded, got %+v", data)
	}
}

func TestReleaseDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" || r.URL.Path != "/releases/acme/prod" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.ReleasesData{})
	}))
	defer server.Close()

	client := newTestClient(server)
	data, err := client.Releases.Delete(context.Background(), "acme", "prod")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(data) != 0 {
		t.Errorf("expected empty map, got %+v", data)
	}
}

func TestReleasePathEscaping(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(models.ReleasesData{})
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.Releases.Delete(context.Background(), "acme co", "prod")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotPath != "/releases/acme%20co/prod" {
		t.Errorf("expected escaped path, got %s", gotPath)
	}
}

func TestAPIErrorSingleMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "branch is required"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.Releases.Fetch(context.Background())

	var apiErr *services.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "branch is required" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestAPIErrorMessageArrayJoined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": ["branch is required", "version is required"]}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.Releases.Fetch(context.Background())

	var apiErr *services.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "branch is required, version is required" {
		t.Errorf("expected joined message, got %q", apiErr.Message)
	}
}

func TestAPIErrorFallbackToStatusText(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "unparseable body", body: "<html>nope</html>"},
		{name: "no message field", body: `{"error": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server)
			_, err := client.Releases.Fetch(context.Background())

			var apiErr *services.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Message != http.StatusText(http.StatusNotFound) {
				t.Errorf("expected status text fallback, got %q", apiErr.Message)
			}
		})
	}
}

func TestDecodeErrorOnMalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.Releases.Fetch(context.Background())

	var decodeErr *services.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestFetchWithoutTokenMakesNoRequest(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := verto.NewClient(verto.StaticToken(""), verto.WithBaseURL(server.URL))
	_, err := client.Releases.Fetch(context.Background())

	if !errors.Is(err, verto.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected zero requests, got %d", calls)
	}
}
