package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchSendsBrowserlessRequest(t *testing.T) {
	var gotMethod, gotToken, gotStealth, gotTarget string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotToken = r.URL.Query().Get("token")
		gotStealth = r.URL.Query().Get("stealth")

		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("Expected JSON body, got: %s", body)
		}
		gotTarget = payload["url"]

		w.Write([]byte("<html><body>rendered</body></html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", nil)
	data, err := client.Fetch(context.Background(), "https://www.beehive.govt.nz/release/example")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("Expected POST request, got %s", gotMethod)
	}
	if gotToken != "secret-token" {
		t.Errorf("Expected token query parameter, got %q", gotToken)
	}
	if gotStealth != "true" {
		t.Errorf("Expected stealth=true query parameter, got %q", gotStealth)
	}
	if gotTarget != "https://www.beehive.govt.nz/release/example" {
		t.Errorf("Expected target URL in body, got %q", gotTarget)
	}
	if string(data) != "<html><body>rendered</body></html>" {
		t.Errorf("Expected response body to be returned, got %q", data)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", nil)
	_, err := client.Fetch(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("Expected error for non-success status")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got: %v", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", statusErr.Code)
	}
}

func TestFetchUnreachableService(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "secret-token", nil)
	_, err := client.Fetch(context.Background(), "https://example.com")
	if err == nil {
		t.Error("Expected error for unreachable scrape service")
	}
}
