package reply

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini()
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestGeminiGenerate(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "  The sky is blue because of Rayleigh scattering.  "}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewGemini(
		WithAPIKey("test-key"),
		WithBaseURL(server.URL),
		WithModel("gemini-2.0-flash"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	text, err := client.Generate(context.Background(), "why is the sky blue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "The sky is blue because of Rayleigh scattering." {
		t.Errorf("unexpected text: %q", text)
	}
	if !strings.Contains(gotPath, "gemini-2.0-flash:generateContent") {
		t.Errorf("unexpected request path: %q", gotPath)
	}
}

func TestGeminiGenerateNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client, err := NewGemini(WithAPIKey("test-key"), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	_, err = client.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestGeminiGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded", "code": 429}}`))
	}))
	defer server.Close()

	client, err := NewGemini(WithAPIKey("test-key"), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	_, err = client.Generate(context.Background(), "hello")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "quota exceeded" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}
