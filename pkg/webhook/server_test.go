package webhook

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voxlane/voxlane/pkg/pipeline"
	"github.com/voxlane/voxlane/pkg/reply"
	"github.com/voxlane/voxlane/pkg/storage"
	"github.com/voxlane/voxlane/pkg/synth"
	"github.com/voxlane/voxlane/pkg/transcribe"
	"github.com/voxlane/voxlane/pkg/translate"
	"github.com/voxlane/voxlane/pkg/voices"
)

// scriptedTranscriber returns a fixed result or error.
type scriptedTranscriber struct {
	result *transcribe.Result
	err    error
}

func (s *scriptedTranscriber) Run(ctx context.Context, jobID, audioURI string) (*transcribe.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(t *testing.T, transcriber pipeline.Transcriber) *Server {
	t.Helper()
	replier := reply.NewGenerator(&reply.MockLLM{Response: "Here is your answer."}, nil)
	resolver := voices.NewResolver(voices.DefaultTable(), &translate.Mock{}, "en-US", nil)
	p := pipeline.New(storage.NewMock(), transcriber, replier, resolver, synth.NewMock(), nil, nil)
	return NewServer(p, "secret-token", "test", nil)
}

func queryBody(t *testing.T, requestID string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"request_id": requestID,
		"audio_data": base64.StdEncoding.EncodeToString([]byte("fake mp3 bytes")),
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestVerifyChallenge(t *testing.T) {
	server := newTestServer(t, &scriptedTranscriber{})

	t.Run("valid token echoes challenge", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
		resp, err := server.App().Test(req)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "12345" {
			t.Errorf("expected challenge echo, got %q", string(body))
		}
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
		resp, err := server.App().Test(req)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("missing mode rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/webhook?hub.verify_token=secret-token&hub.challenge=12345", nil)
		resp, err := server.App().Test(req)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", resp.StatusCode)
		}
	})
}

func TestVoiceQuerySuccess(t *testing.T) {
	server := newTestServer(t, &scriptedTranscriber{
		result: &transcribe.Result{Transcript: "what time is it", Language: "en-US"},
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(queryBody(t, "req-1")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var result pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.RequestID != "req-1" {
		t.Errorf("unexpected request id: %q", result.RequestID)
	}
	if result.Transcript != "what time is it" {
		t.Errorf("unexpected transcript: %q", result.Transcript)
	}
	if result.AudioBase64 == "" {
		t.Error("expected audio in response")
	}
}

func TestVoiceQueryBase64WrappedBody(t *testing.T) {
	server := newTestServer(t, &scriptedTranscriber{
		result: &transcribe.Result{Transcript: "hello", Language: "en-US"},
	})

	wrapped := base64.StdEncoding.EncodeToString(queryBody(t, "req-2"))
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(wrapped))
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
}

func TestVoiceQueryGeneratesRequestID(t *testing.T) {
	server := newTestServer(t, &scriptedTranscriber{
		result: &transcribe.Result{Transcript: "hello", Language: "en-US"},
	})

	body, _ := json.Marshal(map[string]string{
		"audio_data": base64.StdEncoding.EncodeToString([]byte("fake mp3 bytes")),
	})
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var result pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.RequestID == "" {
		t.Error("expected a generated request id")
	}
}

func TestVoiceQueryErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantStage  string
	}{
		{
			name:       "transcription timeout",
			err:        transcribe.ErrTimedOut,
			wantStatus: http.StatusInternalServerError,
			wantStage:  "transcription",
		},
		{
			name:       "job failed",
			err:        &transcribe.JobError{JobID: "j", Reason: "bad media"},
			wantStatus: http.StatusInternalServerError,
			wantStage:  "transcription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, &scriptedTranscriber{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(queryBody(t, "req-err")))
			req.Header.Set("Content-Type", "application/json")
			resp, err := server.App().Test(req, -1)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}

			var env struct {
				Error string `json:"error"`
				Stage string `json:"stage"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
				t.Fatal(err)
			}
			if env.Stage != tt.wantStage {
				t.Errorf("expected stage %q, got %q", tt.wantStage, env.Stage)
			}
			if env.Error == "" {
				t.Error("expected error message in envelope")
			}
		})
	}
}

func TestVoiceQueryBadBody(t *testing.T) {
	server := newTestServer(t, &scriptedTranscriber{})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	resp, err := server.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestVoiceQueryEmptyAudio(t *testing.T) {
	server := newTestServer(t, &scriptedTranscriber{})

	body, _ := json.Marshal(map[string]string{"request_id": "req-3", "audio_data": ""})
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var env struct {
		Stage string `json:"stage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if env.Stage != "ingest" {
		t.Errorf("expected ingest stage, got %q", env.Stage)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, &scriptedTranscriber{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := server.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.Version != "test" {
		t.Errorf("unexpected health payload: %+v", health)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, &scriptedTranscriber{
		result: &transcribe.Result{Transcript: "hello", Language: "en-US"},
	})

	// Drive one request through so counters are non-zero.
	post := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(queryBody(t, "req-m")))
	post.Header.Set("Content-Type", "application/json")
	if _, err := server.App().Test(post, -1); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := server.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	text := string(body)
	if !strings.Contains(text, "voxlane_requests_total 1") {
		t.Errorf("expected request counter in metrics output:\n%s", text)
	}
	if !strings.Contains(text, "voxlane_failures_total 0") {
		t.Errorf("expected failure counter in metrics output:\n%s", text)
	}
}
