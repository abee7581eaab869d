package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/voxlane/voxlane/pkg/voices"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// VoiceSettings controls voice characteristics for ElevenLabs synthesis.
type VoiceSettings struct {
	Stability       float64
	SimilarityBoost float64
	Style           float64
	SpeakerBoost    bool
}

// DefaultVoiceSettings returns sensible defaults for voice synthesis.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0.0,
		SpeakerBoost:    true,
	}
}

// ElevenLabsConfig configures the ElevenLabs backend.
type ElevenLabsConfig struct {
	APIKey        string
	BaseURL       string
	VoiceSettings VoiceSettings
	Timeout       time.Duration
	Logger        *slog.Logger
}

// ElevenLabsOption is a functional option for configuring the backend.
type ElevenLabsOption func(*ElevenLabsConfig)

// WithAPIKey sets the API key.
func WithAPIKey(key string) ElevenLabsOption {
	return func(c *ElevenLabsConfig) { c.APIKey = key }
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) ElevenLabsOption {
	return func(c *ElevenLabsConfig) { c.BaseURL = url }
}

// WithVoiceSettings sets voice characteristics.
func WithVoiceSettings(s VoiceSettings) ElevenLabsOption {
	return func(c *ElevenLabsConfig) { c.VoiceSettings = s }
}

// WithTimeout sets the synthesis request timeout.
func WithTimeout(d time.Duration) ElevenLabsOption {
	return func(c *ElevenLabsConfig) { c.Timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ElevenLabsOption {
	return func(c *ElevenLabsConfig) { c.Logger = l }
}

// ElevenLabs implements Synthesizer for the ElevenLabs TTS API.
//
// The backend may be constructed without an API key; synthesis then fails
// with ErrNotConfigured only when an ElevenLabs voice is actually resolved.
type ElevenLabs struct {
	config ElevenLabsConfig
	client *http.Client
	logger *slog.Logger
}

// NewElevenLabs creates an ElevenLabs backend.
func NewElevenLabs(opts ...ElevenLabsOption) *ElevenLabs {
	cfg := ElevenLabsConfig{
		BaseURL:       defaultElevenLabsBaseURL,
		VoiceSettings: DefaultVoiceSettings(),
		Timeout:       10 * time.Second,
		Logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &ElevenLabs{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger.With("component", "synth.elevenlabs"),
	}
}

// Synthesize converts text to mp3 audio using the profile's voice and
// model. The profile's Engine field carries the ElevenLabs model ID.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string, profile voices.Profile) (*Result, error) {
	if e.config.APIKey == "" {
		return nil, WrapError(voices.ProviderElevenLabs, ErrNotConfigured)
	}

	start := time.Now()

	payload := map[string]interface{}{
		"text":     text,
		"model_id": profile.Engine,
		"voice_settings": map[string]interface{}{
			"stability":         e.config.VoiceSettings.Stability,
			"similarity_boost":  e.config.VoiceSettings.SimilarityBoost,
			"style":             e.config.VoiceSettings.Style,
			"use_speaker_boost": e.config.VoiceSettings.SpeakerBoost,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(voices.ProviderElevenLabs, fmt.Errorf("marshal payload: %w", err))
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", e.config.BaseURL, profile.VoiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(voices.ProviderElevenLabs, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("xi-api-key", e.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, WrapError(voices.ProviderElevenLabs, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, e.parseError(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(voices.ProviderElevenLabs, fmt.Errorf("read response: %w", err))
	}

	latency := time.Since(start).Milliseconds()
	e.logger.Debug("synthesized audio",
		"voice", profile.VoiceID,
		"model", profile.Engine,
		"bytes", len(audio),
		"latency_ms", latency,
	)

	return &Result{
		Audio:     audio,
		Provider:  voices.ProviderElevenLabs,
		LatencyMs: latency,
	}, nil
}

// parseError reads and parses an error response.
func (e *ElevenLabs) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Detail struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"detail"`
	}

	message := string(body)
	if json.Unmarshal(body, &errResp) == nil && errResp.Detail.Message != "" {
		message = errResp.Detail.Message
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Provider:   voices.ProviderElevenLabs,
	}
}

// Verify ElevenLabs implements Synthesizer at compile time.
var _ Synthesizer = (*ElevenLabs)(nil)
