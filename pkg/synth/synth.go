// Package synth turns spoken text into audio through one of exactly two
// backends: Amazon Polly (managed cloud TTS) or ElevenLabs (keyed HTTP
// TTS). The Dispatcher selects the backend from the voice profile's
// provider tag; an unrecognized tag is an internal invariant violation,
// never a user-facing condition.
package synth

import (
	"context"

	"github.com/voxlane/voxlane/pkg/voices"
)

// Result is a complete synthesis result.
type Result struct {
	// Audio contains the raw audio bytes (mp3).
	Audio []byte

	// Provider identifies the backend that produced the audio.
	Provider voices.Provider

	// LatencyMs is the synthesis round-trip in milliseconds.
	LatencyMs int64
}

// Synthesizer converts text to speech using the given voice profile.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, profile voices.Profile) (*Result, error)
}
