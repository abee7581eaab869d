package synth

import (
	"context"
	"log/slog"

	"github.com/voxlane/voxlane/pkg/voices"
)

// Dispatcher routes synthesis to the backend named by the profile's
// provider tag. The set of backends is fixed at construction.
type Dispatcher struct {
	polly      Synthesizer
	elevenlabs Synthesizer
	logger     *slog.Logger
}

// NewDispatcher creates a Dispatcher over the two backends.
func NewDispatcher(polly, elevenlabs Synthesizer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		polly:      polly,
		elevenlabs: elevenlabs,
		logger:     logger.With("component", "synth.dispatcher"),
	}
}

// Synthesize dispatches on the provider tag. An unknown tag returns
// *UnknownProviderError; with a correct resolver this cannot happen.
func (d *Dispatcher) Synthesize(ctx context.Context, text string, profile voices.Profile) (*Result, error) {
	switch profile.Provider {
	case voices.ProviderPolly:
		return d.polly.Synthesize(ctx, text, profile)
	case voices.ProviderElevenLabs:
		return d.elevenlabs.Synthesize(ctx, text, profile)
	default:
		d.logger.Error("voice profile carries unknown provider tag",
			"provider", string(profile.Provider),
			"voice", profile.VoiceID,
		)
		return nil, &UnknownProviderError{Provider: profile.Provider}
	}
}

// Verify Dispatcher implements Synthesizer at compile time.
var _ Synthesizer = (*Dispatcher)(nil)
