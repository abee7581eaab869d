package synth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awspolly "github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"github.com/voxlane/voxlane/pkg/voices"
)

// pollyAPI is the slice of the Amazon Polly client the backend uses.
type pollyAPI interface {
	SynthesizeSpeech(ctx context.Context, in *awspolly.SynthesizeSpeechInput, optFns ...func(*awspolly.Options)) (*awspolly.SynthesizeSpeechOutput, error)
}

// Polly implements Synthesizer on Amazon Polly.
type Polly struct {
	api    pollyAPI
	logger *slog.Logger
}

// NewPolly creates a Polly backend from the given client.
func NewPolly(client *awspolly.Client, logger *slog.Logger) *Polly {
	if logger == nil {
		logger = slog.Default()
	}
	return &Polly{
		api:    client,
		logger: logger.With("component", "synth.polly"),
	}
}

// Synthesize converts text to mp3 audio using the profile's voice,
// language, and engine.
func (p *Polly) Synthesize(ctx context.Context, text string, profile voices.Profile) (*Result, error) {
	start := time.Now()

	out, err := p.api.SynthesizeSpeech(ctx, &awspolly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(profile.VoiceID),
		LanguageCode: types.LanguageCode(profile.Language),
		Engine:       types.Engine(profile.Engine),
		OutputFormat: types.OutputFormatMp3,
		TextType:     types.TextTypeText,
	})
	if err != nil {
		return nil, WrapError(voices.ProviderPolly, err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, WrapError(voices.ProviderPolly, fmt.Errorf("read audio stream: %w", err))
	}

	latency := time.Since(start).Milliseconds()
	p.logger.Debug("synthesized audio",
		"voice", profile.VoiceID,
		"language", profile.Language,
		"bytes", len(audio),
		"latency_ms", latency,
	)

	return &Result{
		Audio:     audio,
		Provider:  voices.ProviderPolly,
		LatencyMs: latency,
	}, nil
}

// Verify Polly implements Synthesizer at compile time.
var _ Synthesizer = (*Polly)(nil)
