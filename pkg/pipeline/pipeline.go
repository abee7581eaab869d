// Package pipeline runs one voice query end to end:
//
//	ingest → transcription → reply → voice resolution → synthesis → cleanup
//
// Stages are strictly sequential; each consumes the previous stage's
// output. A failed stage short-circuits the run into a stage-tagged Error,
// except for reply generation and translation, which absorb their own
// failures with apology text. Uploaded audio is deleted best-effort on
// every exit path that reached upload, including cancellation.
package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/voxlane/voxlane/pkg/storage"
	"github.com/voxlane/voxlane/pkg/synth"
	"github.com/voxlane/voxlane/pkg/transcribe"
	"github.com/voxlane/voxlane/pkg/voices"
)

// Transcriber drives one transcription job to completion.
type Transcriber interface {
	Run(ctx context.Context, jobID, audioURI string) (*transcribe.Result, error)
}

// Replier produces reply text for a transcript. Implementations absorb
// their own failures; Reply never errors.
type Replier interface {
	Reply(ctx context.Context, transcript, language string) string
}

// Resolver picks a voice profile and spoken text for a reply.
type Resolver interface {
	Resolve(ctx context.Context, detectedLang, replyText string) voices.Resolution
}

// Request is one inbound voice query.
type Request struct {
	// ID is the opaque request identifier; it namespaces storage keys.
	ID string

	// AudioBase64 is the audio payload in its transport encoding.
	AudioBase64 string
}

// Result is the sole externally observable output of a successful run.
type Result struct {
	RequestID   string `json:"request_id"`
	Transcript  string `json:"transcript"`
	ReplyText   string `json:"reply_text"`
	SpokenText  string `json:"spoken_text"`
	AudioBase64 string `json:"audio_base64"`
	Language    string `json:"language"`
	Translated  bool   `json:"translated"`
	LatencyMs   int64  `json:"latency_ms"`
}

// Pipeline wires the stage collaborators for voice query processing.
// One Pipeline serves all requests; it holds no per-request state.
type Pipeline struct {
	store       storage.Store
	transcriber Transcriber
	replier     Replier
	resolver    Resolver
	synthesizer synth.Synthesizer
	metrics     *Collector
	logger      *slog.Logger
}

// New creates a Pipeline over its collaborators.
func New(store storage.Store, transcriber Transcriber, replier Replier, resolver Resolver, synthesizer synth.Synthesizer, metrics *Collector, logger *slog.Logger) *Pipeline {
	if metrics == nil {
		metrics = NewCollector()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:       store,
		transcriber: transcriber,
		replier:     replier,
		resolver:    resolver,
		synthesizer: synthesizer,
		metrics:     metrics,
		logger:      logger.With("component", "pipeline"),
	}
}

// Metrics returns the pipeline's metrics collector.
func (p *Pipeline) Metrics() *Collector {
	return p.metrics
}

// Process runs one voice query. It returns either a complete Result or a
// stage-tagged *Error, never both halves of a partial answer.
func (p *Pipeline) Process(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	logger := p.logger.With("request_id", req.ID)
	p.metrics.ObserveRequest()

	// Ingest
	audio, err := decodeAudio(req.AudioBase64)
	if err != nil {
		return nil, p.fail(StageIngest, err, nil)
	}

	key := fmt.Sprintf("inbound/%s.mp3", req.ID)
	stageStart := time.Now()
	ref, err := p.store.Put(ctx, key, audio, "audio/mpeg")
	if err != nil {
		return nil, p.fail(StageIngest, err, nil)
	}
	p.metrics.ObserveStage(StageIngest, time.Since(stageStart))

	// The object must not outlive the request, whatever happens below.
	// Cleanup runs even when ctx was cancelled mid-flight.
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := p.store.Delete(cleanupCtx, ref.Key); err != nil {
			logger.Warn("cleanup failed", "key", ref.Key, "error", err)
		}
	}()

	// Transcription
	stageStart = time.Now()
	tr, err := p.transcriber.Run(ctx, "voxlane-"+req.ID, ref.URI)
	if err != nil {
		return nil, p.fail(StageTranscription, err, nil)
	}
	p.metrics.ObserveStage(StageTranscription, time.Since(stageStart))
	logger.Info("transcribed query", "language", tr.Language, "chars", len(tr.Transcript))

	// Reply (failure absorbed by the Replier)
	stageStart = time.Now()
	replyText := p.replier.Reply(ctx, tr.Transcript, tr.Language)
	p.metrics.ObserveStage(StageReply, time.Since(stageStart))

	// Voice resolution (translation failure absorbed by the Resolver)
	res := p.resolver.Resolve(ctx, tr.Language, replyText)
	if res.Translated {
		logger.Info("reply translated for synthesis",
			"from", tr.Language,
			"voice_language", res.Profile.Language,
		)
	}

	// Synthesis
	stageStart = time.Now()
	out, err := p.synthesizer.Synthesize(ctx, res.SpokenText, res.Profile)
	if err != nil {
		var unknown *synth.UnknownProviderError
		if errors.As(err, &unknown) {
			logger.Error("invariant violation: unknown synthesis provider", "error", err)
		}
		return nil, p.fail(StageSynthesis, err, &partial{
			transcript: tr.Transcript,
			replyText:  replyText,
			language:   tr.Language,
		})
	}
	p.metrics.ObserveStage(StageSynthesis, time.Since(stageStart))

	total := time.Since(start)
	p.metrics.ObserveSuccess(total)
	logger.Info("voice query completed",
		"language", tr.Language,
		"provider", string(out.Provider),
		"audio_bytes", len(out.Audio),
		"latency_ms", total.Milliseconds(),
	)

	return &Result{
		RequestID:   req.ID,
		Transcript:  tr.Transcript,
		ReplyText:   replyText,
		SpokenText:  res.SpokenText,
		AudioBase64: base64.StdEncoding.EncodeToString(out.Audio),
		Language:    tr.Language,
		Translated:  res.Translated,
		LatencyMs:   total.Milliseconds(),
	}, nil
}

// partial carries diagnostic fields gathered before a failure.
type partial struct {
	transcript string
	replyText  string
	language   string
}

// fail records the failure and builds the error envelope.
func (p *Pipeline) fail(stage Stage, err error, diag *partial) *Error {
	p.metrics.ObserveFailure(stage)
	e := &Error{
		Stage:  stage,
		Status: statusFor(stage, err),
		Err:    err,
	}
	if diag != nil {
		e.Transcript = diag.transcript
		e.ReplyText = diag.replyText
		e.Language = diag.language
	}
	return e
}

// decodeAudio validates and decodes the transport-encoded payload.
func decodeAudio(payload string) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyAudio
	}
	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}
	return audio, nil
}
