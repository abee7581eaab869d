package reply

import (
	"context"
	"fmt"
	"log/slog"
)

// ApologyText is spoken when the model cannot produce a reply. Reply
// failure never aborts the pipeline.
const ApologyText = "I'm sorry, I wasn't able to come up with an answer just now. Please try asking again."

// LLM is the hosted language-model collaborator.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generator turns a transcript into reply text, absorbing model failures.
type Generator struct {
	llm    LLM
	logger *slog.Logger
}

// NewGenerator creates a Generator on top of an LLM client.
func NewGenerator(llm LLM, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		llm:    llm,
		logger: logger.With("component", "reply.generator"),
	}
}

// Reply answers the transcript in the detected language. Any model failure
// is logged and replaced by ApologyText; the error never propagates.
func (g *Generator) Reply(ctx context.Context, transcript, language string) string {
	text, err := g.llm.Generate(ctx, buildPrompt(transcript, language))
	if err != nil {
		g.logger.Warn("reply generation failed, using apology text",
			"language", language,
			"error", err,
		)
		return ApologyText
	}
	return text
}

// buildPrompt constructs the single-turn persona prompt.
func buildPrompt(transcript, language string) string {
	return fmt.Sprintf(
		"You are a friendly voice assistant. Answer the user's spoken question "+
			"helpfully and briefly, in at most three sentences, since your answer "+
			"will be read aloud. Answer in the same language as the question "+
			"(language code %s). Do not use markdown or lists.\n\nQuestion: %s",
		language, transcript,
	)
}
