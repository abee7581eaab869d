package reply

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGeneratorReply(t *testing.T) {
	llm := &MockLLM{Response: "It's about 20 degrees outside."}
	gen := NewGenerator(llm, nil)

	text := gen.Reply(context.Background(), "what's the weather like", "en-US")
	if text != "It's about 20 degrees outside." {
		t.Errorf("unexpected reply: %q", text)
	}

	prompts := llm.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(prompts))
	}
	if !strings.Contains(prompts[0], "what's the weather like") {
		t.Error("prompt must contain the transcript")
	}
	if !strings.Contains(prompts[0], "en-US") {
		t.Error("prompt must carry the detected language code")
	}
}

func TestGeneratorAbsorbsModelFailure(t *testing.T) {
	llm := &MockLLM{Err: errors.New("deadline exceeded")}
	gen := NewGenerator(llm, nil)

	text := gen.Reply(context.Background(), "what's the weather like", "en-US")
	if text != ApologyText {
		t.Errorf("expected apology text, got %q", text)
	}
}
