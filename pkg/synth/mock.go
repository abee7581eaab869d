package synth

import (
	"bytes"
	"context"
	"sync"

	"github.com/voxlane/voxlane/pkg/voices"
)

// Mock implements Synthesizer for testing.
type Mock struct {
	// SynthesizeFunc is called when Synthesize is invoked. If nil, a
	// deterministic fake mp3 payload is returned.
	SynthesizeFunc func(ctx context.Context, text string, profile voices.Profile) (*Result, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a Synthesize invocation.
type MockCall struct {
	Text    string
	Profile voices.Profile
}

// NewMock creates a mock backend producing fake audio.
func NewMock() *Mock {
	return &Mock{}
}

// WithError returns a mock that always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		SynthesizeFunc: func(ctx context.Context, text string, profile voices.Profile) (*Result, error) {
			return nil, err
		},
	}
}

// Synthesize records the call and returns fake audio.
func (m *Mock) Synthesize(ctx context.Context, text string, profile voices.Profile) (*Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, Profile: profile})
	m.mu.Unlock()

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, profile)
	}

	// A recognizable payload so tests can assert audio presence.
	audio := bytes.Repeat([]byte("mp3"), len(text)+1)
	return &Result{Audio: audio, Provider: profile.Provider, LatencyMs: 1}, nil
}

// Calls returns all recorded invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Synthesize calls.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent call, or nil if none.
func (m *Mock) LastCall() *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Verify Mock implements Synthesizer at compile time.
var _ Synthesizer = (*Mock)(nil)
