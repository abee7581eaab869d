package translate

import (
	"context"
	"sync"
)

// Mock implements Translator for testing.
type Mock struct {
	// TranslateFunc is called when Translate is invoked. If nil, the input
	// text is returned with a "[target]" prefix so translation is visible.
	TranslateFunc func(ctx context.Context, text, sourceLang, targetLang string) (string, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a Translate invocation.
type MockCall struct {
	Text       string
	SourceLang string
	TargetLang string
}

// Translate records the call and delegates to TranslateFunc.
func (m *Mock) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, SourceLang: sourceLang, TargetLang: targetLang})
	m.mu.Unlock()
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, sourceLang, targetLang)
	}
	return "[" + targetLang + "] " + text, nil
}

// Calls returns all recorded invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Translate calls.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Verify Mock implements Translator at compile time.
var _ Translator = (*Mock)(nil)
