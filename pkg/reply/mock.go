package reply

import (
	"context"
	"sync"
)

// MockLLM implements LLM for testing.
type MockLLM struct {
	// Response is returned by Generate when Err is nil.
	Response string

	// Err, when set, is returned by every Generate call.
	Err error

	mu      sync.Mutex
	prompts []string
}

// Generate records the prompt and returns the fixed response or error.
func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Prompts returns the prompts received so far.
func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// CallCount returns the number of Generate calls.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Verify MockLLM implements LLM at compile time.
var _ LLM = (*MockLLM)(nil)
