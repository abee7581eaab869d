package storage

import (
	"context"
	"fmt"
	"sync"
)

// Mock implements Store for testing.
// Methods can be customized via function fields; by default objects are
// kept in an in-memory map.
type Mock struct {
	// PutFunc is called when Put is invoked. If nil, the object is stored
	// in memory and a synthetic s3:// reference is returned.
	PutFunc func(ctx context.Context, key string, data []byte, contentType string) (Ref, error)

	// DeleteFunc is called when Delete is invoked. If nil, the object is
	// removed from the in-memory map.
	DeleteFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	objects map[string][]byte
	calls   []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method string
	Key    string
}

// NewMock creates an in-memory mock store.
func NewMock() *Mock {
	return &Mock{objects: make(map[string][]byte)}
}

// Put stores the object in memory (or calls PutFunc) and records the call.
func (m *Mock) Put(ctx context.Context, key string, data []byte, contentType string) (Ref, error) {
	m.record("Put", key)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, data, contentType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return Ref{Key: key, URI: fmt.Sprintf("s3://mock/%s", key)}, nil
}

// Delete removes the object (or calls DeleteFunc) and records the call.
func (m *Mock) Delete(ctx context.Context, key string) error {
	m.record("Delete", key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Object returns the stored bytes for key, if any.
func (m *Mock) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// Reset clears recorded calls and stored objects.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.objects = make(map[string][]byte)
}

func (m *Mock) record(method, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Key: key})
}

// Verify Mock implements Store at compile time.
var _ Store = (*Mock)(nil)
