package testutil

import (
	"context"
	"sync"
)

// MockResolver returns canned payloads per descriptor and records calls
type MockResolver struct {
	ResolverName string
	Responses    map[string][]byte
	Errors       map[string]error

	mu    sync.Mutex
	calls []string
}

// NewMockResolver creates an empty mock resolver
func NewMockResolver() *MockResolver {
	return &MockResolver{
		ResolverName: "mock",
		Responses:    make(map[string][]byte),
		Errors:       make(map[string]error),
	}
}

// Fetch returns the configured error or payload for descriptor. Unknown
// descriptors yield a nil payload.
func (m *MockResolver) Fetch(ctx context.Context, descriptor string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, descriptor)
	m.mu.Unlock()

	if err, ok := m.Errors[descriptor]; ok {
		return nil, err
	}
	return m.Responses[descriptor], nil
}

// Name returns the configured name
func (m *MockResolver) Name() string {
	return m.ResolverName
}

// Calls returns the descriptors passed to Fetch in order
func (m *MockResolver) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Reset clears the recorded calls
func (m *MockResolver) Reset() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}
