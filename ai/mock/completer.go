package mock

import (
	"context"
	"fmt"
	"sync/atomic"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, a canned response echoing the prompt length is returned.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	callCount atomic.Int64
}

// NewMockCompleter creates a mock completer with default behavior.
// Note: Returns concrete type to allow test assertions on call counts.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete returns the injected behavior or a deterministic canned response.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.callCount.Add(1)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("mock response (%d chars)", len(prompt)), nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom function.
func (m *MockCompleter) Reset() {
	m.callCount.Store(0)
	m.CompleteFunc = nil
}
