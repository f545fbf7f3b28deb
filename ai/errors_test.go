package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"deadline", context.DeadlineExceeded, ErrorKindTimeout},
		{"cancellation", context.Canceled, ErrorKindTimeout},
		{"empty response", ErrEmptyResponse, ErrorKindResponse},
		{"unauthorized", errors.New("API returned 401 Unauthorized"), ErrorKindAuth},
		{"bad api key", errors.New("invalid api key provided"), ErrorKindAuth},
		{"missing model", errors.New(`model not found: "nope"`), ErrorKindConfig},
		{"timeout string", errors.New("request timeout exceeded"), ErrorKindTimeout},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorKindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provErr := ClassifyError("openai", tt.err)
			assert.Equal(t, tt.want, provErr.Kind)
			assert.ErrorIs(t, provErr, tt.err)
		})
	}
}

func TestProviderErrorRetryable(t *testing.T) {
	retryable := &ProviderError{Kind: ErrorKindNetwork, Backend: "ollama", Err: errors.New("refused")}
	assert.True(t, retryable.Retryable())
	assert.True(t, IsRetryable(retryable))

	auth := &ProviderError{Kind: ErrorKindAuth, Backend: "openai", Err: errors.New("401")}
	assert.False(t, auth.Retryable())
	assert.False(t, IsRetryable(auth))

	config := &ProviderError{Kind: ErrorKindConfig, Backend: "openai", Err: errors.New("model not found")}
	assert.False(t, IsRetryable(config))

	// Unclassified errors default to retryable.
	assert.True(t, IsRetryable(errors.New("mystery")))
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{Kind: ErrorKindTimeout, Backend: "ollama", Err: context.DeadlineExceeded}
	require.Contains(t, err.Error(), "ollama")
	require.Contains(t, err.Error(), "timeout")
}
