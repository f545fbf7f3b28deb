// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownBackend is returned for a backend name the factory does not recognize.
	ErrUnknownBackend = errors.New("unknown provider backend")

	// ErrInvalidMaxAttempts is returned when retry is configured with a non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrEmptyResponse is returned when the model produced no usable output.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// ErrorKind classifies a provider failure for retry decisions.
type ErrorKind int

const (
	// ErrorKindTimeout covers deadline and cancellation failures.
	ErrorKindTimeout ErrorKind = iota + 1
	// ErrorKindNetwork covers transport-level failures.
	ErrorKindNetwork
	// ErrorKindAuth covers rejected credentials. Never retried.
	ErrorKindAuth
	// ErrorKindConfig covers invalid provider configuration. Never retried.
	ErrorKindConfig
	// ErrorKindResponse covers malformed or empty model output.
	ErrorKindResponse
)

// String returns the lowercase name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTimeout:
		return "timeout"
	case ErrorKindNetwork:
		return "network"
	case ErrorKindAuth:
		return "auth"
	case ErrorKindConfig:
		return "config"
	case ErrorKindResponse:
		return "response"
	}
	return "unknown"
}

// ProviderError wraps a backend failure with its classification.
type ProviderError struct {
	Kind    ErrorKind
	Backend string // "openai" or "ollama"
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider %s error: %v", e.Backend, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt could plausibly succeed.
// Credential and configuration failures are deterministic and are
// surfaced immediately.
func (e *ProviderError) Retryable() bool {
	switch e.Kind {
	case ErrorKindAuth, ErrorKindConfig:
		return false
	}
	return true
}

// IsRetryable reports whether err may be retried. Errors that are not
// ProviderErrors are treated as retryable transient failures.
func IsRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable()
	}
	return true
}

// ClassifyError wraps a raw backend failure in a ProviderError with its
// best-guess kind. Backend clients surface transport and API errors as
// opaque strings, so classification is necessarily heuristic.
func ClassifyError(backend string, err error) *ProviderError {
	kind := ErrorKindNetwork

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = ErrorKindTimeout
	case errors.Is(err, ErrEmptyResponse):
		kind = ErrorKindResponse
	default:
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "401"), strings.Contains(msg, "unauthorized"),
			strings.Contains(msg, "api key"), strings.Contains(msg, "authentication"):
			kind = ErrorKindAuth
		case strings.Contains(msg, "model not found"), strings.Contains(msg, "no such model"),
			strings.Contains(msg, "404"):
			kind = ErrorKindConfig
		case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
			kind = ErrorKindTimeout
		}
	}

	return &ProviderError{Kind: kind, Backend: backend, Err: err}
}
