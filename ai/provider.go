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
	"log/slog"
	"time"
)

// resilientCompleter wraps a backend client with a per-call timeout and
// bounded retry. Non-retryable failures pass through on the first try.
type resilientCompleter struct {
	inner       Completer
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

var _ Completer = (*resilientCompleter)(nil)

// NewResilientCompleter wraps a backend client with the retry and
// timeout policy from config. The config must already be validated.
func NewResilientCompleter(inner Completer, config *Config) Completer {
	return &resilientCompleter{
		inner:       inner,
		timeout:     config.Timeout,
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
		logger:      slog.Default().With("component", "ai-completer"),
	}
}

// Complete runs the wrapped client under the configured policy.
func (r *resilientCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var response string

	err := RetryWithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		start := time.Now()
		out, err := r.inner.Complete(callCtx, prompt)
		if err != nil {
			r.logger.Warn("completion attempt failed", "elapsed", time.Since(start), "err", err)
			return err
		}
		response = out
		return nil
	}, r.maxAttempts, r.retryDelay)

	if err != nil {
		return "", err
	}
	return response, nil
}
