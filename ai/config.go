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
	"errors"
	"strings"
	"time"
)

// Backend names a concrete provider implementation.
type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendOllama Backend = "ollama"
)

// Config holds configuration for the language-model provider.
type Config struct {
	// Backend selects the provider implementation.
	Backend Backend

	// Model is the model identifier to use for completions.
	// Example: "gpt-4o-mini", "llama3.2:3b"
	Model string

	// Host is the base URL of the provider API. For the openai backend
	// a /v1 suffix is added when missing; the ollama backend uses the
	// server URL as-is.
	Host string

	// Token is the API credential. Local OpenAI-compatible servers that
	// skip authentication accept any non-empty value.
	Token string

	// Timeout bounds a single completion call.
	// Default: 30s
	Timeout time.Duration

	// MaxAttempts is the total number of tries per completion, the
	// first call included.
	// Default: 3
	MaxAttempts int

	// RetryDelay is the base backoff delay; it doubles on each retry.
	// Default: 500ms
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBackend selects the provider implementation.
func WithBackend(backend Backend) ConfigOption {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithModel sets the completion model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithHost sets the provider API base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API credential.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxAttempts sets the total tries per completion.
func WithMaxAttempts(attempts int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = attempts
	}
}

// WithRetryDelay sets the base backoff delay.
func WithRetryDelay(delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config targeting a local Ollama server,
// which needs no credentials and works out of the box.
func DefaultConfig() *Config {
	return &Config{
		Backend:     BackendOllama,
		Model:       "llama3.2:3b",
		Host:        "http://localhost:11434",
		Timeout:     30 * time.Second,
		MaxAttempts: 3,
		RetryDelay:  500 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithBackend(BackendOpenAI),
//	    WithModel("gpt-4o-mini"),
//	    WithToken(token),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. The
// openai backend requires a /v1 suffix on the host, which most
// OpenAI-compatible servers (Ollama, LocalAI, vLLM) expect as well.
func (c *Config) Normalize() {
	c.Backend = Backend(strings.ToLower(strings.TrimSpace(string(c.Backend))))

	if c.Backend == BackendOpenAI && c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Backend {
	case BackendOpenAI, BackendOllama:
	default:
		return ErrUnknownBackend
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Timeout <= 0 {
		return errors.New("ai config: Timeout must be positive")
	}
	if c.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if c.RetryDelay <= 0 {
		return errors.New("ai config: RetryDelay must be positive")
	}
	return nil
}
