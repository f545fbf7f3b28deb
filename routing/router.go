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

package routing

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/poiesic/vitalis/core"
)

// defaultQueryTimeout bounds one query end to end, classification and
// agent response included.
const defaultQueryTimeout = 2 * time.Minute

// degradedResponse is returned when the provider cannot answer.
const degradedResponse = "I can't reach the language model right now, so I can't answer that. " +
	"Your health data is safe and ingestion is unaffected; please try again shortly."

// Router is the single entry point for queries. It classifies,
// dispatches to exactly one agent, and absorbs provider failures into
// degraded results.
type Router struct {
	classifier *Classifier
	registry   *Registry
	timeout    time.Duration
	logger     *slog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithQueryTimeout bounds one RouteQuery call end to end.
func WithQueryTimeout(timeout time.Duration) RouterOption {
	return func(r *Router) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithRouterLogger sets the router's logger.
func WithRouterLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRouter creates a router over a classifier and an agent registry.
func NewRouter(classifier *Classifier, registry *Registry, opts ...RouterOption) (*Router, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	r := &Router{
		classifier: classifier,
		registry:   registry,
		timeout:    defaultQueryTimeout,
		logger:     slog.Default().With("component", "query-router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RouteQuery answers one query. The only error cases are an empty query
// and a cancelled context; a provider failure produces a degraded
// result with Degraded set instead of an error.
func (r *Router) RouteQuery(ctx context.Context, query string) (*core.QueryResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result := &core.QueryResult{
		Id:    uuid.NewString(),
		Query: query,
	}

	intent, confidence := r.classifier.Classify(ctx, query)
	result.Intent = intent
	result.Confidence = confidence

	agent := r.registry.AgentFor(intent)
	result.AgentID = agent.ID()
	result.AgentName = agent.Name()

	r.logger.Debug("dispatching query",
		"query_id", result.Id,
		"intent", intent,
		"confidence", confidence,
		"agent", agent.ID())

	start := time.Now()
	response, err := agent.Respond(ctx, query)
	result.ProviderLatency = time.Since(start)

	if err != nil {
		r.logger.Warn("agent response degraded",
			"query_id", result.Id,
			"agent", agent.ID(),
			"err", err)
		result.Response = degradedResponse
		result.Degraded = true
		return result, nil
	}

	result.Response = response
	r.logger.Debug("query answered",
		"query_id", result.Id,
		"agent", agent.ID(),
		"latency", result.ProviderLatency)
	return result, nil
}
