package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vitalis/core"
)

// stubAgent is a minimal Agent for registry and router tests.
type stubAgent struct {
	id       string
	intent   core.Intent
	response string
	err      error
	calls    int
}

func (s *stubAgent) ID() string          { return s.id }
func (s *stubAgent) Name() string        { return s.id }
func (s *stubAgent) Intent() core.Intent { return s.intent }

func (s *stubAgent) Respond(ctx context.Context, query string) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestNewRegistryRequiresDefault(t *testing.T) {
	_, err := NewRegistry(nil)
	assert.ErrorIs(t, err, ErrDefaultAgentRequired)
}

func TestNewRegistryRejectsDuplicateIntents(t *testing.T) {
	general := &stubAgent{id: "general", intent: core.IntentGeneral}
	first := &stubAgent{id: "first", intent: core.IntentFitness}
	second := &stubAgent{id: "second", intent: core.IntentFitness}

	_, err := NewRegistry(general, first, second)
	assert.ErrorIs(t, err, ErrDuplicateIntent)
}

func TestRegistryDispatchesToExactlyOneAgent(t *testing.T) {
	general := &stubAgent{id: "general", intent: core.IntentGeneral}
	fitness := &stubAgent{id: "fitness", intent: core.IntentFitness}
	wellness := &stubAgent{id: "wellness", intent: core.IntentWellness}

	registry, err := NewRegistry(general, fitness, wellness)
	require.NoError(t, err)

	assert.Same(t, fitness, registry.AgentFor(core.IntentFitness))
	assert.Same(t, wellness, registry.AgentFor(core.IntentWellness))
	assert.Same(t, general, registry.AgentFor(core.IntentGeneral))

	// Unmapped intents fall back to the default agent.
	assert.Same(t, general, registry.AgentFor(core.IntentNutrition))
}

func TestRegistryAgentsSnapshot(t *testing.T) {
	general := &stubAgent{id: "general", intent: core.IntentGeneral}
	fitness := &stubAgent{id: "fitness", intent: core.IntentFitness}

	registry, err := NewRegistry(general, fitness)
	require.NoError(t, err)

	agents := registry.Agents()
	assert.Len(t, agents, 2)

	// Mutating the snapshot must not affect dispatch.
	delete(agents, core.IntentFitness)
	assert.Same(t, fitness, registry.AgentFor(core.IntentFitness))
}
