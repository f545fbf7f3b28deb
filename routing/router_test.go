package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vitalis/core"
)

func newTestRouter(t *testing.T, agents ...*stubAgent) (*Router, *stubAgent) {
	t.Helper()
	general := &stubAgent{id: "general", intent: core.IntentGeneral, response: "general answer"}

	routable := make([]Agent, 0, len(agents))
	for _, a := range agents {
		routable = append(routable, a)
	}
	registry, err := NewRegistry(general, routable...)
	require.NoError(t, err)

	router, err := NewRouter(NewClassifier(nil), registry)
	require.NoError(t, err)
	return router, general
}

func TestNewRouterValidation(t *testing.T) {
	registry, err := NewRegistry(&stubAgent{id: "general", intent: core.IntentGeneral})
	require.NoError(t, err)

	_, err = NewRouter(nil, registry)
	assert.ErrorIs(t, err, ErrClassifierRequired)

	_, err = NewRouter(NewClassifier(nil), nil)
	assert.ErrorIs(t, err, ErrRegistryRequired)
}

func TestRouteQueryDispatchesByIntent(t *testing.T) {
	fitness := &stubAgent{id: "fitness", intent: core.IntentFitness, response: "you walked plenty"}
	router, general := newTestRouter(t, fitness)

	result, err := router.RouteQuery(context.Background(), "How many steps did I take today?")
	require.NoError(t, err)

	assert.Equal(t, core.IntentFitness, result.Intent)
	assert.Equal(t, "fitness", result.AgentID)
	assert.Equal(t, "you walked plenty", result.Response)
	assert.False(t, result.Degraded)
	assert.NotEmpty(t, result.Id)
	assert.Equal(t, 1, fitness.calls)
	assert.Zero(t, general.calls)
}

func TestRouteQueryFallsBackToDefaultAgent(t *testing.T) {
	fitness := &stubAgent{id: "fitness", intent: core.IntentFitness, response: "irrelevant"}
	router, general := newTestRouter(t, fitness)

	result, err := router.RouteQuery(context.Background(), "Tell me something about my data")
	require.NoError(t, err)

	assert.Equal(t, core.IntentGeneral, result.Intent)
	assert.Equal(t, "general answer", result.Response)
	assert.Equal(t, 1, general.calls)
	assert.Zero(t, fitness.calls)
}

func TestRouteQueryDegradesOnProviderFailure(t *testing.T) {
	fitness := &stubAgent{id: "fitness", intent: core.IntentFitness, err: errors.New("provider down")}
	router, _ := newTestRouter(t, fitness)

	result, err := router.RouteQuery(context.Background(), "How many steps today?")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Equal(t, degradedResponse, result.Response)
	assert.Equal(t, core.IntentFitness, result.Intent)
	assert.Equal(t, "fitness", result.AgentID)
}

func TestRouteQueryRejectsEmptyQuery(t *testing.T) {
	router, _ := newTestRouter(t)

	_, err := router.RouteQuery(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRouteQueryHonorsCancelledContext(t *testing.T) {
	router, _ := newTestRouter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := router.RouteQuery(ctx, "How did I sleep?")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRouteQueryRecordsLatency(t *testing.T) {
	slow := &stubAgent{id: "wellness", intent: core.IntentWellness, response: "rested"}
	router, _ := newTestRouter(t, slow)

	start := time.Now()
	result, err := router.RouteQuery(context.Background(), "How did I sleep last night?")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.ProviderLatency, time.Duration(0))
	assert.LessOrEqual(t, result.ProviderLatency, time.Since(start))
}
