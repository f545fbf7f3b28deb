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
	"fmt"

	"github.com/poiesic/vitalis/core"
)

// Registry maps each intent to exactly one agent. Registration is
// explicit and closed at construction; dispatch is a pure lookup with
// the default agent answering for unmapped intents.
type Registry struct {
	agents       map[core.Intent]Agent
	defaultAgent Agent
}

// NewRegistry builds a registry from a default agent and any number of
// specific agents. Two agents claiming the same intent is a
// construction error, not a runtime surprise.
func NewRegistry(defaultAgent Agent, agents ...Agent) (*Registry, error) {
	if defaultAgent == nil {
		return nil, ErrDefaultAgentRequired
	}

	r := &Registry{
		agents:       make(map[core.Intent]Agent, len(agents)+1),
		defaultAgent: defaultAgent,
	}
	r.agents[defaultAgent.Intent()] = defaultAgent

	for _, agent := range agents {
		if existing, taken := r.agents[agent.Intent()]; taken {
			return nil, fmt.Errorf("%w: %s claimed by %s and %s",
				ErrDuplicateIntent, agent.Intent(), existing.ID(), agent.ID())
		}
		r.agents[agent.Intent()] = agent
	}

	return r, nil
}

// AgentFor returns the agent serving an intent, falling back to the
// default agent for intents nothing claims.
func (r *Registry) AgentFor(intent core.Intent) Agent {
	if agent, ok := r.agents[intent]; ok {
		return agent
	}
	return r.defaultAgent
}

// Agents returns every registered agent, default included, keyed by intent.
func (r *Registry) Agents() map[core.Intent]Agent {
	out := make(map[core.Intent]Agent, len(r.agents))
	for intent, agent := range r.agents {
		out[intent] = agent
	}
	return out
}
