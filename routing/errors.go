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

import "errors"

var (
	// ErrClassifierRequired is returned when a router is built without a classifier.
	ErrClassifierRequired = errors.New("classifier required")

	// ErrRegistryRequired is returned when a router is built without a registry.
	ErrRegistryRequired = errors.New("registry required")

	// ErrDefaultAgentRequired is returned when a registry is built without a default agent.
	ErrDefaultAgentRequired = errors.New("default agent required")

	// ErrDuplicateIntent is returned when two agents claim the same intent.
	ErrDuplicateIntent = errors.New("duplicate agent intent")

	// ErrEmptyQuery is returned for a blank query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrCompleterRequired is returned when an agent is built without a completer.
	ErrCompleterRequired = errors.New("completer required")

	// ErrRepositoryRequired is returned when an agent is built without a repository.
	ErrRepositoryRequired = errors.New("health repository required")
)
