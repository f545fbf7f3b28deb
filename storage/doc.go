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


// Package storage provides the storage abstraction layer for vitalis.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably.
//
// # Generations
//
// The persisted dataset is replaced wholesale on every ingestion run.
// Implementations model this as generations: a Staging accumulates the
// next generation's records and workouts, and Commit atomically makes
// that generation the active one. Readers always observe exactly one
// committed generation; a crash before Commit leaves the previous
// generation fully intact.
//
// # Ownership
//
// Staging is the only write path into the health dataset. Everything
// else (agents, CLI listings) holds read-only access through
// HealthRepository. The ingestion-run audit trail has its own
// repository and survives dataset swaps.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent readers. A Staging must tolerate concurrent Stage calls;
// Commit and Discard are single-caller operations.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
