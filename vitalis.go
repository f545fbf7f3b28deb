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

package vitalis

import (
	"log/slog"

	"github.com/poiesic/vitalis/ai"
	"github.com/poiesic/vitalis/ai/ollama"
	"github.com/poiesic/vitalis/ai/openai"
	"github.com/poiesic/vitalis/ingestion"
	"github.com/poiesic/vitalis/routing"
	"github.com/poiesic/vitalis/storage"
	"github.com/poiesic/vitalis/storage/badger"
)

// Database is the composition root: one open store plus the provider
// configuration everything else is wired from.
type Database struct {
	backend    *badger.Backend
	healthRepo storage.HealthRepository
	runRepo    storage.RunRepository
	aiConfig   *ai.Config
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig sets the provider configuration used by NewCompleter
// and NewRouter.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryStore opens the store in memory. Nothing survives Close;
// intended for tests and experiments.
func WithInMemoryStore() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the store at filePath and wires the repositories.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	healthRepo, err := badger.NewHealthRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	runRepo := badger.NewRunRepository(backend)

	return &Database{
		backend:    backend,
		healthRepo: healthRepo,
		runRepo:    runRepo,
		aiConfig:   options.aiConfig,
		logger:     slog.Default(),
	}, nil
}

// Close releases the repositories and the underlying store.
func (db *Database) Close() error {
	if err := db.runRepo.Close(); err != nil {
		db.logger.Error("error closing run repository", "err", err)
		return err
	}
	if err := db.healthRepo.Close(); err != nil {
		db.logger.Error("error closing health repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// HealthRepository returns the committed-dataset read and staging interface.
func (db *Database) HealthRepository() storage.HealthRepository {
	return db.healthRepo
}

// RunRepository returns the ingestion audit-trail interface.
func (db *Database) RunRepository() storage.RunRepository {
	return db.runRepo
}

// NewIngestionPipeline creates a pipeline over this database's repositories.
func (db *Database) NewIngestionPipeline(opts ...ingestion.PipelineOption) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.healthRepo, db.runRepo, opts...)
}

// NewCompleter builds the configured provider client wrapped in the
// retry and timeout policy.
func (db *Database) NewCompleter() (ai.Completer, error) {
	if err := db.aiConfig.Validate(); err != nil {
		return nil, err
	}

	var inner ai.Completer
	var err error
	switch db.aiConfig.Backend {
	case ai.BackendOpenAI:
		inner, err = openai.NewCompleter(db.aiConfig)
	case ai.BackendOllama:
		inner, err = ollama.NewCompleter(db.aiConfig)
	default:
		return nil, ai.ErrUnknownBackend
	}
	if err != nil {
		return nil, err
	}

	return ai.NewResilientCompleter(inner, db.aiConfig), nil
}

// NewRouter assembles the full query path: classifier with model
// assist, one agent per intent, and the router on top.
func (db *Database) NewRouter(opts ...routing.RouterOption) (*routing.Router, error) {
	completer, err := db.NewCompleter()
	if err != nil {
		return nil, err
	}
	return db.newRouterWith(completer, opts...)
}

// NewRouterWithCompleter is NewRouter with an injected provider client,
// for tests and embedders that manage their own client.
func (db *Database) NewRouterWithCompleter(completer ai.Completer, opts ...routing.RouterOption) (*routing.Router, error) {
	return db.newRouterWith(completer, opts...)
}

func (db *Database) newRouterWith(completer ai.Completer, opts ...routing.RouterOption) (*routing.Router, error) {
	general, err := routing.NewGeneralAgent(db.healthRepo, completer)
	if err != nil {
		return nil, err
	}
	fitness, err := routing.NewFitnessAgent(db.healthRepo, completer)
	if err != nil {
		return nil, err
	}
	nutrition, err := routing.NewNutritionAgent(db.healthRepo, completer)
	if err != nil {
		return nil, err
	}
	wellness, err := routing.NewWellnessAgent(db.healthRepo, completer)
	if err != nil {
		return nil, err
	}

	registry, err := routing.NewRegistry(general, fitness, nutrition, wellness)
	if err != nil {
		return nil, err
	}

	classifier := routing.NewClassifier(nil, routing.WithModelAssist(completer))

	return routing.NewRouter(classifier, registry, opts...)
}
