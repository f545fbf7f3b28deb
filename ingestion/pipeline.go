package ingestion

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/vitalis/core"
	"github.com/poiesic/vitalis/storage"
)

const (
	defaultPoolSize  = 4
	defaultBatchSize = 500
)

// Pipeline drives one export document through extraction, parsing,
// normalization and the staged atomic dataset swap.
//
// Only one run may be active at a time; a second Ingest call while a
// run is in flight is rejected with ErrIngestionInProgress.
type Pipeline struct {
	healthRepo storage.HealthRepository
	runRepo    storage.RunRepository
	pool       *ants.Pool
	poolSize   int
	batchSize  int
	logger     *slog.Logger
	running    atomic.Bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPoolSize sets the number of concurrent batch-flush workers.
func WithPoolSize(size int) PipelineOption {
	return func(p *Pipeline) {
		if size > 0 {
			p.poolSize = size
		}
	}
}

// WithBatchSize sets how many entries are staged per flush.
func WithBatchSize(size int) PipelineOption {
	return func(p *Pipeline) {
		if size > 0 {
			p.batchSize = size
		}
	}
}

// WithLogger sets the logger used by the pipeline.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates an ingestion pipeline over the given repositories.
func NewPipeline(healthRepo storage.HealthRepository, runRepo storage.RunRepository, opts ...PipelineOption) (*Pipeline, error) {
	if healthRepo == nil {
		return nil, ErrHealthRepositoryRequired
	}
	if runRepo == nil {
		return nil, ErrRunRepositoryRequired
	}

	p := &Pipeline{
		healthRepo: healthRepo,
		runRepo:    runRepo,
		poolSize:   defaultPoolSize,
		batchSize:  defaultBatchSize,
		logger:     slog.Default().With("component", "ingestion-pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}

	pool, err := ants.NewPool(p.poolSize)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	return p, nil
}

// Close releases the pipeline's worker pool. The repositories are owned
// by the caller and are not closed.
func (p *Pipeline) Close() {
	p.pool.Release()
}

// IngestLatest locates the newest export in the candidate directories
// and ingests it. It returns storage.ErrNotFound when no candidate
// exists, leaving the committed dataset untouched.
func (p *Pipeline) IngestLatest(ctx context.Context, dirs ...string) (*core.IngestionRun, error) {
	path, ok := LocateExport(dirs...)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return p.Ingest(ctx, path)
}

// Ingest runs the full pipeline over one export archive or document and
// returns the finished run record. The previous dataset stays
// authoritative until the new one is committed, and remains so on any
// failure.
func (p *Pipeline) Ingest(ctx context.Context, path string) (*core.IngestionRun, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrIngestionInProgress
	}
	defer p.running.Store(false)

	run := &core.IngestionRun{
		SourcePath: path,
		StartedAt:  time.Now().UTC(),
	}
	if err := p.runRepo.AppendRun(ctx, run); err != nil {
		return nil, &DatabaseError{Op: "stage", Err: err}
	}

	p.logger.Info("ingestion started", "run", run.Id, "source", path)

	err := p.execute(ctx, run)
	run.FinishedAt = time.Now().UTC()
	switch {
	case err != nil:
		run.Outcome = core.RunOutcomeFailed
		run.Error = err.Error()
	case run.SkippedEntries > 0:
		run.Outcome = core.RunOutcomePartial
	default:
		run.Outcome = core.RunOutcomeSuccess
	}

	if updateErr := p.runRepo.UpdateRun(ctx, run); updateErr != nil {
		p.logger.Error("failed to finalize run record", "run", run.Id, "err", updateErr)
		if err == nil {
			err = &DatabaseError{Op: "commit", Err: updateErr}
		}
	}

	if err != nil {
		p.logger.Error("ingestion failed", "run", run.Id, "err", err)
		return run, err
	}

	p.logger.Info("ingestion finished",
		"run", run.Id,
		"outcome", run.Outcome.String(),
		"records", run.RecordCount,
		"workouts", run.WorkoutCount,
		"skipped", run.SkippedEntries)
	return run, nil
}

// execute performs the fallible middle of a run: extract, parse,
// normalize, stage, commit. The run record is updated with counts but
// its outcome is decided by the caller.
func (p *Pipeline) execute(ctx context.Context, run *core.IngestionRun) error {
	docPath, cleanup, err := Extract(run.SourcePath)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := os.Open(docPath)
	if err != nil {
		return &ExtractionError{Path: docPath, Err: err}
	}
	defer doc.Close()

	staging, err := p.healthRepo.NewStaging(ctx)
	if err != nil {
		return &DatabaseError{Op: "stage", Err: err}
	}
	defer staging.Discard()

	reader := NewEntryReader(doc)
	normalizer := NewNormalizer()
	flusher := newBatchFlusher(ctx, p.pool, staging, p.batchSize)

	for {
		entry, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			flusher.Wait()
			return &ExtractionError{Path: docPath, Err: err}
		}
		if err := ctx.Err(); err != nil {
			flusher.Wait()
			return err
		}

		switch entry.Kind {
		case KindRecord:
			if normalizer.NormalizeRecord(entry.Record) {
				flusher.AddRecord(entry.Record)
				run.RecordCount++
			}
		case KindWorkout:
			if normalizer.NormalizeWorkout(entry.Workout) {
				flusher.AddWorkout(entry.Workout)
				run.WorkoutCount++
			}
		}
	}

	if err := flusher.Flush(); err != nil {
		return &DatabaseError{Op: "stage", Err: err}
	}

	run.SkippedEntries = reader.Skipped() + normalizer.Skipped()

	if err := staging.Commit(ctx); err != nil {
		return &DatabaseError{Op: "commit", Err: err}
	}
	return nil
}

// batchFlusher accumulates normalized entries and hands full batches to
// the worker pool. Content-based keys make flush order irrelevant, so
// batches may land in any order.
type batchFlusher struct {
	ctx       context.Context
	pool      *ants.Pool
	staging   storage.Staging
	batchSize int

	records  []*core.HealthRecord
	workouts []*core.Workout

	wg      sync.WaitGroup
	mu      sync.Mutex
	failure error
}

func newBatchFlusher(ctx context.Context, pool *ants.Pool, staging storage.Staging, batchSize int) *batchFlusher {
	return &batchFlusher{
		ctx:       ctx,
		pool:      pool,
		staging:   staging,
		batchSize: batchSize,
	}
}

func (f *batchFlusher) AddRecord(record *core.HealthRecord) {
	f.records = append(f.records, record)
	if len(f.records) >= f.batchSize {
		f.submitRecords()
	}
}

func (f *batchFlusher) AddWorkout(workout *core.Workout) {
	f.workouts = append(f.workouts, workout)
	if len(f.workouts) >= f.batchSize {
		f.submitWorkouts()
	}
}

func (f *batchFlusher) submitRecords() {
	batch := f.records
	f.records = nil
	f.wg.Add(1)
	if err := f.pool.Submit(func() {
		defer f.wg.Done()
		if err := f.staging.StageRecords(f.ctx, batch...); err != nil {
			f.fail(err)
		}
	}); err != nil {
		f.wg.Done()
		f.fail(err)
	}
}

func (f *batchFlusher) submitWorkouts() {
	batch := f.workouts
	f.workouts = nil
	f.wg.Add(1)
	if err := f.pool.Submit(func() {
		defer f.wg.Done()
		if err := f.staging.StageWorkouts(f.ctx, batch...); err != nil {
			f.fail(err)
		}
	}); err != nil {
		f.wg.Done()
		f.fail(err)
	}
}

func (f *batchFlusher) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure == nil {
		f.failure = err
	}
}

// Flush submits any partial batches, waits for all in-flight flushes,
// and returns the first staging failure observed.
func (f *batchFlusher) Flush() error {
	if len(f.records) > 0 {
		f.submitRecords()
	}
	if len(f.workouts) > 0 {
		f.submitWorkouts()
	}
	return f.Wait()
}

// Wait blocks until all submitted flushes complete.
func (f *batchFlusher) Wait() error {
	f.wg.Wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}
