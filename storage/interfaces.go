package storage

import (
	"context"
	"time"

	"github.com/poiesic/vitalis/core"
)

// HealthRepository provides read access to the committed health dataset
// and the staging write path used by the ingestion pipeline.
type HealthRepository interface {
	// RecordsByType retrieves records of one metric type within a time range,
	// ordered by start time ascending. Returns records where
	// start <= StartTime < end.
	RecordsByType(ctx context.Context, metricType string, start, end time.Time) ([]*core.HealthRecord, error)

	// LatestRecord retrieves the most recent record of a metric type.
	// Returns ErrNotFound if the committed dataset has none.
	LatestRecord(ctx context.Context, metricType string) (*core.HealthRecord, error)

	// RecentWorkouts retrieves up to limit workouts, most recent first.
	RecentWorkouts(ctx context.Context, limit int) ([]*core.Workout, error)

	// WorkoutsByRange retrieves workouts within a time range, ordered by
	// start time ascending.
	WorkoutsByRange(ctx context.Context, start, end time.Time) ([]*core.Workout, error)

	// MetricTypeCounts returns the number of committed records per metric type.
	MetricTypeCounts(ctx context.Context) (map[string]int, error)

	// Counts returns the committed record and workout totals.
	Counts(ctx context.Context) (records, workouts int, err error)

	// NewStaging opens the write path for the next dataset generation.
	// Any stale uncommitted generation left by a crashed run is purged first.
	NewStaging(ctx context.Context) (Staging, error)

	// Close closes the repository and releases resources.
	Close() error
}

// Staging accumulates one ingestion run's output and swaps it in atomically.
// Staged data is invisible to readers until Commit returns.
type Staging interface {
	// StageRecords writes records into the pending generation.
	// Safe for concurrent use by multiple flush workers.
	StageRecords(ctx context.Context, records ...*core.HealthRecord) error

	// StageWorkouts writes workouts into the pending generation.
	// Safe for concurrent use by multiple flush workers.
	StageWorkouts(ctx context.Context, workouts ...*core.Workout) error

	// Commit atomically replaces the active dataset with the staged one.
	// On error the previously committed dataset remains authoritative.
	// After Commit the staging must not be used again.
	Commit(ctx context.Context) error

	// Discard abandons the staged generation and removes its data.
	// Calling Discard after a successful Commit is a no-op.
	Discard() error
}

// RunRepository persists the ingestion-run audit trail.
type RunRepository interface {
	// AppendRun stores a new ingestion run record.
	AppendRun(ctx context.Context, run *core.IngestionRun) error

	// UpdateRun overwrites an existing run record.
	// Returns ErrNotFound if the run doesn't exist.
	UpdateRun(ctx context.Context, run *core.IngestionRun) error

	// GetRun retrieves a run by its ULID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id string) (*core.IngestionRun, error)

	// ListRuns retrieves up to limit runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]*core.IngestionRun, error)

	// Close closes the repository and releases resources.
	Close() error
}
