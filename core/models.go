package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Records and workouts use content-based hashing of their identity tuple,
// which makes re-ingestion of the same document reproduce the same IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// HealthRecord is a single timestamped health metric observation.
// Records are immutable once written; the identity tuple
// (MetricType, SourceName, StartTime, EndTime) uniquely identifies a
// record within one ingestion run.
type HealthRecord struct {
	Id              ID
	MetricType      string  // Canonical metric code, e.g. "step_count", "heart_rate"
	Value           float64 // Numeric measurement; meaningful only when HasNumericValue is set
	HasNumericValue bool    // True when Value holds a parsed measurement; 0 is a legitimate reading
	ValueText       string  // Categorical value, e.g. sleep analysis stages
	Unit            string  // Canonical unit, e.g. "count", "bpm", "kcal"
	SourceName      string  // Device or app that produced the observation
	StartTime       time.Time
	EndTime         time.Time
	Device          string // Optional device description
}

// Tuple returns the identity tuple string used for content-based IDs.
func (r *HealthRecord) Tuple() string {
	return "hr(" + r.MetricType + "," + r.SourceName + "," +
		strconv.FormatInt(r.StartTime.UnixMicro(), 10) + "," +
		strconv.FormatInt(r.EndTime.UnixMicro(), 10) + ")"
}

// HasValue reports whether the record carries a measurement of either
// kind. Presence is tracked explicitly so a measured 0 counts.
func (r *HealthRecord) HasValue() bool {
	return r.ValueText != "" || r.HasNumericValue
}

// Workout is a single timestamped exercise session observation.
// Same immutability and identity rule as HealthRecord, scoped to workouts.
type Workout struct {
	Id           ID
	ActivityType string // Cleaned activity name, e.g. "Running", "Walking"
	StartTime    time.Time
	EndTime      time.Time
	Duration     float64 // Minutes
	Distance     float64 // Kilometers; zero when not reported
	EnergyBurned float64 // Kilocalories; zero when not reported
	SourceName   string
}

// Tuple returns the identity tuple string used for content-based IDs.
func (w *Workout) Tuple() string {
	return "wk(" + w.ActivityType + "," + w.SourceName + "," +
		strconv.FormatInt(w.StartTime.UnixMicro(), 10) + "," +
		strconv.FormatInt(w.EndTime.UnixMicro(), 10) + ")"
}

// RunOutcome is the terminal state of an ingestion run.
type RunOutcome int

const (
	// RunOutcomeSuccess means every parsed entry was persisted.
	RunOutcomeSuccess RunOutcome = iota + 1
	// RunOutcomePartial means the dataset was committed but some entries were skipped.
	RunOutcomePartial
	// RunOutcomeFailed means the run aborted and the previous dataset remains authoritative.
	RunOutcomeFailed
)

// String returns the lowercase name of the outcome.
func (o RunOutcome) String() string {
	switch o {
	case RunOutcomeSuccess:
		return "success"
	case RunOutcomePartial:
		return "partial"
	case RunOutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// IngestionRun is the audit record of one ingestion attempt.
// It is the only mutable record during a run and is retained after the
// dataset is rewritten.
type IngestionRun struct {
	Id             string // ULID, lexicographically sortable by creation time
	SourcePath     string // The canonical document the run ingested
	StartedAt      time.Time
	FinishedAt     time.Time
	RecordCount    int
	WorkoutCount   int
	SkippedEntries int
	Outcome        RunOutcome
	Error          string // Failure cause when Outcome is failed
}

// Intent is a coarse domain classification of a user's query.
type Intent string

const (
	IntentFitness   Intent = "fitness"
	IntentNutrition Intent = "nutrition"
	IntentWellness  Intent = "wellness"
	IntentGeneral   Intent = "general"
)

// Intents lists every routable intent, the default last.
var Intents = []Intent{IntentFitness, IntentNutrition, IntentWellness, IntentGeneral}

// QueryResult is the structured outcome of routing one query.
// It is ephemeral and never persisted.
type QueryResult struct {
	Id              string // Per-query trace ID
	Query           string
	Intent          Intent
	AgentID         string
	AgentName       string
	Response        string
	Confidence      float64
	ProviderLatency time.Duration
	Degraded        bool // True when the provider failed and a fallback answer was returned
}
