package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vitalis/core"
)

func sampleRecord() *core.HealthRecord {
	start := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)
	return &core.HealthRecord{
		MetricType:      "HKQuantityTypeIdentifierStepCount",
		Value:           412,
		HasNumericValue: true,
		Unit:            "count",
		SourceName:      "Phone",
		StartTime:       start,
		EndTime:         start.Add(10 * time.Minute),
	}
}

func sampleWorkout() *core.Workout {
	start := time.Date(2025, 5, 30, 7, 0, 0, 0, time.UTC)
	return &core.Workout{
		ActivityType: "HKWorkoutActivityTypeRunning",
		StartTime:    start,
		EndTime:      start.Add(31 * time.Minute),
		Duration:     31,
		SourceName:   "Watch",
	}
}

func TestNormalizeRecordCanonicalizesAndAssignsID(t *testing.T) {
	n := NewNormalizer()
	record := sampleRecord()

	require.True(t, n.NormalizeRecord(record))

	assert.Equal(t, "step_count", record.MetricType)
	assert.NotZero(t, record.Id)
	assert.Equal(t, core.IDFromContent(record.Tuple()), record.Id)
	assert.Zero(t, n.Skipped())
}

func TestNormalizeRecordRejectsInvalid(t *testing.T) {
	n := NewNormalizer()

	record := sampleRecord()
	record.StartTime, record.EndTime = record.EndTime, record.StartTime
	assert.False(t, n.NormalizeRecord(record))

	missing := sampleRecord()
	missing.Value = 0
	missing.HasNumericValue = false
	assert.False(t, n.NormalizeRecord(missing))

	assert.Equal(t, 2, n.Skipped())
}

func TestNormalizeRecordKeepsExplicitZeroValue(t *testing.T) {
	n := NewNormalizer()

	// A measured 0 is a real observation, not a missing value.
	record := sampleRecord()
	record.Value = 0
	require.True(t, n.NormalizeRecord(record))
	assert.Zero(t, n.Skipped())
	assert.NotZero(t, record.Id)
}

func TestNormalizeRecordDeduplicatesWithinRun(t *testing.T) {
	n := NewNormalizer()

	first := sampleRecord()
	require.True(t, n.NormalizeRecord(first))

	// Same identity tuple, different value: the first entry wins.
	dup := sampleRecord()
	dup.Value = 999
	assert.False(t, n.NormalizeRecord(dup))
	assert.Equal(t, 1, n.Skipped())

	// A different time window is a distinct record.
	other := sampleRecord()
	other.StartTime = other.StartTime.Add(time.Hour)
	other.EndTime = other.EndTime.Add(time.Hour)
	assert.True(t, n.NormalizeRecord(other))
}

func TestNormalizeWorkoutCanonicalizesAndDeduplicates(t *testing.T) {
	n := NewNormalizer()

	workout := sampleWorkout()
	require.True(t, n.NormalizeWorkout(workout))
	assert.Equal(t, "Running", workout.ActivityType)
	assert.Equal(t, core.IDFromContent(workout.Tuple()), workout.Id)

	dup := sampleWorkout()
	assert.False(t, n.NormalizeWorkout(dup))
	assert.Equal(t, 1, n.Skipped())
}

func TestNormalizeRecordAndWorkoutNamespacesDistinct(t *testing.T) {
	// A record and a workout sharing source and time window must not
	// collide in the dedup set.
	n := NewNormalizer()

	record := sampleRecord()
	workout := sampleWorkout()
	workout.StartTime = record.StartTime
	workout.EndTime = record.EndTime
	workout.SourceName = record.SourceName

	assert.True(t, n.NormalizeRecord(record))
	assert.True(t, n.NormalizeWorkout(workout))
	assert.Zero(t, n.Skipped())
}
