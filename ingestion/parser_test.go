package ingestion

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<HealthData locale="en_US">
 <ExportDate value="2025-06-01 09:00:00 -0700"/>
 <Record type="HKQuantityTypeIdentifierStepCount" sourceName="Phone" unit="count"
         startDate="2025-05-30 08:00:00 -0700" endDate="2025-05-30 08:10:00 -0700" value="412"/>
 <Record type="HKQuantityTypeIdentifierHeartRate" sourceName="Watch" unit="count/min"
         startDate="2025-05-30 08:05:00 -0700" endDate="2025-05-30 08:05:00 -0700" value="71">
  <MetadataEntry key="HKMetadataKeyHeartRateMotionContext" value="1"/>
 </Record>
 <Record type="HKCategoryTypeIdentifierSleepAnalysis" sourceName="Watch"
         startDate="2025-05-29 23:10:00 -0700" endDate="2025-05-30 06:40:00 -0700"
         value="HKCategoryValueSleepAnalysisAsleepDeep"/>
 <Workout workoutActivityType="HKWorkoutActivityTypeRunning" duration="31.5" durationUnit="min"
          sourceName="Watch" startDate="2025-05-30 07:00:00 -0700" endDate="2025-05-30 07:31:30 -0700">
  <WorkoutStatistics type="HKQuantityTypeIdentifierActiveEnergyBurned" sum="287.4" unit="kcal"/>
  <WorkoutStatistics type="HKQuantityTypeIdentifierDistanceWalkingRunning" sum="5.2" unit="km"/>
 </Workout>
</HealthData>`

func readAll(t *testing.T, reader *EntryReader) []*Entry {
	t.Helper()
	var entries []*Entry
	for {
		entry, err := reader.Next()
		if err == io.EOF {
			return entries
		}
		require.NoError(t, err)
		entries = append(entries, entry)
	}
}

func TestEntryReaderStreamsDocumentOrder(t *testing.T) {
	reader := NewEntryReader(strings.NewReader(sampleDocument))
	entries := readAll(t, reader)

	require.Len(t, entries, 4)
	assert.Equal(t, 0, reader.Skipped())

	steps := entries[0].Record
	require.NotNil(t, steps)
	assert.Equal(t, "HKQuantityTypeIdentifierStepCount", steps.MetricType)
	assert.Equal(t, 412.0, steps.Value)
	assert.Equal(t, "Phone", steps.SourceName)
	assert.Equal(t, "count", steps.Unit)

	wantStart, err := time.Parse(exportTimeLayout, "2025-05-30 08:00:00 -0700")
	require.NoError(t, err)
	assert.True(t, steps.StartTime.Equal(wantStart))

	// Records with nested metadata still parse from attributes alone.
	heart := entries[1].Record
	require.NotNil(t, heart)
	assert.Equal(t, 71.0, heart.Value)

	sleep := entries[2].Record
	require.NotNil(t, sleep)
	assert.False(t, sleep.HasNumericValue)
	assert.Equal(t, "HKCategoryValueSleepAnalysisAsleepDeep", sleep.ValueText)
}

func TestEntryReaderKeepsZeroValuedRecords(t *testing.T) {
	doc := `<HealthData>
 <Record type="HKQuantityTypeIdentifierAppleExerciseTime" sourceName="Watch" unit="min"
         startDate="2025-05-30 08:00:00 -0700" endDate="2025-05-30 09:00:00 -0700" value="0"/>
</HealthData>`

	reader := NewEntryReader(strings.NewReader(doc))
	entries := readAll(t, reader)

	// A measured 0 parses as a present numeric value and is never skipped.
	require.Len(t, entries, 1)
	assert.Equal(t, 0, reader.Skipped())

	record := entries[0].Record
	require.NotNil(t, record)
	assert.True(t, record.HasNumericValue)
	assert.Zero(t, record.Value)

	n := NewNormalizer()
	assert.True(t, n.NormalizeRecord(record))
	assert.Zero(t, n.Skipped())
}

func TestEntryReaderParsesWorkoutStatistics(t *testing.T) {
	reader := NewEntryReader(strings.NewReader(sampleDocument))
	entries := readAll(t, reader)

	require.Len(t, entries, 4)
	workout := entries[3].Workout
	require.NotNil(t, workout)

	assert.Equal(t, KindWorkout, entries[3].Kind)
	assert.Equal(t, "HKWorkoutActivityTypeRunning", workout.ActivityType)
	assert.Equal(t, 31.5, workout.Duration)
	assert.InDelta(t, 287.4, workout.EnergyBurned, 0.001)
	assert.InDelta(t, 5.2, workout.Distance, 0.001)
}

func TestEntryReaderSecondsDurationConvertedToMinutes(t *testing.T) {
	doc := `<HealthData>
 <Workout workoutActivityType="HKWorkoutActivityTypeWalking" duration="600" durationUnit="sec"
          sourceName="Watch" startDate="2025-05-30 07:00:00 -0700" endDate="2025-05-30 07:10:00 -0700"/>
</HealthData>`

	reader := NewEntryReader(strings.NewReader(doc))
	entries := readAll(t, reader)

	require.Len(t, entries, 1)
	assert.InDelta(t, 10.0, entries[0].Workout.Duration, 0.001)
}

func TestEntryReaderSkipsMalformedEntries(t *testing.T) {
	doc := `<HealthData>
 <Record sourceName="Phone" unit="count"
         startDate="2025-05-30 08:00:00 -0700" endDate="2025-05-30 08:10:00 -0700" value="1"/>
 <Record type="HKQuantityTypeIdentifierStepCount" sourceName="Phone" unit="count"
         startDate="not a date" endDate="2025-05-30 08:10:00 -0700" value="2"/>
 <Workout duration="10" durationUnit="min" sourceName="Watch"
          startDate="2025-05-30 07:00:00 -0700" endDate="2025-05-30 07:10:00 -0700"/>
 <Record type="HKQuantityTypeIdentifierStepCount" sourceName="Phone" unit="count"
         startDate="2025-05-30 09:00:00 -0700" endDate="2025-05-30 09:10:00 -0700" value="3"/>
</HealthData>`

	reader := NewEntryReader(strings.NewReader(doc))
	entries := readAll(t, reader)

	// The missing-type record, bad-date record and typeless workout are
	// skipped; the final good record survives.
	require.Len(t, entries, 1)
	assert.Equal(t, 3, reader.Skipped())
	assert.Equal(t, 3.0, entries[0].Record.Value)
}

func TestEntryReaderSurfacesDocumentSyntaxErrors(t *testing.T) {
	doc := `<HealthData>
 <Record type="HKQuantityTypeIdentifierStepCount" sourceName="Phone" unit="count"
         startDate="2025-05-30 08:00:00 -0700" endDate="2025-05-30 08:10:00 -0700" value="1"/>
 <Record type="HKQuantityTypeIdentifier`

	reader := NewEntryReader(strings.NewReader(doc))

	entry, err := reader.Next()
	require.NoError(t, err)
	require.NotNil(t, entry.Record)

	_, err = reader.Next()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}
