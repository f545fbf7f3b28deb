package core

import (
	"testing"
	"time"
)

func TestIDFromContent_Deterministic(t *testing.T) {
	a := IDFromContent("hr(step_count,Watch,1000,2000)")
	b := IDFromContent("hr(step_count,Watch,1000,2000)")
	if a != b {
		t.Errorf("IDFromContent not deterministic: %d != %d", a, b)
	}

	c := IDFromContent("hr(step_count,Watch,1000,2001)")
	if a == c {
		t.Error("distinct content should produce distinct IDs")
	}
}

func TestHealthRecordTuple(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Minute)

	r1 := &HealthRecord{MetricType: "step_count", SourceName: "Watch", StartTime: start, EndTime: end, Value: 10}
	r2 := &HealthRecord{MetricType: "step_count", SourceName: "Watch", StartTime: start, EndTime: end, Value: 99}

	// The identity tuple ignores the value: two observations of the same
	// metric from the same source over the same interval are duplicates.
	if r1.Tuple() != r2.Tuple() {
		t.Errorf("tuples differ: %q vs %q", r1.Tuple(), r2.Tuple())
	}

	r3 := &HealthRecord{MetricType: "heart_rate", SourceName: "Watch", StartTime: start, EndTime: end}
	if r1.Tuple() == r3.Tuple() {
		t.Error("different metric types must produce different tuples")
	}
}

func TestWorkoutTupleDisjointFromRecordTuple(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Minute)

	r := &HealthRecord{MetricType: "Running", SourceName: "Watch", StartTime: start, EndTime: end}
	w := &Workout{ActivityType: "Running", SourceName: "Watch", StartTime: start, EndTime: end}

	if r.Tuple() == w.Tuple() {
		t.Error("record and workout tuples must be namespaced apart")
	}
}

func TestRunOutcomeString(t *testing.T) {
	tests := []struct {
		outcome RunOutcome
		want    string
	}{
		{RunOutcomeSuccess, "success"},
		{RunOutcomePartial, "partial"},
		{RunOutcomeFailed, "failed"},
		{RunOutcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("RunOutcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

func TestHasValue(t *testing.T) {
	if (&HealthRecord{}).HasValue() {
		t.Error("empty record should not report a value")
	}
	if !(&HealthRecord{Value: 12, HasNumericValue: true}).HasValue() {
		t.Error("numeric record should report a value")
	}
	if !(&HealthRecord{Value: 0, HasNumericValue: true}).HasValue() {
		t.Error("a measured zero is still a value")
	}
	if (&HealthRecord{Value: 12}).HasValue() {
		t.Error("an unflagged numeric field is not a measurement")
	}
	if !(&HealthRecord{ValueText: "asleep_core"}).HasValue() {
		t.Error("categorical record should report a value")
	}
}
