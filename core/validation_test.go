package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateHealthRecord(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)

	tests := []struct {
		name    string
		record  *HealthRecord
		wantErr error
	}{
		{
			name: "valid numeric record",
			record: &HealthRecord{
				MetricType:      "step_count",
				Value:           512,
				HasNumericValue: true,
				Unit:            "count",
				SourceName:      "Watch",
				StartTime:       start,
				EndTime:         end,
			},
			wantErr: nil,
		},
		{
			name: "valid categorical record",
			record: &HealthRecord{
				MetricType: "sleep_analysis",
				ValueText:  "asleep_deep",
				SourceName: "Watch",
				StartTime:  start,
				EndTime:    end,
			},
			wantErr: nil,
		},
		{
			name: "valid zero-length interval",
			record: &HealthRecord{
				MetricType:      "body_mass",
				Value:           72.5,
				HasNumericValue: true,
				Unit:            "kg",
				StartTime:       start,
				EndTime:         start,
			},
			wantErr: nil,
		},
		{
			name: "valid explicit zero value",
			record: &HealthRecord{
				MetricType:      "mindful_session",
				Value:           0,
				HasNumericValue: true,
				Unit:            "min",
				StartTime:       start,
				EndTime:         end,
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidHealthRecord,
		},
		{
			name: "missing metric type",
			record: &HealthRecord{
				Value:           1,
				HasNumericValue: true,
				StartTime:       start,
				EndTime:         end,
			},
			wantErr: ErrMissingMetricType,
		},
		{
			name: "missing value",
			record: &HealthRecord{
				MetricType: "step_count",
				StartTime:  start,
				EndTime:    end,
			},
			wantErr: ErrMissingValue,
		},
		{
			name: "missing start time",
			record: &HealthRecord{
				MetricType:      "step_count",
				Value:           1,
				HasNumericValue: true,
				EndTime:         end,
			},
			wantErr: ErrMissingTimestamp,
		},
		{
			name: "missing end time",
			record: &HealthRecord{
				MetricType:      "step_count",
				Value:           1,
				HasNumericValue: true,
				StartTime:       start,
			},
			wantErr: ErrMissingTimestamp,
		},
		{
			name: "start after end",
			record: &HealthRecord{
				MetricType:      "step_count",
				Value:           1,
				HasNumericValue: true,
				StartTime:       end,
				EndTime:         start,
			},
			wantErr: ErrTimeOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHealthRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateHealthRecord() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateHealthRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkout(t *testing.T) {
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	tests := []struct {
		name    string
		workout *Workout
		wantErr error
	}{
		{
			name: "valid workout",
			workout: &Workout{
				ActivityType: "Running",
				StartTime:    start,
				EndTime:      end,
				Duration:     45,
				Distance:     7.2,
				EnergyBurned: 480,
				SourceName:   "Watch",
			},
			wantErr: nil,
		},
		{
			name: "valid workout without statistics",
			workout: &Workout{
				ActivityType: "Yoga",
				StartTime:    start,
				EndTime:      end,
				Duration:     45,
			},
			wantErr: nil,
		},
		{
			name:    "nil workout",
			workout: nil,
			wantErr: ErrInvalidWorkout,
		},
		{
			name: "missing activity type",
			workout: &Workout{
				StartTime: start,
				EndTime:   end,
			},
			wantErr: ErrMissingActivityType,
		},
		{
			name: "missing timestamps",
			workout: &Workout{
				ActivityType: "Running",
			},
			wantErr: ErrMissingTimestamp,
		},
		{
			name: "start after end",
			workout: &Workout{
				ActivityType: "Running",
				StartTime:    end,
				EndTime:      start,
			},
			wantErr: ErrTimeOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkout(tt.workout)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateWorkout() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateWorkout() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRunOutcome(t *testing.T) {
	for _, outcome := range []RunOutcome{RunOutcomeSuccess, RunOutcomePartial, RunOutcomeFailed} {
		if err := ValidateRunOutcome(outcome); err != nil {
			t.Errorf("ValidateRunOutcome(%v) error = %v, want nil", outcome, err)
		}
	}
	if err := ValidateRunOutcome(RunOutcome(0)); !errors.Is(err, ErrInvalidRunOutcome) {
		t.Errorf("ValidateRunOutcome(0) error = %v, want %v", err, ErrInvalidRunOutcome)
	}
}
