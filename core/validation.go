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


package core

import "fmt"

// ValidateHealthRecord validates a HealthRecord according to domain rules.
//
// Validation rules:
//   - MetricType must not be empty
//   - a measurement must be present, numeric (HasNumericValue) or text;
//     a measured 0 is a valid numeric value
//   - StartTime and EndTime must be set, with StartTime <= EndTime
//
// NOT validated:
//   - Unit, SourceName, Device (optional in exports)
//   - ID (0 is valid before content hashing)
func ValidateHealthRecord(record *HealthRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidHealthRecord)
	}

	if record.MetricType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHealthRecord, ErrMissingMetricType)
	}

	if !record.HasValue() {
		return fmt.Errorf("%w: %w", ErrInvalidHealthRecord, ErrMissingValue)
	}

	if record.StartTime.IsZero() || record.EndTime.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidHealthRecord, ErrMissingTimestamp)
	}

	if record.StartTime.After(record.EndTime) {
		return fmt.Errorf("%w: %w", ErrInvalidHealthRecord, ErrTimeOrder)
	}

	return nil
}

// ValidateWorkout validates a Workout according to domain rules.
//
// Validation rules:
//   - ActivityType must not be empty
//   - StartTime and EndTime must be set, with StartTime <= EndTime
//
// NOT validated:
//   - Distance, EnergyBurned (optional workout statistics)
//   - ID (0 is valid before content hashing)
func ValidateWorkout(workout *Workout) error {
	if workout == nil {
		return fmt.Errorf("%w: workout is nil", ErrInvalidWorkout)
	}

	if workout.ActivityType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidWorkout, ErrMissingActivityType)
	}

	if workout.StartTime.IsZero() || workout.EndTime.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidWorkout, ErrMissingTimestamp)
	}

	if workout.StartTime.After(workout.EndTime) {
		return fmt.Errorf("%w: %w", ErrInvalidWorkout, ErrTimeOrder)
	}

	return nil
}

// ValidateRunOutcome validates that a RunOutcome has a valid value.
func ValidateRunOutcome(outcome RunOutcome) error {
	switch outcome {
	case RunOutcomeSuccess, RunOutcomePartial, RunOutcomeFailed:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidRunOutcome, outcome)
}
