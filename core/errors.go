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

import "errors"

// Domain validation errors
var (
	// ErrInvalidHealthRecord indicates a HealthRecord failed validation.
	ErrInvalidHealthRecord = errors.New("invalid health record")

	// ErrInvalidWorkout indicates a Workout failed validation.
	ErrInvalidWorkout = errors.New("invalid workout")

	// ErrMissingMetricType indicates the MetricType field is empty.
	ErrMissingMetricType = errors.New("metric type cannot be empty")

	// ErrMissingActivityType indicates the ActivityType field is empty.
	ErrMissingActivityType = errors.New("activity type cannot be empty")

	// ErrMissingValue indicates a record carries neither a numeric nor a text value.
	ErrMissingValue = errors.New("record must carry a value")

	// ErrMissingTimestamp indicates a required timestamp is zero.
	ErrMissingTimestamp = errors.New("start and end timestamps are required")

	// ErrTimeOrder indicates StartTime is after EndTime.
	ErrTimeOrder = errors.New("start time is after end time")

	// ErrInvalidRunOutcome indicates an invalid RunOutcome value.
	ErrInvalidRunOutcome = errors.New("invalid run outcome")
)
