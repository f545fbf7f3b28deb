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


package storage

import (
	"github.com/poiesic/vitalis/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalHealthRecord serializes a HealthRecord to bytes.
func MarshalHealthRecord(record *core.HealthRecord) []byte {
	buf := make([]byte, core.HealthRecordMUS.Size(*record))
	core.HealthRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalHealthRecord deserializes a HealthRecord from bytes.
func UnmarshalHealthRecord(data []byte) (*core.HealthRecord, error) {
	record, _, err := core.HealthRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalWorkout serializes a Workout to bytes.
func MarshalWorkout(workout *core.Workout) []byte {
	buf := make([]byte, core.WorkoutMUS.Size(*workout))
	core.WorkoutMUS.Marshal(*workout, buf)
	return buf
}

// UnmarshalWorkout deserializes a Workout from bytes.
func UnmarshalWorkout(data []byte) (*core.Workout, error) {
	workout, _, err := core.WorkoutMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

// MarshalIngestionRun serializes an IngestionRun to bytes.
func MarshalIngestionRun(run *core.IngestionRun) []byte {
	buf := make([]byte, core.IngestionRunMUS.Size(*run))
	core.IngestionRunMUS.Marshal(*run, buf)
	return buf
}

// UnmarshalIngestionRun deserializes an IngestionRun from bytes.
func UnmarshalIngestionRun(data []byte) (*core.IngestionRun, error) {
	run, _, err := core.IngestionRunMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
