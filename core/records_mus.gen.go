// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var RunOutcomeMUS = runOutcomeMUS{}

type runOutcomeMUS struct{}

func (s runOutcomeMUS) Marshal(v RunOutcome, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s runOutcomeMUS) Unmarshal(bs []byte) (v RunOutcome, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = RunOutcome(tmp)
	return
}

func (s runOutcomeMUS) Size(v RunOutcome) (size int) {
	return varint.Int.Size(int(v))
}

func (s runOutcomeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var HealthRecordMUS = healthRecordMUS{}

type healthRecordMUS struct{}

func (s healthRecordMUS) Marshal(v HealthRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.MetricType, bs[n:])
	n += varint.Float64.Marshal(v.Value, bs[n:])
	n += ord.Bool.Marshal(v.HasNumericValue, bs[n:])
	n += ord.String.Marshal(v.ValueText, bs[n:])
	n += ord.String.Marshal(v.Unit, bs[n:])
	n += ord.String.Marshal(v.SourceName, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.StartTime, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.EndTime, bs[n:])
	return n + ord.String.Marshal(v.Device, bs[n:])
}

func (s healthRecordMUS) Unmarshal(bs []byte) (v HealthRecord, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.MetricType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Value, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.HasNumericValue, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ValueText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Unit, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartTime, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EndTime, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Device, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s healthRecordMUS) Size(v HealthRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.MetricType)
	size += varint.Float64.Size(v.Value)
	size += ord.Bool.Size(v.HasNumericValue)
	size += ord.String.Size(v.ValueText)
	size += ord.String.Size(v.Unit)
	size += ord.String.Size(v.SourceName)
	size += raw.TimeUnixMicro.Size(v.StartTime)
	size += raw.TimeUnixMicro.Size(v.EndTime)
	return size + ord.String.Size(v.Device)
}

func (s healthRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var WorkoutMUS = workoutMUS{}

type workoutMUS struct{}

func (s workoutMUS) Marshal(v Workout, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.ActivityType, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.StartTime, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.EndTime, bs[n:])
	n += varint.Float64.Marshal(v.Duration, bs[n:])
	n += varint.Float64.Marshal(v.Distance, bs[n:])
	n += varint.Float64.Marshal(v.EnergyBurned, bs[n:])
	return n + ord.String.Marshal(v.SourceName, bs[n:])
}

func (s workoutMUS) Unmarshal(bs []byte) (v Workout, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ActivityType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartTime, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EndTime, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Duration, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Distance, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EnergyBurned, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s workoutMUS) Size(v Workout) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.ActivityType)
	size += raw.TimeUnixMicro.Size(v.StartTime)
	size += raw.TimeUnixMicro.Size(v.EndTime)
	size += varint.Float64.Size(v.Duration)
	size += varint.Float64.Size(v.Distance)
	size += varint.Float64.Size(v.EnergyBurned)
	return size + ord.String.Size(v.SourceName)
}

func (s workoutMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var IngestionRunMUS = ingestionRunMUS{}

type ingestionRunMUS struct{}

func (s ingestionRunMUS) Marshal(v IngestionRun, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.SourcePath, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.StartedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.FinishedAt, bs[n:])
	n += varint.Int.Marshal(v.RecordCount, bs[n:])
	n += varint.Int.Marshal(v.WorkoutCount, bs[n:])
	n += varint.Int.Marshal(v.SkippedEntries, bs[n:])
	n += RunOutcomeMUS.Marshal(v.Outcome, bs[n:])
	return n + ord.String.Marshal(v.Error, bs[n:])
}

func (s ingestionRunMUS) Unmarshal(bs []byte) (v IngestionRun, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.SourcePath, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FinishedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RecordCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.WorkoutCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SkippedEntries, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Outcome, n1, err = RunOutcomeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Error, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s ingestionRunMUS) Size(v IngestionRun) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.SourcePath)
	size += raw.TimeUnixMicro.Size(v.StartedAt)
	size += raw.TimeUnixMicro.Size(v.FinishedAt)
	size += varint.Int.Size(v.RecordCount)
	size += varint.Int.Size(v.WorkoutCount)
	size += varint.Int.Size(v.SkippedEntries)
	size += RunOutcomeMUS.Size(v.Outcome)
	return size + ord.String.Size(v.Error)
}

func (s ingestionRunMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = RunOutcomeMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}
