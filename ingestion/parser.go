package ingestion

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/vitalis/core"
)

// exportTimeLayout is the timestamp format used throughout an export
// document, local time with a numeric zone offset.
const exportTimeLayout = "2006-01-02 15:04:05 -0700"

// EntryKind distinguishes the two entry types a document can yield.
type EntryKind int

const (
	KindRecord EntryKind = iota + 1
	KindWorkout
)

// Entry is one parsed document element. Exactly one of Record or
// Workout is set, according to Kind.
type Entry struct {
	Kind    EntryKind
	Record  *core.HealthRecord
	Workout *core.Workout
}

// EntryReader is a pull-based streaming parser over an export document.
// It holds at most one entry in memory at a time, which keeps ingestion
// of multi-gigabyte documents at constant memory.
//
// A malformed individual element increments the skip count and parsing
// continues with the next element. A document-level XML syntax error is
// unrecoverable and is returned from Next.
type EntryReader struct {
	decoder *xml.Decoder
	skipped int
}

// NewEntryReader returns a reader positioned before the first entry.
func NewEntryReader(r io.Reader) *EntryReader {
	return &EntryReader{decoder: xml.NewDecoder(r)}
}

// Skipped returns the number of elements rejected so far for structural
// problems such as unparseable timestamps or missing attributes the
// element cannot be read without.
func (er *EntryReader) Skipped() int {
	return er.skipped
}

// Next returns the next entry in document order. It returns io.EOF when
// the document is exhausted and any other error only for document-level
// failures that make further reading impossible.
func (er *EntryReader) Next() (*Entry, error) {
	for {
		tok, err := er.decoder.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "Record":
			record, ok := er.parseRecord(start)
			if err := er.decoder.Skip(); err != nil {
				return nil, err
			}
			if !ok {
				er.skipped++
				continue
			}
			return &Entry{Kind: KindRecord, Record: record}, nil

		case "Workout":
			workout, ok, err := er.parseWorkout(start)
			if err != nil {
				return nil, err
			}
			if !ok {
				er.skipped++
				continue
			}
			return &Entry{Kind: KindWorkout, Workout: workout}, nil
		}
	}
}

// parseRecord reads a Record element from its attributes alone. The
// boolean result is false when the element is structurally unusable.
func (er *EntryReader) parseRecord(start xml.StartElement) (*core.HealthRecord, bool) {
	var record core.HealthRecord
	var startRaw, endRaw, valueRaw string

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "type":
			record.MetricType = attr.Value
		case "value":
			valueRaw = attr.Value
		case "unit":
			record.Unit = attr.Value
		case "sourceName":
			record.SourceName = attr.Value
		case "startDate":
			startRaw = attr.Value
		case "endDate":
			endRaw = attr.Value
		case "device":
			record.Device = attr.Value
		}
	}

	if record.MetricType == "" {
		return nil, false
	}

	var err error
	if record.StartTime, err = time.Parse(exportTimeLayout, startRaw); err != nil {
		return nil, false
	}
	if record.EndTime, err = time.Parse(exportTimeLayout, endRaw); err != nil {
		return nil, false
	}

	// Numeric values are the common case; categorical observations carry
	// an identifier string instead. Presence is flagged explicitly so a
	// measured "0" survives validation.
	if v, err := strconv.ParseFloat(valueRaw, 64); err == nil {
		record.Value = v
		record.HasNumericValue = true
	} else {
		record.ValueText = valueRaw
	}

	return &record, true
}

// parseWorkout reads a Workout element including its nested statistics
// children. Only an unrecoverable decoder error is returned as error;
// structural problems report ok=false after the element is consumed.
func (er *EntryReader) parseWorkout(start xml.StartElement) (*core.Workout, bool, error) {
	var workout core.Workout
	var startRaw, endRaw, durationRaw, durationUnit string

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "workoutActivityType":
			workout.ActivityType = attr.Value
		case "duration":
			durationRaw = attr.Value
		case "durationUnit":
			durationUnit = attr.Value
		case "sourceName":
			workout.SourceName = attr.Value
		case "startDate":
			startRaw = attr.Value
		case "endDate":
			endRaw = attr.Value
		}
	}

	usable := workout.ActivityType != ""

	var err error
	if usable {
		if workout.StartTime, err = time.Parse(exportTimeLayout, startRaw); err != nil {
			usable = false
		}
	}
	if usable {
		if workout.EndTime, err = time.Parse(exportTimeLayout, endRaw); err != nil {
			usable = false
		}
	}

	if d, err := strconv.ParseFloat(durationRaw, 64); err == nil {
		if strings.EqualFold(durationUnit, "sec") {
			d /= 60
		}
		workout.Duration = d
	}

	// Energy and distance live in nested WorkoutStatistics children on
	// newer exports; the element body must be walked either way.
	depth := 0
	for {
		tok, err := er.decoder.Token()
		if err != nil {
			if err == io.EOF {
				return nil, false, io.ErrUnexpectedEOF
			}
			return nil, false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "WorkoutStatistics" {
				er.applyWorkoutStatistics(&workout, t)
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				if !usable {
					return nil, false, nil
				}
				return &workout, true, nil
			}
			depth--
		}
	}
}

// applyWorkoutStatistics folds one statistics element into the workout's
// energy and distance sums.
func (er *EntryReader) applyWorkoutStatistics(workout *core.Workout, start xml.StartElement) {
	var statType, sumRaw string
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "type":
			statType = attr.Value
		case "sum":
			sumRaw = attr.Value
		}
	}

	sum, err := strconv.ParseFloat(sumRaw, 64)
	if err != nil {
		return
	}

	switch statType {
	case "HKQuantityTypeIdentifierActiveEnergyBurned":
		workout.EnergyBurned += sum
	case "HKQuantityTypeIdentifierDistanceWalkingRunning",
		"HKQuantityTypeIdentifierDistanceCycling",
		"HKQuantityTypeIdentifierDistanceSwimming":
		workout.Distance += sum
	}
}
