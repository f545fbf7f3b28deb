package badger

import (
	"encoding/binary"
	"time"

	"github.com/poiesic/vitalis/core"
)

// Key prefixes for different data types. Record and workout keys embed
// the dataset generation so a whole generation can be staged, swapped in
// and purged by prefix.
const (
	metaActiveKey     = "meta:active"
	generationPrefix  = "gen"
	recordPrefix      = "hlr"
	recordDatePrefix  = "hlrd"
	recordTypePrefix  = "hlrt"
	workoutPrefix     = "wkt"
	workoutDatePrefix = "wktd"
	runPrefix         = "inrun"
)

// makeGenerationKey generates the registry key marking a generation's existence.
func makeGenerationKey(gen string) []byte {
	return []byte(generationPrefix + ":" + gen)
}

// makeRecordKey generates a key for a health record by generation and ID.
func makeRecordKey(gen string, id core.ID) []byte {
	prefix := []byte(recordPrefix + ":" + gen + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeRecordDateKey generates a composite key for the record date index.
// Format: prefix:gen:timestamp:id
func makeRecordDateKey(gen string, timestamp time.Time, id core.ID) []byte {
	prefix := []byte(recordDatePrefix + ":" + gen + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialRecordDateKey generates a partial key for date range queries.
func makePartialRecordDateKey(gen string, timestamp time.Time) []byte {
	prefix := []byte(recordDatePrefix + ":" + gen + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeRecordTypeKey generates a composite key for the metric-type index.
// Format: prefix:gen:type\x00timestamp:id
// The NUL terminator keeps one type's keys from shadowing a longer type name.
func makeRecordTypeKey(gen, metricType string, timestamp time.Time, id core.ID) []byte {
	prefix := []byte(recordTypePrefix + ":" + gen + ":" + metricType + "\x00")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialRecordTypeKey generates a partial key for type-scoped range queries.
func makePartialRecordTypeKey(gen, metricType string, timestamp time.Time) []byte {
	prefix := []byte(recordTypePrefix + ":" + gen + ":" + metricType + "\x00")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// recordTypeIndexPrefix returns the iteration prefix for one metric type.
func recordTypeIndexPrefix(gen, metricType string) []byte {
	return []byte(recordTypePrefix + ":" + gen + ":" + metricType + "\x00")
}

// makeWorkoutKey generates a key for a workout by generation and ID.
func makeWorkoutKey(gen string, id core.ID) []byte {
	prefix := []byte(workoutPrefix + ":" + gen + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeWorkoutDateKey generates a composite key for the workout date index.
func makeWorkoutDateKey(gen string, timestamp time.Time, id core.ID) []byte {
	prefix := []byte(workoutDatePrefix + ":" + gen + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialWorkoutDateKey generates a partial key for workout range queries.
func makePartialWorkoutDateKey(gen string, timestamp time.Time) []byte {
	prefix := []byte(workoutDatePrefix + ":" + gen + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// generationDataPrefixes returns every data prefix belonging to one generation,
// including its registry key. Dropping these removes the generation entirely.
func generationDataPrefixes(gen string) [][]byte {
	return [][]byte{
		[]byte(recordPrefix + ":" + gen + ":"),
		[]byte(recordDatePrefix + ":" + gen + ":"),
		[]byte(recordTypePrefix + ":" + gen + ":"),
		[]byte(workoutPrefix + ":" + gen + ":"),
		[]byte(workoutDatePrefix + ":" + gen + ":"),
		makeGenerationKey(gen),
	}
}

// makeRunKey generates a key for an ingestion run by its ULID.
// ULIDs sort lexicographically by creation time, which makes reverse
// iteration over the prefix yield newest runs first.
func makeRunKey(id string) []byte {
	return []byte(runPrefix + ":" + id)
}
