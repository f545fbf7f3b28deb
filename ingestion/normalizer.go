package ingestion

import (
	"github.com/poiesic/vitalis/core"
)

// Normalizer canonicalizes parsed entries and deduplicates them within
// one ingestion run. The first entry with a given identity tuple wins;
// later duplicates are dropped and counted as skipped.
//
// A Normalizer is single-run state and is not safe for concurrent use,
// matching the strictly sequential parse loop that feeds it.
type Normalizer struct {
	seen    map[core.ID]struct{}
	skipped int
}

func NewNormalizer() *Normalizer {
	return &Normalizer{seen: make(map[core.ID]struct{})}
}

// Skipped returns the number of entries rejected by validation or
// dropped as within-run duplicates.
func (n *Normalizer) Skipped() int {
	return n.skipped
}

// NormalizeRecord canonicalizes a record in place and assigns its
// content-based ID. It returns false when the record failed validation
// or duplicates an earlier record in this run.
func (n *Normalizer) NormalizeRecord(record *core.HealthRecord) bool {
	record.MetricType = CanonicalMetricType(record.MetricType)
	record.Unit = CanonicalUnit(record.Unit)
	if record.ValueText != "" {
		record.ValueText = CanonicalValueText(record.ValueText)
	}

	if err := core.ValidateHealthRecord(record); err != nil {
		n.skipped++
		return false
	}

	record.Id = core.IDFromContent(record.Tuple())
	return n.admit(record.Id)
}

// NormalizeWorkout canonicalizes a workout in place and assigns its
// content-based ID, with the same skip semantics as NormalizeRecord.
func (n *Normalizer) NormalizeWorkout(workout *core.Workout) bool {
	workout.ActivityType = CanonicalActivityType(workout.ActivityType)

	if err := core.ValidateWorkout(workout); err != nil {
		n.skipped++
		return false
	}

	workout.Id = core.IDFromContent(workout.Tuple())
	return n.admit(workout.Id)
}

func (n *Normalizer) admit(id core.ID) bool {
	if _, dup := n.seen[id]; dup {
		n.skipped++
		return false
	}
	n.seen[id] = struct{}{}
	return true
}
