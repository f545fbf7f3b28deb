package ingestion

import (
	"strings"
	"unicode"
)

// Canonical metric codes for the identifiers that matter most for health
// insights. Identifiers outside this table pass through untouched; an
// unrecognized code is not a reason to skip an entry.
var canonicalMetricTypes = map[string]string{
	"HKQuantityTypeIdentifierStepCount":              "step_count",
	"HKQuantityTypeIdentifierActiveEnergyBurned":     "active_energy_burned",
	"HKQuantityTypeIdentifierBasalEnergyBurned":      "basal_energy_burned",
	"HKQuantityTypeIdentifierHeartRate":              "heart_rate",
	"HKQuantityTypeIdentifierRestingHeartRate":       "resting_heart_rate",
	"HKQuantityTypeIdentifierDistanceWalkingRunning": "distance_walking_running",
	"HKQuantityTypeIdentifierAppleExerciseTime":      "exercise_time",
	"HKQuantityTypeIdentifierBodyMass":               "body_mass",
	"HKQuantityTypeIdentifierBodyMassIndex":          "body_mass_index",
	"HKQuantityTypeIdentifierBodyFatPercentage":      "body_fat_percentage",
	"HKCategoryTypeIdentifierSleepAnalysis":          "sleep_analysis",
	"HKCategoryTypeIdentifierMindfulSession":         "mindful_session",
}

// Canonical units. Exports are inconsistent about casing and naming
// ("Cal" vs "kcal", "count/min" for heart rate).
var canonicalUnits = map[string]string{
	"count":     "count",
	"Cal":       "kcal",
	"kcal":      "kcal",
	"count/min": "bpm",
	"km":        "km",
	"mi":        "mi",
	"min":       "min",
	"kg":        "kg",
	"lb":        "lb",
	"%":         "percent",
}

const (
	quantityTypePrefix  = "HKQuantityTypeIdentifier"
	categoryTypePrefix  = "HKCategoryTypeIdentifier"
	categoryValuePrefix = "HKCategoryValue"
	activityTypePrefix  = "HKWorkoutActivityType"
)

// CanonicalMetricType maps an export type identifier to its canonical
// code. Unknown identifiers are passed through with their vendor prefix
// stripped, snake-cased for consistency with the known codes.
func CanonicalMetricType(raw string) string {
	if canonical, ok := canonicalMetricTypes[raw]; ok {
		return canonical
	}
	if stripped := strings.TrimPrefix(raw, quantityTypePrefix); stripped != raw {
		return snakeCase(stripped)
	}
	if stripped := strings.TrimPrefix(raw, categoryTypePrefix); stripped != raw {
		return snakeCase(stripped)
	}
	return raw
}

// CanonicalUnit maps an export unit to its canonical form.
// Unrecognized units pass through as-is.
func CanonicalUnit(raw string) string {
	if canonical, ok := canonicalUnits[raw]; ok {
		return canonical
	}
	return raw
}

// CanonicalValueText maps a categorical value identifier to a readable
// form, e.g. "HKCategoryValueSleepAnalysisAsleepDeep" -> "asleep_deep".
func CanonicalValueText(raw string) string {
	if stripped := strings.TrimPrefix(raw, categoryValuePrefix); stripped != raw {
		// Category values repeat the type name before the value proper.
		for typeName := range canonicalMetricTypes {
			short := strings.TrimPrefix(typeName, categoryTypePrefix)
			if short != typeName && strings.HasPrefix(stripped, short) {
				stripped = strings.TrimPrefix(stripped, short)
				break
			}
		}
		if stripped == "" {
			return raw
		}
		return snakeCase(stripped)
	}
	return raw
}

// CanonicalActivityType strips the verbose vendor prefix from workout
// activity names: "HKWorkoutActivityTypeRunning" -> "Running".
func CanonicalActivityType(raw string) string {
	return strings.TrimPrefix(raw, activityTypePrefix)
}

// snakeCase converts CamelCase identifiers to snake_case.
func snakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Word boundary: previous rune lowercase, or next rune lowercase
			// (handles acronym runs like "BMI" followed by a word).
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
