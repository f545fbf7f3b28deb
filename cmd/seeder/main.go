// Seeder generates a synthetic health export document and optionally
// ingests it, giving a working dataset without a real device export.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/poiesic/vitalis"
)

var (
	outPath = flag.String("out", "export.xml", "where to write the generated document")
	days    = flag.Int("days", 30, "days of history to generate")
	seed    = flag.Int64("seed", 1, "random seed, for reproducible documents")
	dbPath  = flag.String("db", "", "ingest the generated document into this database")
)

const timeLayout = "2006-01-02 15:04:05 -0700"

var activities = []string{
	"HKWorkoutActivityTypeRunning",
	"HKWorkoutActivityTypeWalking",
	"HKWorkoutActivityTypeCycling",
	"HKWorkoutActivityTypeYoga",
}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func record(b *strings.Builder, metricType, unit, source string, value float64, start, end time.Time) {
	fmt.Fprintf(b,
		" <Record type=%q sourceName=%q unit=%q startDate=%q endDate=%q value=\"%.1f\"/>\n",
		metricType, source, unit, start.Format(timeLayout), end.Format(timeLayout), value)
}

func generate(rng *rand.Rand, days int) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<HealthData locale=\"en_US\">\n")
	fmt.Fprintf(&b, " <ExportDate value=%q/>\n", time.Now().Format(timeLayout))

	for day := days; day > 0; day-- {
		morning := time.Now().Add(-time.Duration(day) * 24 * time.Hour).Truncate(time.Hour)

		// Hourly step samples through the waking day.
		for hour := 8; hour < 22; hour++ {
			start := morning.Add(time.Duration(hour) * time.Hour)
			record(&b, "HKQuantityTypeIdentifierStepCount", "count", "Phone",
				float64(rng.Intn(1200)), start, start.Add(time.Hour))
		}

		record(&b, "HKQuantityTypeIdentifierRestingHeartRate", "count/min", "Watch",
			52+float64(rng.Intn(12)), morning.Add(6*time.Hour), morning.Add(6*time.Hour))
		record(&b, "HKQuantityTypeIdentifierActiveEnergyBurned", "Cal", "Watch",
			300+float64(rng.Intn(500)), morning.Add(8*time.Hour), morning.Add(22*time.Hour))

		// One sleep session per night.
		sleepStart := morning.Add(-90 * time.Minute)
		sleepEnd := morning.Add(time.Duration(6+rng.Intn(3)) * time.Hour)
		fmt.Fprintf(&b,
			" <Record type=%q sourceName=%q startDate=%q endDate=%q value=%q/>\n",
			"HKCategoryTypeIdentifierSleepAnalysis", "Watch",
			sleepStart.Format(timeLayout), sleepEnd.Format(timeLayout),
			"HKCategoryValueSleepAnalysisAsleepCore")

		// A workout every couple of days.
		if day%2 == 0 {
			activity := activities[rng.Intn(len(activities))]
			duration := 20 + rng.Intn(50)
			start := morning.Add(17 * time.Hour)
			end := start.Add(time.Duration(duration) * time.Minute)
			fmt.Fprintf(&b,
				" <Workout workoutActivityType=%q duration=\"%d\" durationUnit=\"min\" sourceName=\"Watch\" startDate=%q endDate=%q>\n",
				activity, duration, start.Format(timeLayout), end.Format(timeLayout))
			fmt.Fprintf(&b,
				"  <WorkoutStatistics type=\"HKQuantityTypeIdentifierActiveEnergyBurned\" sum=\"%d\" unit=\"kcal\"/>\n",
				150+rng.Intn(400))
			fmt.Fprintf(&b,
				"  <WorkoutStatistics type=\"HKQuantityTypeIdentifierDistanceWalkingRunning\" sum=\"%.1f\" unit=\"km\"/>\n",
				2+rng.Float64()*8)
			b.WriteString(" </Workout>\n")
		}
	}

	b.WriteString("</HealthData>\n")
	return b.String()
}

func main() {
	rng := rand.New(rand.NewSource(*seed))

	doc := generate(rng, *days)
	if err := os.WriteFile(*outPath, []byte(doc), 0o644); err != nil {
		panic(err)
	}
	slog.Info("wrote synthetic export", "path", *outPath, "days", *days)

	if *dbPath == "" {
		return
	}

	db, err := vitalis.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Close()

	run, err := pipeline.Ingest(context.Background(), *outPath)
	if err != nil {
		panic(err)
	}
	slog.Info("ingested synthetic export",
		"run", run.Id,
		"records", run.RecordCount,
		"workouts", run.WorkoutCount,
		"skipped", run.SkippedEntries)
}
