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

package routing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/vitalis/ai"
	"github.com/poiesic/vitalis/core"
	"github.com/poiesic/vitalis/storage"
)

// Agent answers queries for one intent domain. Implementations gather a
// bounded slice of the committed dataset and delegate phrasing to the
// provider.
type Agent interface {
	// ID is a stable machine identifier, e.g. "fitness-agent".
	ID() string

	// Name is the human-readable agent name.
	Name() string

	// Intent is the single intent this agent serves.
	Intent() core.Intent

	// Respond answers the query. A returned error means the provider
	// could not produce an answer; the router degrades on the caller's
	// behalf.
	Respond(ctx context.Context, query string) (string, error)
}

// contextWindow bounds how far back agents look when gathering data.
const contextWindow = 7 * 24 * time.Hour

// recentWorkoutLimit bounds the workout list included in agent context.
const recentWorkoutLimit = 5

// baseAgent carries the pieces every agent shares.
type baseAgent struct {
	id     string
	name   string
	intent core.Intent

	repo      storage.HealthRepository
	completer ai.Completer
}

func (a *baseAgent) ID() string          { return a.id }
func (a *baseAgent) Name() string        { return a.name }
func (a *baseAgent) Intent() core.Intent { return a.intent }

// complete wraps the data context and query into a single prompt.
func (a *baseAgent) complete(ctx context.Context, role, dataContext, query string) (string, error) {
	var b strings.Builder
	b.WriteString("You are ")
	b.WriteString(role)
	b.WriteString(" Answer using only the health data below. ")
	b.WriteString("Be concise and concrete; say so plainly when the data cannot answer the question.\n\n")
	b.WriteString("Health data:\n")
	if dataContext == "" {
		b.WriteString("(no data available)\n")
	} else {
		b.WriteString(dataContext)
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(query)

	return a.completer.Complete(ctx, b.String())
}

// sumRecords totals record values over a window ending now.
func sumRecords(ctx context.Context, repo storage.HealthRepository, metricType string, window time.Duration) (float64, int, error) {
	end := time.Now()
	records, err := repo.RecordsByType(ctx, metricType, end.Add(-window), end)
	if err != nil {
		return 0, 0, err
	}
	var total float64
	for _, r := range records {
		total += r.Value
	}
	return total, len(records), nil
}

// statsLine formats min/avg/max over a window for one metric, or ""
// when the dataset has none.
func statsLine(ctx context.Context, repo storage.HealthRepository, metricType, label, unit string, window time.Duration) string {
	end := time.Now()
	records, err := repo.RecordsByType(ctx, metricType, end.Add(-window), end)
	if err != nil || len(records) == 0 {
		return ""
	}

	min, max, sum := records[0].Value, records[0].Value, 0.0
	for _, r := range records {
		if r.Value < min {
			min = r.Value
		}
		if r.Value > max {
			max = r.Value
		}
		sum += r.Value
	}
	return fmt.Sprintf("- %s over the past 7 days: min %.0f, avg %.0f, max %.0f %s\n",
		label, min, sum/float64(len(records)), max, unit)
}

// latestLine formats the newest observation of a metric, or "" when the
// dataset has none.
func latestLine(ctx context.Context, repo storage.HealthRepository, metricType, label string) string {
	record, err := repo.LatestRecord(ctx, metricType)
	if err != nil {
		// Missing metrics and read failures alike just leave the line out.
		return ""
	}
	if record.ValueText != "" {
		return fmt.Sprintf("- latest %s: %s (%s)\n", label, record.ValueText, record.StartTime.Format("2006-01-02"))
	}
	return fmt.Sprintf("- latest %s: %.1f %s (%s)\n", label, record.Value, record.Unit, record.StartTime.Format("2006-01-02"))
}

// FitnessAgent answers activity and exercise questions.
type FitnessAgent struct {
	baseAgent
}

var _ Agent = (*FitnessAgent)(nil)

// NewFitnessAgent creates the fitness-domain agent.
func NewFitnessAgent(repo storage.HealthRepository, completer ai.Completer) (*FitnessAgent, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	return &FitnessAgent{baseAgent{
		id:        "fitness-agent",
		name:      "Fitness Coach",
		intent:    core.IntentFitness,
		repo:      repo,
		completer: completer,
	}}, nil
}

// Respond gathers step, distance, heart-rate and workout context for
// the past week and asks the provider.
func (a *FitnessAgent) Respond(ctx context.Context, query string) (string, error) {
	var b strings.Builder

	if steps, days, err := sumRecords(ctx, a.repo, "step_count", contextWindow); err == nil && days > 0 {
		fmt.Fprintf(&b, "- steps over the past 7 days: %.0f across %d samples\n", steps, days)
	}
	if distance, n, err := sumRecords(ctx, a.repo, "distance_walking_running", contextWindow); err == nil && n > 0 {
		fmt.Fprintf(&b, "- walking/running distance over the past 7 days: %.1f km\n", distance)
	}
	b.WriteString(statsLine(ctx, a.repo, "heart_rate", "heart rate", "bpm", contextWindow))

	if workouts, err := a.repo.RecentWorkouts(ctx, recentWorkoutLimit); err == nil && len(workouts) > 0 {
		b.WriteString("- recent workouts:\n")
		for _, w := range workouts {
			fmt.Fprintf(&b, "    %s on %s: %.0f min", w.ActivityType, w.StartTime.Format("2006-01-02"), w.Duration)
			if w.Distance > 0 {
				fmt.Fprintf(&b, ", %.1f km", w.Distance)
			}
			if w.EnergyBurned > 0 {
				fmt.Fprintf(&b, ", %.0f kcal", w.EnergyBurned)
			}
			b.WriteString("\n")
		}
	}

	return a.complete(ctx, "a fitness coach analyzing personal activity data.", b.String(), query)
}

// NutritionAgent answers energy and body-composition questions.
type NutritionAgent struct {
	baseAgent
}

var _ Agent = (*NutritionAgent)(nil)

// NewNutritionAgent creates the nutrition-domain agent.
func NewNutritionAgent(repo storage.HealthRepository, completer ai.Completer) (*NutritionAgent, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	return &NutritionAgent{baseAgent{
		id:        "nutrition-agent",
		name:      "Nutrition Advisor",
		intent:    core.IntentNutrition,
		repo:      repo,
		completer: completer,
	}}, nil
}

// Respond gathers energy expenditure and body measurements for the past
// week and asks the provider.
func (a *NutritionAgent) Respond(ctx context.Context, query string) (string, error) {
	var b strings.Builder

	if active, n, err := sumRecords(ctx, a.repo, "active_energy_burned", contextWindow); err == nil && n > 0 {
		fmt.Fprintf(&b, "- active energy burned over the past 7 days: %.0f kcal\n", active)
	}
	if basal, n, err := sumRecords(ctx, a.repo, "basal_energy_burned", contextWindow); err == nil && n > 0 {
		fmt.Fprintf(&b, "- resting energy burned over the past 7 days: %.0f kcal\n", basal)
	}
	b.WriteString(latestLine(ctx, a.repo, "body_mass", "body mass"))
	b.WriteString(latestLine(ctx, a.repo, "body_mass_index", "body mass index"))
	b.WriteString(latestLine(ctx, a.repo, "body_fat_percentage", "body fat"))

	return a.complete(ctx, "a nutrition advisor analyzing energy balance and body composition.", b.String(), query)
}

// WellnessAgent answers sleep, recovery and mindfulness questions.
type WellnessAgent struct {
	baseAgent
}

var _ Agent = (*WellnessAgent)(nil)

// NewWellnessAgent creates the wellness-domain agent.
func NewWellnessAgent(repo storage.HealthRepository, completer ai.Completer) (*WellnessAgent, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	return &WellnessAgent{baseAgent{
		id:        "wellness-agent",
		name:      "Wellness Guide",
		intent:    core.IntentWellness,
		repo:      repo,
		completer: completer,
	}}, nil
}

// Respond gathers sleep and mindfulness context for the past week and
// asks the provider.
func (a *WellnessAgent) Respond(ctx context.Context, query string) (string, error) {
	var b strings.Builder

	end := time.Now()
	if sessions, err := a.repo.RecordsByType(ctx, "sleep_analysis", end.Add(-contextWindow), end); err == nil && len(sessions) > 0 {
		var total time.Duration
		for _, s := range sessions {
			total += s.EndTime.Sub(s.StartTime)
		}
		fmt.Fprintf(&b, "- sleep over the past 7 days: %.1f hours across %d sessions\n",
			total.Hours(), len(sessions))
	}
	if minutes, n, err := sumRecords(ctx, a.repo, "mindful_session", contextWindow); err == nil && n > 0 {
		fmt.Fprintf(&b, "- mindful sessions over the past 7 days: %d (%.0f min)\n", n, minutes)
	}
	b.WriteString(latestLine(ctx, a.repo, "resting_heart_rate", "resting heart rate"))

	return a.complete(ctx, "a wellness guide analyzing sleep and recovery data.", b.String(), query)
}

// GeneralAgent answers anything the specific agents don't cover, with a
// dataset overview for context.
type GeneralAgent struct {
	baseAgent
}

var _ Agent = (*GeneralAgent)(nil)

// NewGeneralAgent creates the catch-all agent.
func NewGeneralAgent(repo storage.HealthRepository, completer ai.Completer) (*GeneralAgent, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	return &GeneralAgent{baseAgent{
		id:        "general-agent",
		name:      "Health Assistant",
		intent:    core.IntentGeneral,
		repo:      repo,
		completer: completer,
	}}, nil
}

// Respond summarizes what the dataset holds and asks the provider.
func (a *GeneralAgent) Respond(ctx context.Context, query string) (string, error) {
	var b strings.Builder

	if counts, err := a.repo.MetricTypeCounts(ctx); err == nil && len(counts) > 0 {
		b.WriteString("- available metrics:\n")
		for metricType, count := range counts {
			fmt.Fprintf(&b, "    %s: %d records\n", metricType, count)
		}
	}
	if records, workouts, err := a.repo.Counts(ctx); err == nil {
		fmt.Fprintf(&b, "- totals: %d records, %d workouts\n", records, workouts)
	}

	return a.complete(ctx, "a personal health assistant.", b.String(), query)
}
