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
	"log/slog"
	"strings"
	"unicode"

	"github.com/poiesic/vitalis/ai"
	"github.com/poiesic/vitalis/core"
)

// defaultThreshold is the minimum share of keyword hits the leading
// intent must own before the keyword decision is trusted.
const defaultThreshold = 0.25

// modelConfidence is reported when the model, not the keyword policy,
// decided the intent.
const modelConfidence = 0.5

// Policy drives keyword-based intent classification. Single-word
// keywords match whole words of the query (plus a plural "s" form);
// multi-word phrases like "heart rate" match as phrases. Matching is
// case-insensitive and ignores punctuation.
type Policy struct {
	Keywords  map[core.Intent][]string
	Threshold float64
}

// DefaultPolicy returns the built-in keyword policy.
func DefaultPolicy() *Policy {
	return &Policy{
		Threshold: defaultThreshold,
		Keywords: map[core.Intent][]string{
			core.IntentFitness: {
				"step", "walk", "run", "ran", "workout", "exercise",
				"training", "distance", "heart rate", "cardio", "active",
				"swim", "cycle", "cycling", "gym",
			},
			core.IntentNutrition: {
				"calorie", "calories", "energy", "burn", "burned", "weight",
				"body mass", "bmi", "diet", "eat", "ate", "food", "fat",
			},
			core.IntentWellness: {
				"sleep", "slept", "rest", "stress", "mindful", "meditation",
				"recovery", "bed", "relax", "mood",
			},
		},
	}
}

// Classifier maps a query to an intent. The keyword policy decides when
// it is confident; otherwise an optional model assist breaks the tie,
// and general is the final fallback.
type Classifier struct {
	policy    *Policy
	completer ai.Completer
	logger    *slog.Logger
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithModelAssist lets the classifier consult the model when the
// keyword policy is inconclusive.
func WithModelAssist(completer ai.Completer) ClassifierOption {
	return func(c *Classifier) {
		c.completer = completer
	}
}

// WithClassifierLogger sets the classifier's logger.
func WithClassifierLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier creates a classifier over the given policy.
// A nil policy selects DefaultPolicy.
func NewClassifier(policy *Policy, opts ...ClassifierOption) *Classifier {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if policy.Threshold <= 0 {
		policy.Threshold = defaultThreshold
	}

	c := &Classifier{
		policy: policy,
		logger: slog.Default().With("component", "intent-classifier"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the intent for a query and the confidence of the
// decision. Classification never fails: an unclassifiable query is
// general with zero confidence.
func (c *Classifier) Classify(ctx context.Context, query string) (core.Intent, float64) {
	intent, confidence := c.scoreKeywords(query)
	if confidence >= c.policy.Threshold {
		c.logger.Debug("keyword classification", "intent", intent, "confidence", confidence)
		return intent, confidence
	}

	if c.completer != nil {
		if assisted, ok := c.askModel(ctx, query); ok {
			c.logger.Debug("model-assisted classification", "intent", assisted)
			return assisted, modelConfidence
		}
	}

	c.logger.Debug("query unclassified, using general", "confidence", confidence)
	return core.IntentGeneral, confidence
}

// scoreKeywords returns the intent owning the largest share of keyword
// hits and that share. Specific intents win ties in declaration order,
// which keeps general last.
func (c *Classifier) scoreKeywords(query string) (core.Intent, float64) {
	normalized := normalizeQuery(query)

	hits := make(map[core.Intent]int, len(c.policy.Keywords))
	total := 0
	for intent, keywords := range c.policy.Keywords {
		for _, keyword := range keywords {
			if matchKeyword(normalized, keyword) {
				hits[intent]++
				total++
			}
		}
	}
	if total == 0 {
		return core.IntentGeneral, 0
	}

	best := core.IntentGeneral
	bestHits := 0
	for _, intent := range core.Intents {
		if hits[intent] > bestHits {
			best = intent
			bestHits = hits[intent]
		}
	}
	return best, float64(bestHits) / float64(total)
}

// normalizeQuery lowercases the query, strips punctuation and collapses
// whitespace, leaving space-padded words for keyword matching.
func normalizeQuery(query string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, query)
	return " " + strings.Join(strings.Fields(mapped), " ") + " "
}

// matchKeyword matches one keyword against a normalized query. Whole
// words only: "eat" must not hit "weather", nor "ran" hit "orange".
// Single-word keywords also accept their plural "s" form, and phrases
// match as adjacent words.
func matchKeyword(normalized, keyword string) bool {
	if strings.Contains(keyword, " ") {
		return strings.Contains(normalized, " "+keyword+" ")
	}
	return strings.Contains(normalized, " "+keyword+" ") ||
		strings.Contains(normalized, " "+keyword+"s ")
}

// askModel asks the completer to name an intent. Any provider failure
// or unparseable answer reports ok=false; classification must never
// depend on the provider being up.
func (c *Classifier) askModel(ctx context.Context, query string) (core.Intent, bool) {
	var b strings.Builder
	b.WriteString("Classify the user's question into exactly one category: ")
	for i, intent := range core.Intents {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(intent))
	}
	b.WriteString(". Respond with the single category word only.\n\nQuestion: ")
	b.WriteString(query)

	answer, err := c.completer.Complete(ctx, b.String())
	if err != nil {
		c.logger.Debug("model assist unavailable", "err", err)
		return core.IntentGeneral, false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	for _, intent := range core.Intents {
		if strings.Contains(answer, string(intent)) {
			return intent, true
		}
	}
	return core.IntentGeneral, false
}
