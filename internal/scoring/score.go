// Package scoring holds the pure scoring arithmetic. Every function here is
// deterministic over its inputs so results can be re-derived from persisted
// answers.
package scoring

import (
	"fmt"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/quizdata"
)

// Score sums the weight of the option matching each recorded answer. Matching
// is done on the canonical string form, which tolerates numeric answers stored
// against string option values and vice versa. Missing or unmatched answers
// contribute zero; an answer that no longer matches any configured option is
// indistinguishable from an unanswered question.
func Score(questions []domain.Question, answers domain.Answers) int {
	total := 0
	for _, q := range questions {
		ans, ok := answers[q.ID]
		if !ok {
			continue
		}
		norm := ans.String()
		for _, opt := range q.Options {
			if opt.Value.String() == norm {
				total += opt.Score
				break
			}
		}
	}
	return total
}

// Result is the outcome of a positional scorer.
type Result struct {
	Score          int    `json:"score"`
	Interpretation string `json:"interpretation"`
	Max            int    `json:"max"`
}

// Epworth scores eight items rated 0-3.
func Epworth(values []int) Result {
	score := sum(values)
	interpretation := "Normal daytime sleepiness"
	switch {
	case score >= 16:
		interpretation = "Severe excessive sleepiness"
	case score >= 13:
		interpretation = "Moderate excessive sleepiness"
	case score >= 11:
		interpretation = "Mild excessive sleepiness"
	}
	return Result{Score: score, Interpretation: interpretation, Max: 24}
}

// StopBang scores eight yes/no items, one point per yes.
func StopBang(values []int) Result {
	score := sum(values)
	interpretation := "Low OSA risk"
	switch {
	case score >= 5:
		interpretation = "High OSA risk"
	case score >= 3:
		interpretation = "Intermediate OSA risk"
	}
	return Result{Score: score, Interpretation: interpretation, Max: 8}
}

// PSQI sums the 0-3 component items, clamped to 21 for banding.
func PSQI(values []int) Result {
	score := sum(values)
	if score > 21 {
		score = 21
	}
	interpretation := "Good sleep quality"
	if score > 5 {
		interpretation = "Poor sleep quality"
	}
	return Result{Score: score, Interpretation: interpretation, Max: 21}
}

// BySlug dispatches to the positional scorer for a quiz slug.
func BySlug(slug string, values []int) (Result, error) {
	switch slug {
	case quizdata.SlugEpworth:
		return Epworth(values), nil
	case quizdata.SlugStopBang, "stopbang":
		return StopBang(values), nil
	case quizdata.SlugPSQI:
		return PSQI(values), nil
	}
	return Result{}, fmt.Errorf("unknown quiz slug %q: %w", slug, domain.ErrQuizNotFound)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
