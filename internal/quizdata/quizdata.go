// Package quizdata holds the static questionnaire definitions. Definitions are
// compile-time config; only metadata (id, slug, title, max score) lives in the
// database.
package quizdata

import "counting-sheep-service/internal/domain"

const (
	SlugEpworth     = "epworth"
	SlugStopBang    = "stop_bang"
	SlugPSQI        = "psqi"
	SlugPersonality = "sleep-personality"
)

// StorageSlug maps a definition slug to the slug used by the metadata store.
// Older seeds use "stopbang" without the underscore.
func StorageSlug(slug string) string {
	if slug == SlugStopBang {
		return "stopbang"
	}
	return slug
}

// BySlug returns the quiz definition for a slug, accepting both the
// definition and storage spellings of STOP-BANG.
func BySlug(slug string) (domain.Quiz, bool) {
	switch slug {
	case SlugEpworth:
		return Epworth(), true
	case SlugStopBang, "stopbang":
		return StopBang(), true
	case SlugPSQI:
		return PSQI(), true
	case SlugPersonality:
		return Personality(), true
	}
	return domain.Quiz{}, false
}

// Slugs lists every supported definition slug.
func Slugs() []string {
	return []string{SlugEpworth, SlugStopBang, SlugPSQI, SlugPersonality}
}

// MaxScore sums the highest option weight of every question.
func MaxScore(q domain.Quiz) int {
	total := 0
	for _, question := range q.Questions {
		best := 0
		for _, opt := range question.Options {
			if opt.Score > best {
				best = opt.Score
			}
		}
		total += best
	}
	return total
}

func radioScale(id, prompt string, labels []string) domain.Question {
	opts := make([]domain.Option, len(labels))
	for i, label := range labels {
		opts[i] = domain.Option{Value: domain.IntValue(i), Label: label, Score: i}
	}
	return domain.Question{ID: id, Prompt: prompt, Kind: domain.KindRadio, Options: opts, Required: true}
}

func yesNo(id, prompt string) domain.Question {
	return domain.Question{
		ID:     id,
		Prompt: prompt,
		Kind:   domain.KindRadio,
		Options: []domain.Option{
			{Value: domain.StringValue("yes"), Label: "Yes", Score: 1},
			{Value: domain.StringValue("no"), Label: "No", Score: 0},
		},
		Required: true,
	}
}
