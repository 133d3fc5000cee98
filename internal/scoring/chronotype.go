package scoring

import (
	"math"
	"strconv"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/quizdata"
)

// ChronotypeResult maps a personality attempt to a chronotype category.
type ChronotypeResult struct {
	RawScore   float64           `json:"rawScore"`
	Normalized int               `json:"normalizedScore"`
	Category   quizdata.Category `json:"category"`
}

// Chronotype scores Likert answers (1-5, keyed by statement id). Evening
// statements are reverse-scored, weights applied, and the total normalized to
// 0-100 before band lookup. Unanswered statements are skipped, matching the
// positional scorers' tolerance for sparse answers.
func Chronotype(answers map[int]int) ChronotypeResult {
	statements := quizdata.PersonalityStatements()

	raw := 0.0
	minScore := 0.0
	maxScore := 0.0
	for _, s := range statements {
		w := s.Weight
		if w == 0 {
			w = 1
		}
		minScore += float64(quizdata.LikertMin) * w
		maxScore += float64(quizdata.LikertMax) * w

		a, ok := answers[s.ID]
		if !ok || a == 0 {
			continue
		}
		score := float64(a)
		if s.Evening {
			score = float64(quizdata.LikertMax+1) - score
		}
		raw += score * w
	}

	normalized := int(math.Round((raw - minScore) / (maxScore - minScore) * 100))

	categories := quizdata.PersonalityCategories()
	// Default to the balanced middle band when normalization lands outside
	// every range (possible with sparse answers pushing below the minimum).
	category := categories[2]
	for _, c := range categories {
		if normalized >= c.Min && normalized <= c.Max {
			category = c
			break
		}
	}

	return ChronotypeResult{RawScore: raw, Normalized: normalized, Category: category}
}

// ChronotypeFromAnswers scores a recorded personality attempt. Answer keys are
// statement ids in string form; values outside the Likert range are skipped.
func ChronotypeFromAnswers(answers domain.Answers) ChronotypeResult {
	byID := make(map[int]int, len(answers))
	for key, value := range answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		a, err := strconv.Atoi(value.String())
		if err != nil || a < quizdata.LikertMin || a > quizdata.LikertMax {
			continue
		}
		byID[id] = a
	}
	return Chronotype(byID)
}
