package recommend

import (
	"context"

	"counting-sheep-service/internal/domain"
)

// RuleLookup finds the admin-managed rule whose band contains a score.
// Implementations return domain.ErrRuleNotFound when no band matches.
type RuleLookup interface {
	Match(ctx context.Context, quizSlug string, score int) (domain.RecommendationRule, error)
}

// Resolver layers admin rules over the static defaults.
type Resolver struct {
	rules RuleLookup
}

func NewResolver(rules RuleLookup) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve returns guidance for a scored submission. Rule-store failures are
// treated the same as a missing band: the caller gets the fallback rather
// than an error, because recommendation content must never block a submit.
func (r *Resolver) Resolve(ctx context.Context, quizSlug string, score int) (domain.Recommendation, bool) {
	if r.rules != nil {
		if rule, err := r.rules.Match(ctx, quizSlug, score); err == nil && len(rule.Tips) > 0 {
			return domain.Recommendation{Title: rule.Title, Tips: rule.Tips}, true
		}
	}
	return Defaults(quizSlug, score)
}

// Interpretation derives the short interpretation string stored on a
// submission: the first tip of the resolved recommendation.
func Interpretation(rec domain.Recommendation, ok bool) string {
	if ok && len(rec.Tips) > 0 {
		return rec.Tips[0]
	}
	return "Assessment completed successfully."
}
