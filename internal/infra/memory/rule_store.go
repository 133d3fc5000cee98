package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"counting-sheep-service/internal/domain"
)

// RuleStore holds recommendation rules in memory with the same surface as the
// Postgres store: band matching for submits, CRUD for the admin console.
type RuleStore struct {
	mu    sync.RWMutex
	rules map[string]domain.RecommendationRule
}

func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(map[string]domain.RecommendationRule)}
}

func (s *RuleStore) Match(_ context.Context, quizSlug string, score int) (domain.RecommendationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rules {
		if r.QuizSlug == quizSlug && r.Contains(score) {
			return r, nil
		}
	}
	return domain.RecommendationRule{}, domain.ErrRuleNotFound
}

func (s *RuleStore) List(_ context.Context, quizSlug string) ([]domain.RecommendationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.RecommendationRule
	for _, r := range s.rules {
		if quizSlug == "" || r.QuizSlug == quizSlug {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RuleStore) Upsert(_ context.Context, rule domain.RecommendationRule) (domain.RecommendationRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	s.rules[rule.ID] = rule
	return rule, nil
}

func (s *RuleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rules, id)
	return nil
}
