package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"counting-sheep-service/internal/domain"
)

// RuleStore manages recommendation rules: band matching during submits and
// CRUD for the admin console.
type RuleStore struct {
	pool *pgxpool.Pool
}

func NewRuleStore(pool *pgxpool.Pool) *RuleStore {
	return &RuleStore{pool: pool}
}

func (s *RuleStore) Match(ctx context.Context, quizSlug string, score int) (domain.RecommendationRule, error) {
	var r domain.RecommendationRule
	err := s.pool.QueryRow(ctx,
		`SELECT id, quiz_slug, min_score, max_score, title, tips
		 FROM recommendation_rules
		 WHERE quiz_slug = $1 AND min_score <= $2 AND max_score >= $2
		 LIMIT 1`,
		quizSlug, score,
	).Scan(&r.ID, &r.QuizSlug, &r.MinScore, &r.MaxScore, &r.Title, &r.Tips)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RecommendationRule{}, domain.ErrRuleNotFound
		}
		return domain.RecommendationRule{}, fmt.Errorf("match rule: %w", err)
	}
	return r, nil
}

func (s *RuleStore) List(ctx context.Context, quizSlug string) ([]domain.RecommendationRule, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, quiz_slug, min_score, max_score, title, tips
		 FROM recommendation_rules
		 WHERE ($1 = '' OR quiz_slug = $1)
		 ORDER BY quiz_slug, min_score`,
		quizSlug,
	)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var out []domain.RecommendationRule
	for rows.Next() {
		var r domain.RecommendationRule
		if err := rows.Scan(&r.ID, &r.QuizSlug, &r.MinScore, &r.MaxScore, &r.Title, &r.Tips); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *RuleStore) Upsert(ctx context.Context, rule domain.RecommendationRule) (domain.RecommendationRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	tips := rule.Tips
	if tips == nil {
		tips = []string{}
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO recommendation_rules (id, quiz_slug, min_score, max_score, title, tips)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		   quiz_slug = excluded.quiz_slug,
		   min_score = excluded.min_score,
		   max_score = excluded.max_score,
		   title = excluded.title,
		   tips = excluded.tips`,
		rule.ID, rule.QuizSlug, rule.MinScore, rule.MaxScore, rule.Title, tips,
	)
	if err != nil {
		return domain.RecommendationRule{}, fmt.Errorf("upsert rule: %w", err)
	}
	return rule, nil
}

func (s *RuleStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM recommendation_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	return nil
}
