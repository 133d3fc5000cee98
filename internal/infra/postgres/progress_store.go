package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/identity"
)

// ProgressStore is the durable progress backend for authenticated users. One
// row per (quiz, user); answers are stored as JSONB.
type ProgressStore struct {
	pool *pgxpool.Pool
}

func NewProgressStore(pool *pgxpool.Pool) *ProgressStore {
	return &ProgressStore{pool: pool}
}

func (s *ProgressStore) Load(ctx context.Context, quizSlug string, id identity.Identity) (domain.Progress, error) {
	var (
		p        domain.Progress
		answers  []byte
		referral *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT quiz_slug, current_question, answers, referral_code, started_at, updated_at
		 FROM quiz_progress WHERE quiz_slug = $1 AND user_id = $2`,
		quizSlug, id.Key(),
	).Scan(&p.QuizSlug, &p.CurrentQuestion, &answers, &referral, &p.StartedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Progress{}, domain.ErrProgressNotFound
		}
		return domain.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	if err := json.Unmarshal(answers, &p.Answers); err != nil {
		return domain.Progress{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	if referral != nil {
		p.ReferralCode = *referral
	}
	return p, nil
}

func (s *ProgressStore) Save(ctx context.Context, id identity.Identity, progress domain.Progress) error {
	answers, err := json.Marshal(progress.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO quiz_progress (quiz_slug, user_id, current_question, answers, referral_code, started_at, updated_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		 ON CONFLICT (quiz_slug, user_id) DO UPDATE SET
		   current_question = excluded.current_question,
		   answers = excluded.answers,
		   referral_code = excluded.referral_code,
		   updated_at = excluded.updated_at`,
		progress.QuizSlug, id.Key(), progress.CurrentQuestion, answers,
		progress.ReferralCode, progress.StartedAt, progress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *ProgressStore) Delete(ctx context.Context, quizSlug string, id identity.Identity) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM quiz_progress WHERE quiz_slug = $1 AND user_id = $2`, quizSlug, id.Key())
	if err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}
