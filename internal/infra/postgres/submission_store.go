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

// SubmissionStore persists completed submissions. Rows are written once and
// never updated.
type SubmissionStore struct {
	pool *pgxpool.Pool
}

func NewSubmissionStore(pool *pgxpool.Pool) *SubmissionStore {
	return &SubmissionStore{pool: pool}
}

func (s *SubmissionStore) Insert(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("marshal answers: %w", err)
	}
	tips := sub.Tips
	if tips == nil {
		tips = []string{}
	}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO quiz_submissions
		   (id, quiz_id, quiz_slug, user_id, session_id, score, interpretation, tips, answers, referral_code, shared_token, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, NULLIF($10, ''), $11, $12)
		 RETURNING created_at`,
		sub.ID, sub.QuizID, sub.QuizSlug, sub.UserID, sub.SessionID, sub.Score,
		sub.Interpretation, tips, answers, sub.ReferralCode, sub.ShareToken, sub.CreatedAt,
	).Scan(&sub.CreatedAt)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

func (s *SubmissionStore) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	return s.get(ctx, `WHERE id = $1`, id)
}

func (s *SubmissionStore) GetByShareToken(ctx context.Context, token string) (domain.Submission, error) {
	return s.get(ctx, `WHERE shared_token = $1`, token)
}

func (s *SubmissionStore) get(ctx context.Context, where string, arg any) (domain.Submission, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, quiz_id, quiz_slug, COALESCE(user_id, ''), COALESCE(session_id, ''),
		        score, interpretation, tips, answers, COALESCE(referral_code, ''), shared_token, created_at
		 FROM quiz_submissions `+where, arg)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Submission{}, domain.ErrSubmissionNotFound
		}
		return domain.Submission{}, fmt.Errorf("load submission: %w", err)
	}
	return sub, nil
}

// ListByIdentity returns the identity's submission history, newest first.
func (s *SubmissionStore) ListByIdentity(ctx context.Context, id identity.Identity) ([]domain.Submission, error) {
	column := "user_id"
	if id.Anonymous() {
		column = "session_id"
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, quiz_id, quiz_slug, COALESCE(user_id, ''), COALESCE(session_id, ''),
		        score, interpretation, tips, answers, COALESCE(referral_code, ''), shared_token, created_at
		 FROM quiz_submissions WHERE `+column+` = $1
		 ORDER BY created_at DESC`,
		id.Key(),
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Summary aggregates submissions per quiz for the admin console.
func (s *SubmissionStore) Summary(ctx context.Context) ([]domain.QuizStats, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT quiz_slug, COUNT(*), AVG(score)
		 FROM quiz_submissions GROUP BY quiz_slug ORDER BY quiz_slug`)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	var out []domain.QuizStats
	for rows.Next() {
		var st domain.QuizStats
		if err := rows.Scan(&st.QuizSlug, &st.Submissions, &st.AverageScore); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanSubmission(row pgx.Row) (domain.Submission, error) {
	var (
		sub     domain.Submission
		answers []byte
	)
	err := row.Scan(&sub.ID, &sub.QuizID, &sub.QuizSlug, &sub.UserID, &sub.SessionID,
		&sub.Score, &sub.Interpretation, &sub.Tips, &answers, &sub.ReferralCode,
		&sub.ShareToken, &sub.CreatedAt)
	if err != nil {
		return domain.Submission{}, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &sub.Answers); err != nil {
			return domain.Submission{}, err
		}
	}
	return sub, nil
}
