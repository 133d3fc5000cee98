package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"counting-sheep-service/internal/domain"
)

// Catalog resolves quiz metadata rows from Postgres.
type Catalog struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

func (c *Catalog) QuizInfo(ctx context.Context, slug string) (domain.QuizInfo, error) {
	var info domain.QuizInfo
	err := c.pool.QueryRow(ctx,
		`SELECT id, slug, title, max_score FROM quizzes WHERE slug = $1`, slug,
	).Scan(&info.ID, &info.Slug, &info.Title, &info.MaxScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.QuizInfo{}, domain.ErrQuizNotFound
		}
		return domain.QuizInfo{}, fmt.Errorf("load quiz info: %w", err)
	}
	return info, nil
}
