package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/identity"
)

// ProgressStore keeps anonymous attempt progress in Redis with a TTL, the
// server-side analog of browser local storage: transient by design, scoped to
// one session id, and gone after inactivity.
type ProgressStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProgressStore(client *redis.Client, ttl time.Duration) *ProgressStore {
	return &ProgressStore{client: client, ttl: ttl}
}

func (s *ProgressStore) Load(ctx context.Context, quizSlug string, id identity.Identity) (domain.Progress, error) {
	raw, err := s.client.Get(ctx, s.key(quizSlug, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Progress{}, domain.ErrProgressNotFound
		}
		return domain.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	var p domain.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Progress{}, fmt.Errorf("unmarshal progress: %w", err)
	}
	return p, nil
}

func (s *ProgressStore) Save(ctx context.Context, id identity.Identity, progress domain.Progress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := s.client.Set(ctx, s.key(progress.QuizSlug, id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *ProgressStore) Delete(ctx context.Context, quizSlug string, id identity.Identity) error {
	if err := s.client.Del(ctx, s.key(quizSlug, id)).Err(); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func (s *ProgressStore) key(quizSlug string, id identity.Identity) string {
	return "quiz:progress:" + quizSlug + ":" + id.Key()
}
