package memory

import (
	"context"
	"sync"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/identity"
)

// ProgressStore keeps attempt progress in process memory. It backs anonymous
// sessions when no Redis is configured and doubles as the test store.
type ProgressStore struct {
	mu        sync.RWMutex
	snapshots map[string]domain.Progress
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{snapshots: make(map[string]domain.Progress)}
}

func (s *ProgressStore) Load(_ context.Context, quizSlug string, id identity.Identity) (domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.snapshots[key(quizSlug, id)]
	if !ok {
		return domain.Progress{}, domain.ErrProgressNotFound
	}
	p.Answers = p.Answers.Clone()
	return p, nil
}

func (s *ProgressStore) Save(_ context.Context, id identity.Identity, progress domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	progress.Answers = progress.Answers.Clone()
	s.snapshots[key(progress.QuizSlug, id)] = progress
	return nil
}

func (s *ProgressStore) Delete(_ context.Context, quizSlug string, id identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key(quizSlug, id))
	return nil
}

func key(quizSlug string, id identity.Identity) string {
	return quizSlug + ":" + id.Key()
}
