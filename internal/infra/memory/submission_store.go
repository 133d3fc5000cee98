package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/identity"
)

// SubmissionStore keeps completed submissions in memory.
type SubmissionStore struct {
	mu   sync.RWMutex
	now  func() time.Time
	subs map[string]domain.Submission
}

func NewSubmissionStore() *SubmissionStore {
	return NewSubmissionStoreWithClock(time.Now)
}

// NewSubmissionStoreWithClock allows deterministic timestamps in tests.
func NewSubmissionStoreWithClock(now func() time.Time) *SubmissionStore {
	return &SubmissionStore{now: now, subs: make(map[string]domain.Submission)}
}

func (s *SubmissionStore) Insert(_ context.Context, sub domain.Submission) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now()
	}
	sub.Answers = sub.Answers.Clone()
	s.subs[sub.ID] = sub
	return sub, nil
}

func (s *SubmissionStore) GetByID(_ context.Context, id string) (domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sub, ok := s.subs[id]; ok {
		return sub, nil
	}
	return domain.Submission{}, domain.ErrSubmissionNotFound
}

func (s *SubmissionStore) GetByShareToken(_ context.Context, token string) (domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subs {
		if sub.ShareToken == token {
			return sub, nil
		}
	}
	return domain.Submission{}, domain.ErrSubmissionNotFound
}

// ListByIdentity returns the identity's submissions, newest first.
func (s *SubmissionStore) ListByIdentity(_ context.Context, id identity.Identity) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Submission
	for _, sub := range s.subs {
		if (id.Anonymous() && sub.SessionID == id.SessionID) || (!id.Anonymous() && sub.UserID == id.UserID) {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Summary aggregates submissions per quiz for the admin console.
func (s *SubmissionStore) Summary(_ context.Context) ([]domain.QuizStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]*domain.QuizStats)
	for _, sub := range s.subs {
		st, ok := counts[sub.QuizSlug]
		if !ok {
			st = &domain.QuizStats{QuizSlug: sub.QuizSlug}
			counts[sub.QuizSlug] = st
		}
		st.AverageScore = (st.AverageScore*float64(st.Submissions) + float64(sub.Score)) / float64(st.Submissions+1)
		st.Submissions++
	}
	out := make([]domain.QuizStats, 0, len(counts))
	for _, st := range counts {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuizSlug < out[j].QuizSlug })
	return out, nil
}
