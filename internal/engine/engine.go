// Package engine implements the quiz progression engine: one state machine
// per attempt, tracking the current question, collected answers, referral
// code and timestamps, and delegating metadata lookup, progress persistence,
// recommendation lookup and submission storage to its collaborators.
package engine

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/identity"
	"counting-sheep-service/internal/quizdata"
	"counting-sheep-service/internal/recommend"
	"counting-sheep-service/internal/scoring"
)

// Catalog resolves quiz metadata by storage slug.
type Catalog interface {
	QuizInfo(ctx context.Context, slug string) (domain.QuizInfo, error)
}

// ProgressStore persists in-flight attempt progress for one identity kind.
// Load returns domain.ErrProgressNotFound when no snapshot exists.
type ProgressStore interface {
	Load(ctx context.Context, quizSlug string, id identity.Identity) (domain.Progress, error)
	Save(ctx context.Context, id identity.Identity, progress domain.Progress) error
	Delete(ctx context.Context, quizSlug string, id identity.Identity) error
}

// SubmissionStore creates the immutable submission record.
type SubmissionStore interface {
	Insert(ctx context.Context, sub domain.Submission) (domain.Submission, error)
}

// ProgressStores selects the persistence backend by identity kind: a durable
// store for authenticated users, a transient one for anonymous sessions.
type ProgressStores struct {
	Durable   ProgressStore
	Transient ProgressStore
}

// For returns the store serving the given identity.
func (s ProgressStores) For(id identity.Identity) ProgressStore {
	if id.Anonymous() {
		return s.Transient
	}
	return s.Durable
}

// Config describes one attempt: the quiz being taken and the attempt options.
type Config struct {
	Slug            string
	Title           string
	Questions       []domain.Question
	PersistProgress bool
	OnProgress      func(domain.Progress)
	OnComplete      func(domain.Submission)
}

// Deps are the engine's external collaborators.
type Deps struct {
	Catalog     Catalog
	Progress    ProgressStores
	Rules       recommend.RuleLookup
	Submissions SubmissionStore
	Identity    identity.Identity
	Logger      *zap.Logger
	Now         func() time.Time
}

// Engine owns the mutable state of one quiz attempt. It is single-threaded by
// construction: one instance per attempt, one caller at a time.
type Engine struct {
	cfg  Config
	deps Deps

	info      domain.QuizInfo
	loaded    bool
	completed bool
	result    domain.Submission
	progress  domain.Progress
}

// New builds an engine in the fresh in-progress state. Call Initialize before
// navigating or submitting.
func New(cfg Config, deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	e := &Engine{cfg: cfg, deps: deps}
	e.progress = e.freshProgress()
	return e
}

func (e *Engine) freshProgress() domain.Progress {
	now := e.deps.Now()
	return domain.Progress{
		QuizSlug:        e.cfg.Slug,
		CurrentQuestion: 0,
		TotalQuestions:  len(e.cfg.Questions),
		Answers:         make(domain.Answers),
		StartedAt:       now,
		UpdatedAt:       now,
	}
}

// Initialize resolves quiz metadata and, when persistence is enabled,
// restores any saved progress for the current identity. Metadata failure is
// fatal; a failed or absent restore degrades to a fresh attempt.
func (e *Engine) Initialize(ctx context.Context) (domain.Progress, error) {
	info, err := e.deps.Catalog.QuizInfo(ctx, quizdata.StorageSlug(e.cfg.Slug))
	if err != nil {
		return domain.Progress{}, fmt.Errorf("quiz %q: %w", e.cfg.Slug, domain.ErrQuizNotFound)
	}
	e.info = info
	e.loaded = true

	if e.cfg.PersistProgress {
		e.restoreProgress(ctx)
	}
	return e.snapshot(), nil
}

func (e *Engine) restoreProgress(ctx context.Context) {
	store := e.deps.Progress.For(e.deps.Identity)
	if store == nil {
		return
	}
	saved, err := store.Load(ctx, e.cfg.Slug, e.deps.Identity)
	if err != nil {
		if !errors.Is(err, domain.ErrProgressNotFound) {
			e.deps.Logger.Warn("failed to load quiz progress, starting fresh",
				zap.String("quiz", e.cfg.Slug), zap.Error(err))
		}
		return
	}
	if saved.Answers == nil {
		saved.Answers = make(domain.Answers)
	}
	saved.QuizSlug = e.cfg.Slug
	saved.TotalQuestions = len(e.cfg.Questions)
	if saved.CurrentQuestion < 0 || saved.CurrentQuestion >= saved.TotalQuestions {
		saved.CurrentQuestion = 0
	}
	e.progress = saved
}

// CurrentQuestion returns the question at the current index, or false when
// the attempt has no questions.
func (e *Engine) CurrentQuestion() (domain.Question, bool) {
	if e.progress.CurrentQuestion < 0 || e.progress.CurrentQuestion >= len(e.cfg.Questions) {
		return domain.Question{}, false
	}
	return e.cfg.Questions[e.progress.CurrentQuestion], true
}

// Progress returns a copy of the attempt state.
func (e *Engine) Progress() domain.Progress {
	return e.snapshot()
}

// Completed reports whether the attempt reached its terminal state, and the
// submission that completed it.
func (e *Engine) Completed() (domain.Submission, bool) {
	return e.result, e.completed
}

func (e *Engine) snapshot() domain.Progress {
	p := e.progress
	p.Answers = e.progress.Answers.Clone()
	return p
}

// SetAnswer records the answer for a question id, overwriting any previous
// value. The id is deliberately not checked against the current question so
// answers can arrive out of order or be carried forward. Persistence failures
// are logged and swallowed; the in-memory attempt remains the state of record
// until submit.
func (e *Engine) SetAnswer(ctx context.Context, questionID string, value domain.AnswerValue) error {
	if e.completed {
		return domain.ErrAttemptCompleted
	}
	e.progress.Answers[questionID] = value
	e.saveProgress(ctx)
	e.notifyProgress()
	return nil
}

// SetReferralCode stores an externally validated referral code. Format
// validation is the referral package's concern, not the engine's.
func (e *Engine) SetReferralCode(code string) {
	if e.completed {
		return
	}
	e.progress.ReferralCode = code
}

// Next advances to the following question and reports whether it moved.
// It never advances past the last question.
func (e *Engine) Next(ctx context.Context) bool {
	if e.completed || e.progress.CurrentQuestion >= e.progress.TotalQuestions-1 {
		return false
	}
	e.progress.CurrentQuestion++
	e.saveProgress(ctx)
	e.notifyProgress()
	return true
}

// Previous steps back one question and reports whether it moved.
func (e *Engine) Previous(ctx context.Context) bool {
	if e.completed || e.progress.CurrentQuestion <= 0 {
		return false
	}
	e.progress.CurrentQuestion--
	e.saveProgress(ctx)
	e.notifyProgress()
	return true
}

// IsCurrentQuestionAnswered is the advisory predicate the presentation layer
// uses to gate advancement. A recorded zero counts as answered; an empty
// string does not.
func (e *Engine) IsCurrentQuestionAnswered() bool {
	q, ok := e.CurrentQuestion()
	if !ok {
		return false
	}
	ans, ok := e.progress.Answers[q.ID]
	return ok && !ans.IsEmpty()
}

// CalculateScore is a pure function of the question definitions and recorded
// answers; it can be re-derived identically from a persisted snapshot.
func (e *Engine) CalculateScore() int {
	return scoring.Score(e.cfg.Questions, e.progress.Answers)
}

// Submit computes the final score, resolves a recommendation band, persists
// the submission record and clears saved progress. Unlike per-mutation saves,
// a storage failure here is always surfaced: the recorded result must be
// observed by the caller.
func (e *Engine) Submit(ctx context.Context) (domain.Submission, error) {
	if e.completed {
		return domain.Submission{}, domain.ErrAttemptCompleted
	}
	if !e.loaded {
		return domain.Submission{}, domain.ErrQuizNotLoaded
	}

	score := e.CalculateScore()
	resolver := recommend.NewResolver(e.deps.Rules)
	rec, ok := resolver.Resolve(ctx, e.cfg.Slug, score)

	sub := domain.Submission{
		ID:             uuid.NewString(),
		QuizID:         e.info.ID,
		QuizSlug:       e.cfg.Slug,
		Score:          score,
		Interpretation: recommend.Interpretation(rec, ok),
		Answers:        e.progress.Answers.Clone(),
		ReferralCode:   e.progress.ReferralCode,
		ShareToken:     newShareToken(),
		CreatedAt:      e.deps.Now(),
	}
	if ok {
		sub.Tips = rec.Tips
	}
	if e.deps.Identity.Anonymous() {
		sub.SessionID = e.deps.Identity.SessionID
	} else {
		sub.UserID = e.deps.Identity.UserID
	}

	created, err := e.deps.Submissions.Insert(ctx, sub)
	if err != nil {
		return domain.Submission{}, err
	}

	e.ClearProgress(ctx)
	e.completed = true
	e.result = created

	if e.cfg.OnComplete != nil {
		e.cfg.OnComplete(created)
	}
	return created, nil
}

// ClearProgress deletes saved progress for the current identity and resets
// the in-memory attempt to a fresh in-progress state. Clearing twice is not
// an error.
func (e *Engine) ClearProgress(ctx context.Context) {
	if store := e.deps.Progress.For(e.deps.Identity); store != nil {
		if err := store.Delete(ctx, e.cfg.Slug, e.deps.Identity); err != nil {
			e.deps.Logger.Warn("failed to clear quiz progress",
				zap.String("quiz", e.cfg.Slug), zap.Error(err))
		}
	}
	e.completed = false
	e.result = domain.Submission{}
	e.progress = e.freshProgress()
}

func (e *Engine) saveProgress(ctx context.Context) {
	if !e.cfg.PersistProgress {
		return
	}
	store := e.deps.Progress.For(e.deps.Identity)
	if store == nil {
		return
	}
	e.progress.UpdatedAt = e.deps.Now()
	if err := store.Save(ctx, e.deps.Identity, e.snapshot()); err != nil {
		e.deps.Logger.Warn("failed to save quiz progress",
			zap.String("quiz", e.cfg.Slug), zap.Error(err))
	}
}

func (e *Engine) notifyProgress() {
	if e.cfg.OnProgress != nil {
		e.cfg.OnProgress(e.snapshot())
	}
}

// newShareToken mints the opaque token that allows unauthenticated viewing of
// a single submission.
func newShareToken() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
