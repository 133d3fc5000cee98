package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/identity"
	"counting-sheep-service/internal/infra/memory"
	"counting-sheep-service/internal/quizdata"
)

func fixtureQuestions() []domain.Question {
	qs := make([]domain.Question, 3)
	for i, id := range []string{"q1", "q2", "q3"} {
		opts := make([]domain.Option, 4)
		for v := 0; v < 4; v++ {
			opts[v] = domain.Option{Value: domain.IntValue(v), Score: v}
		}
		qs[i] = domain.Question{ID: id, Kind: domain.KindRadio, Options: opts, Required: true}
	}
	return qs
}

func fixtureCatalog() Catalog {
	return memory.NewCatalog(map[string]domain.QuizInfo{
		"fixture": {ID: "info-1", Slug: "fixture", Title: "Fixture", MaxScore: 9},
	})
}

func newTestEngine(t *testing.T, progress *memory.ProgressStore, subs SubmissionStore) *Engine {
	t.Helper()
	if subs == nil {
		subs = memory.NewSubmissionStore()
	}
	var stores ProgressStores
	if progress != nil {
		stores.Transient = progress
	}
	return New(Config{
		Slug:            "fixture",
		Title:           "Fixture",
		Questions:       fixtureQuestions(),
		PersistProgress: progress != nil,
	}, Deps{
		Catalog:     fixtureCatalog(),
		Progress:    stores,
		Submissions: subs,
		Identity:    identity.Session("anon_1_abcdefghi"),
	})
}

func TestInitializeFreshAttempt(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	p, err := eng.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if p.CurrentQuestion != 0 || p.TotalQuestions != 3 || len(p.Answers) != 0 {
		t.Fatalf("unexpected fresh progress %+v", p)
	}
	if _, done := eng.Completed(); done {
		t.Fatalf("fresh attempt must be in progress")
	}
}

func TestInitializeUnknownQuiz(t *testing.T) {
	eng := New(Config{Slug: "missing", Questions: fixtureQuestions()}, Deps{
		Catalog:     fixtureCatalog(),
		Submissions: memory.NewSubmissionStore(),
		Identity:    identity.Session("s1"),
	})
	if _, err := eng.Initialize(context.Background()); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

// Catalog lookups use the storage spelling, so an attempt at stop_bang
// resolves against a stopbang metadata row.
func TestInitializeUsesStorageSlug(t *testing.T) {
	catalog := memory.NewCatalog(map[string]domain.QuizInfo{
		"stopbang": {ID: "info-sb", Slug: "stopbang", Title: "STOP-BANG", MaxScore: 8},
	})
	eng := New(Config{Slug: quizdata.SlugStopBang, Questions: fixtureQuestions()}, Deps{
		Catalog:     catalog,
		Submissions: memory.NewSubmissionStore(),
		Identity:    identity.Session("s1"),
	})
	if _, err := eng.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
}

func TestNextPreviousBounds(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	if _, err := eng.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	ctx := context.Background()

	if eng.Previous(ctx) {
		t.Fatalf("previous must not move off the first question")
	}
	if !eng.Next(ctx) || !eng.Next(ctx) {
		t.Fatalf("expected two forward moves")
	}
	if eng.Next(ctx) {
		t.Fatalf("next must not move past the last question")
	}
	if got := eng.Progress().CurrentQuestion; got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
	if !eng.Previous(ctx) {
		t.Fatalf("expected backward move")
	}
	if got := eng.Progress().CurrentQuestion; got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
}

func TestIsCurrentQuestionAnswered(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	if _, err := eng.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	ctx := context.Background()

	if eng.IsCurrentQuestionAnswered() {
		t.Fatalf("unanswered question reported as answered")
	}
	if err := eng.SetAnswer(ctx, "q1", domain.IntValue(0)); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if !eng.IsCurrentQuestionAnswered() {
		t.Fatalf("recorded zero must count as answered")
	}
	if err := eng.SetAnswer(ctx, "q1", domain.StringValue("")); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if eng.IsCurrentQuestionAnswered() {
		t.Fatalf("empty string must not count as answered")
	}
}

func TestAnswersArriveOutOfOrder(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	if _, err := eng.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	ctx := context.Background()

	// Answer the last question while positioned on the first.
	if err := eng.SetAnswer(ctx, "q3", domain.IntValue(3)); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if err := eng.SetAnswer(ctx, "q1", domain.IntValue(2)); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if got := eng.CalculateScore(); got != 5 {
		t.Fatalf("expected score 5, got %d", got)
	}
}

func TestScoreMatchesStringFormAnswers(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	if _, err := eng.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := eng.SetAnswer(context.Background(), "q2", domain.StringValue("3")); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if got := eng.CalculateScore(); got != 3 {
		t.Fatalf("string answer against numeric option: score %d", got)
	}
}

func TestProgressRestoreAndClamp(t *testing.T) {
	store := memory.NewProgressStore()
	id := identity.Session("anon_1_abcdefghi")
	saved := domain.Progress{
		QuizSlug:        "fixture",
		CurrentQuestion: 2,
		TotalQuestions:  3,
		Answers:         domain.Answers{"q1": domain.IntValue(1)},
		StartedAt:       time.Now(),
	}
	if err := store.Save(context.Background(), id, saved); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	eng := newTestEngine(t, store, nil)
	p, err := eng.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if p.CurrentQuestion != 2 || p.Answers["q1"].String() != "1" {
		t.Fatalf("restore mismatch: %+v", p)
	}

	// A stale index past the question count resets to the start.
	saved.CurrentQuestion = 9
	_ = store.Save(context.Background(), id, saved)
	eng = newTestEngine(t, store, nil)
	p, err = eng.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if p.CurrentQuestion != 0 {
		t.Fatalf("expected clamped index 0, got %d", p.CurrentQuestion)
	}
}

type failingProgressStore struct{}

func (failingProgressStore) Load(context.Context, string, identity.Identity) (domain.Progress, error) {
	return domain.Progress{}, errors.New("backend down")
}

func (failingProgressStore) Save(context.Context, identity.Identity, domain.Progress) error {
	return errors.New("backend down")
}

func (failingProgressStore) Delete(context.Context, string, identity.Identity) error {
	return errors.New("backend down")
}

// Progress persistence is advisory: a broken store must not surface errors
// from answering, navigating or submitting.
func TestPersistenceFailuresAreSwallowed(t *testing.T) {
	eng := New(Config{
		Slug:            "fixture",
		Questions:       fixtureQuestions(),
		PersistProgress: true,
	}, Deps{
		Catalog:     fixtureCatalog(),
		Progress:    ProgressStores{Transient: failingProgressStore{}},
		Submissions: memory.NewSubmissionStore(),
		Identity:    identity.Session("s1"),
	})
	ctx := context.Background()
	if _, err := eng.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := eng.SetAnswer(ctx, "q1", domain.IntValue(2)); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if !eng.Next(ctx) {
		t.Fatalf("next: expected move despite store failure")
	}
	if _, err := eng.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestSubmitRecordsAndClearsProgress(t *testing.T) {
	store := memory.NewProgressStore()
	subs := memory.NewSubmissionStore()
	eng := newTestEngine(t, store, subs)
	ctx := context.Background()
	if _, err := eng.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	_ = eng.SetAnswer(ctx, "q1", domain.IntValue(1))
	_ = eng.SetAnswer(ctx, "q2", domain.IntValue(2))
	_ = eng.SetAnswer(ctx, "q3", domain.IntValue(3))
	eng.SetReferralCode("AB12CD34")

	sub, err := eng.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Score != 6 {
		t.Fatalf("expected score 6, got %d", sub.Score)
	}
	if sub.ReferralCode != "AB12CD34" {
		t.Fatalf("referral code lost: %q", sub.ReferralCode)
	}
	if sub.ID == "" || sub.ShareToken == "" {
		t.Fatalf("expected generated id and share token, got %+v", sub)
	}
	if sub.SessionID == "" || sub.UserID != "" {
		t.Fatalf("anonymous attempt must link session id only: %+v", sub)
	}

	// The stored record matches what the engine returned.
	stored, err := subs.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if stored.Score != sub.Score || stored.ShareToken != sub.ShareToken {
		t.Fatalf("stored record mismatch: %+v vs %+v", stored, sub)
	}

	// Saved progress is gone once the attempt completes.
	id := identity.Session("anon_1_abcdefghi")
	if _, err := store.Load(ctx, "fixture", id); !errors.Is(err, domain.ErrProgressNotFound) {
		t.Fatalf("expected cleared progress, got %v", err)
	}
	if _, done := eng.Completed(); !done {
		t.Fatalf("attempt must be completed after submit")
	}
}

func TestSubmitLinksUserIdentity(t *testing.T) {
	eng := New(Config{Slug: "fixture", Questions: fixtureQuestions()}, Deps{
		Catalog:     fixtureCatalog(),
		Submissions: memory.NewSubmissionStore(),
		Identity:    identity.User("u1"),
	})
	ctx := context.Background()
	if _, err := eng.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	sub, err := eng.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.UserID != "u1" || sub.SessionID != "" {
		t.Fatalf("authenticated attempt must link user id only: %+v", sub)
	}
}

func TestSubmitRequiresInitialize(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	if _, err := eng.Submit(context.Background()); !errors.Is(err, domain.ErrQuizNotLoaded) {
		t.Fatalf("expected ErrQuizNotLoaded, got %v", err)
	}
}

func TestCompletedAttemptRejectsMutation(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	ctx := context.Background()
	if _, err := eng.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := eng.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := eng.SetAnswer(ctx, "q1", domain.IntValue(1)); !errors.Is(err, domain.ErrAttemptCompleted) {
		t.Fatalf("expected ErrAttemptCompleted, got %v", err)
	}
	if _, err := eng.Submit(ctx); !errors.Is(err, domain.ErrAttemptCompleted) {
		t.Fatalf("expected ErrAttemptCompleted on resubmit, got %v", err)
	}
	if eng.Next(ctx) || eng.Previous(ctx) {
		t.Fatalf("completed attempt must not navigate")
	}

	// Reset returns the engine to a fresh in-progress attempt.
	eng.ClearProgress(ctx)
	if err := eng.SetAnswer(ctx, "q1", domain.IntValue(1)); err != nil {
		t.Fatalf("set answer after reset: %v", err)
	}
}

type failingSubmissionStore struct{}

func (failingSubmissionStore) Insert(context.Context, domain.Submission) (domain.Submission, error) {
	return domain.Submission{}, errors.New("insert failed")
}

// Unlike progress saves, a failed submit surfaces and leaves the attempt
// open so the client can retry.
func TestSubmitFailureKeepsAttemptOpen(t *testing.T) {
	eng := newTestEngine(t, nil, failingSubmissionStore{})
	ctx := context.Background()
	if _, err := eng.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	_ = eng.SetAnswer(ctx, "q1", domain.IntValue(2))

	if _, err := eng.Submit(ctx); err == nil {
		t.Fatalf("expected submit error")
	}
	if _, done := eng.Completed(); done {
		t.Fatalf("failed submit must not complete the attempt")
	}
	if got := eng.Progress().Answers["q1"].String(); got != "2" {
		t.Fatalf("answers must survive a failed submit, got %q", got)
	}
}

func TestSubmitUsesAdminRuleInterpretation(t *testing.T) {
	rules := memory.NewRuleStore()
	if _, err := rules.Upsert(context.Background(), domain.RecommendationRule{
		QuizSlug: "fixture",
		MinScore: 0,
		MaxScore: 9,
		Title:    "Fixture Guidance",
		Tips:     []string{"do the thing"},
	}); err != nil {
		t.Fatalf("seed rule: %v", err)
	}
	eng := New(Config{Slug: "fixture", Questions: fixtureQuestions()}, Deps{
		Catalog:     fixtureCatalog(),
		Rules:       rules,
		Submissions: memory.NewSubmissionStore(),
		Identity:    identity.Session("s1"),
	})
	ctx := context.Background()
	if _, err := eng.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	sub, err := eng.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Interpretation != "do the thing" {
		t.Fatalf("expected rule tip as interpretation, got %q", sub.Interpretation)
	}
	if len(sub.Tips) != 1 || sub.Tips[0] != "do the thing" {
		t.Fatalf("expected rule tips on submission, got %v", sub.Tips)
	}
}

func TestOnProgressAndOnComplete(t *testing.T) {
	var progressCalls int
	var completed *domain.Submission
	eng := New(Config{
		Slug:       "fixture",
		Questions:  fixtureQuestions(),
		OnProgress: func(domain.Progress) { progressCalls++ },
		OnComplete: func(s domain.Submission) { completed = &s },
	}, Deps{
		Catalog:     fixtureCatalog(),
		Submissions: memory.NewSubmissionStore(),
		Identity:    identity.Session("s1"),
	})
	ctx := context.Background()
	if _, err := eng.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	_ = eng.SetAnswer(ctx, "q1", domain.IntValue(1))
	eng.Next(ctx)
	if progressCalls != 2 {
		t.Fatalf("expected 2 progress notifications, got %d", progressCalls)
	}
	if _, err := eng.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if completed == nil || completed.Score != 1 {
		t.Fatalf("expected completion notification, got %+v", completed)
	}
}

func TestProgressSnapshotDoesNotAlias(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	ctx := context.Background()
	if _, err := eng.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	_ = eng.SetAnswer(ctx, "q1", domain.IntValue(1))
	snap := eng.Progress()
	snap.Answers["q1"] = domain.IntValue(3)
	if got := eng.Progress().Answers["q1"].String(); got != "1" {
		t.Fatalf("snapshot mutation leaked into engine state: %q", got)
	}
}
