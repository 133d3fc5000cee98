package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/identity"
	"counting-sheep-service/internal/quizdata"
	"counting-sheep-service/internal/recommend"
	"counting-sheep-service/internal/referral"
	"counting-sheep-service/internal/scoring"
)

// SubmissionReader is the read side of the submission store.
type SubmissionReader interface {
	GetByID(ctx context.Context, id string) (domain.Submission, error)
	GetByShareToken(ctx context.Context, token string) (domain.Submission, error)
	ListByIdentity(ctx context.Context, id identity.Identity) ([]domain.Submission, error)
	Summary(ctx context.Context) ([]domain.QuizStats, error)
}

// RuleAdmin is the admin console's view of the rule store.
type RuleAdmin interface {
	List(ctx context.Context, quizSlug string) ([]domain.RecommendationRule, error)
	Upsert(ctx context.Context, rule domain.RecommendationRule) (domain.RecommendationRule, error)
	Delete(ctx context.Context, id string) error
}

// APIHandler serves the JSON endpoints: quiz definitions, submission and
// share views, the dashboard history, and the admin console.
type APIHandler struct {
	auth        *Authenticator
	submissions SubmissionReader
	rules       RuleAdmin
	resolver    *recommend.Resolver
	baseURL     string
	log         *zap.Logger
}

func NewAPIHandler(auth *Authenticator, submissions SubmissionReader, rules RuleAdmin, resolver *recommend.Resolver, baseURL string, log *zap.Logger) *APIHandler {
	return &APIHandler{
		auth:        auth,
		submissions: submissions,
		rules:       rules,
		resolver:    resolver,
		baseURL:     baseURL,
		log:         log,
	}
}

// Register wires the handler's routes into the mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/quizzes/{slug}", h.getQuiz)
	mux.HandleFunc("POST /api/quizzes/{slug}/score", h.scoreQuiz)
	mux.HandleFunc("GET /api/submissions", h.listSubmissions)
	mux.HandleFunc("GET /api/submissions/{id}", h.getSubmission)
	mux.HandleFunc("GET /api/shared/{token}", h.getShared)
	mux.HandleFunc("GET /api/referrals/validate", h.validateReferral)
	mux.HandleFunc("POST /api/referrals", h.generateReferral)
	mux.HandleFunc("GET /api/admin/summary", h.adminSummary)
	mux.HandleFunc("GET /api/admin/recommendations", h.listRules)
	mux.HandleFunc("PUT /api/admin/recommendations", h.upsertRule)
	mux.HandleFunc("DELETE /api/admin/recommendations/{id}", h.deleteRule)
}

func (h *APIHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, ok := quizdata.BySlug(r.PathValue("slug"))
	if !ok {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

type scoreRequest struct {
	Values []int `json:"values"`
}

// scoreQuiz scores a list of per-question item values without an attempt,
// for clients re-deriving a band from locally held answers.
func (h *APIHandler) scoreQuiz(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid score payload")
		return
	}
	result, err := scoring.BySlug(r.PathValue("slug"), req.Values)
	if err != nil {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type submissionView struct {
	domain.Submission
	ShareURL       string                 `json:"shareUrl,omitempty"`
	Recommendation *domain.Recommendation `json:"recommendation,omitempty"`
}

func (h *APIHandler) view(ctx context.Context, sub domain.Submission, withShareURL bool) submissionView {
	v := submissionView{Submission: sub}
	if withShareURL && h.baseURL != "" {
		v.ShareURL = h.baseURL + "/r/" + sub.ShareToken
	}
	if rec, ok := h.resolver.Resolve(ctx, sub.QuizSlug, sub.Score); ok {
		v.Recommendation = &rec
	}
	return v
}

func (h *APIHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	id := h.auth.IdentityFromRequest(r)
	subs, err := h.submissions.ListByIdentity(r.Context(), id)
	if err != nil {
		h.serverError(w, "list submissions", err)
		return
	}
	views := make([]submissionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, h.view(r.Context(), sub, true))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *APIHandler) getSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.submissions.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		h.serverError(w, "get submission", err)
		return
	}
	// Owners only; the share token is the public path.
	id := h.auth.IdentityFromRequest(r)
	if sub.UserID != id.UserID || (id.Anonymous() && sub.SessionID != id.SessionID) {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, h.view(r.Context(), sub, true))
}

type sharedView struct {
	QuizSlug       string                 `json:"quizSlug"`
	Score          int                    `json:"score"`
	Interpretation string                 `json:"interpretation"`
	Tips           []string               `json:"tips,omitempty"`
	CreatedAt      string                 `json:"createdAt"`
	Recommendation *domain.Recommendation `json:"recommendation,omitempty"`
}

// getShared is the public, unauthenticated view of one submission. Answers
// and identity linkage are never exposed here.
func (h *APIHandler) getShared(w http.ResponseWriter, r *http.Request) {
	sub, err := h.submissions.GetByShareToken(r.Context(), r.PathValue("token"))
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			writeError(w, http.StatusNotFound, "result not found")
			return
		}
		h.serverError(w, "get shared result", err)
		return
	}
	view := sharedView{
		QuizSlug:       sub.QuizSlug,
		Score:          sub.Score,
		Interpretation: sub.Interpretation,
		Tips:           sub.Tips,
		CreatedAt:      sub.CreatedAt.Format("2006-01-02"),
	}
	if rec, ok := h.resolver.Resolve(r.Context(), sub.QuizSlug, sub.Score); ok {
		view.Recommendation = &rec
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *APIHandler) validateReferral(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	writeJSON(w, http.StatusOK, map[string]bool{"valid": referral.Validate(code)})
}

func (h *APIHandler) generateReferral(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"code": referral.Generate()})
}

func (h *APIHandler) adminSummary(w http.ResponseWriter, r *http.Request) {
	if !h.requireUser(w, r) {
		return
	}
	stats, err := h.submissions.Summary(r.Context())
	if err != nil {
		h.serverError(w, "summary", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *APIHandler) listRules(w http.ResponseWriter, r *http.Request) {
	if !h.requireUser(w, r) {
		return
	}
	rules, err := h.rules.List(r.Context(), r.URL.Query().Get("quiz"))
	if err != nil {
		h.serverError(w, "list rules", err)
		return
	}
	if rules == nil {
		rules = []domain.RecommendationRule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *APIHandler) upsertRule(w http.ResponseWriter, r *http.Request) {
	if !h.requireUser(w, r) {
		return
	}
	var rule domain.RecommendationRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid rule payload")
		return
	}
	if rule.QuizSlug == "" || rule.MinScore > rule.MaxScore {
		writeError(w, http.StatusBadRequest, "rule requires a quiz slug and min_score <= max_score")
		return
	}
	saved, err := h.rules.Upsert(r.Context(), rule)
	if err != nil {
		h.serverError(w, "upsert rule", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *APIHandler) deleteRule(w http.ResponseWriter, r *http.Request) {
	if !h.requireUser(w, r) {
		return
	}
	if err := h.rules.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.serverError(w, "delete rule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireUser gates the admin console behind authenticated identities.
func (h *APIHandler) requireUser(w http.ResponseWriter, r *http.Request) bool {
	if h.auth.IdentityFromRequest(r).Anonymous() {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	return true
}

func (h *APIHandler) serverError(w http.ResponseWriter, op string, err error) {
	h.log.Error(op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
