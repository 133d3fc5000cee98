package domain

import "time"

// QuestionKind distinguishes how a question is rendered and answered.
type QuestionKind string

const (
	KindRadio    QuestionKind = "radio"
	KindSelect   QuestionKind = "select"
	KindCheckbox QuestionKind = "checkbox"
)

// Option is a possible answer. Score is the weight added when the option is
// chosen; unscored options (plain select items) carry zero.
type Option struct {
	Value AnswerValue `json:"value"`
	Label string      `json:"label"`
	Score int         `json:"score,omitempty"`
}

// Question is one item of a quiz. IDs are unique within a quiz and option
// values are unique within a question.
type Question struct {
	ID       string       `json:"id"`
	Prompt   string       `json:"prompt"`
	Kind     QuestionKind `json:"kind"`
	Options  []Option     `json:"options"`
	Required bool         `json:"required"`
}

// Quiz is an immutable questionnaire definition loaded from static config.
type Quiz struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// QuizInfo is the persisted metadata row backing a quiz definition.
type QuizInfo struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	MaxScore int    `json:"maxScore"`
}

// Progress is the mutable state of one quiz attempt.
type Progress struct {
	QuizSlug        string    `json:"quizId"`
	CurrentQuestion int       `json:"currentQuestion"`
	TotalQuestions  int       `json:"totalQuestions"`
	Answers         Answers   `json:"answers"`
	ReferralCode    string    `json:"referralCode,omitempty"`
	StartedAt       time.Time `json:"startedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Submission is the immutable record created once per successful submit.
// Exactly one of UserID or SessionID is set.
type Submission struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	QuizSlug       string    `json:"quizSlug"`
	UserID         string    `json:"userId,omitempty"`
	SessionID      string    `json:"sessionId,omitempty"`
	Score          int       `json:"score"`
	Interpretation string    `json:"interpretation"`
	Tips           []string  `json:"tips,omitempty"`
	Answers        Answers   `json:"answers"`
	ReferralCode   string    `json:"referralCode,omitempty"`
	ShareToken     string    `json:"sharedToken"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RecommendationRule is admin-managed content keyed by quiz slug and an
// inclusive score band.
type RecommendationRule struct {
	ID       string   `json:"id"`
	QuizSlug string   `json:"quizSlug"`
	MinScore int      `json:"minScore"`
	MaxScore int      `json:"maxScore"`
	Title    string   `json:"title"`
	Tips     []string `json:"tips"`
}

// Contains reports whether score falls inside the rule's band.
func (r RecommendationRule) Contains(score int) bool {
	return score >= r.MinScore && score <= r.MaxScore
}

// QuizStats is the per-quiz aggregate surfaced on the admin summary.
type QuizStats struct {
	QuizSlug     string  `json:"quizSlug"`
	Submissions  int     `json:"submissions"`
	AverageScore float64 `json:"averageScore"`
}

// Recommendation is the resolved guidance shown after a submission.
type Recommendation struct {
	Title string   `json:"title"`
	Tips  []string `json:"tips"`
}
