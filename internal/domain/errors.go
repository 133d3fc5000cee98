package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz slug has no backing metadata row.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizNotLoaded is returned when submit is attempted before Initialize.
	ErrQuizNotLoaded = errors.New("quiz data not loaded")
	// ErrAttemptCompleted is returned when a mutating call follows a successful submit.
	ErrAttemptCompleted = errors.New("attempt already completed")
	// ErrProgressNotFound indicates no saved progress exists for an identity.
	ErrProgressNotFound = errors.New("progress not found")
	// ErrSubmissionNotFound indicates the submission id or share token is unknown.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrRuleNotFound indicates no recommendation band contains the score.
	ErrRuleNotFound = errors.New("recommendation rule not found")
)
