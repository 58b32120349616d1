package service

import "errors"

// Domain errors surfaced to handlers.
var (
	// ErrDuplicateEmail is returned when registration collides with an
	// existing account (case-insensitive email match).
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned when login finds no matching user.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a stats update targets a missing user.
	ErrUserNotFound = errors.New("user not found")

	// ErrSubjectOrTopicRequired is returned when a quiz start names neither
	// a subject nor an AI topic (or both).
	ErrSubjectOrTopicRequired = errors.New("exactly one of subject or topic is required")
	// ErrNoQuestions is returned when the chosen subject has no questions.
	ErrNoQuestions = errors.New("no questions available for this subject")
	// ErrSessionNotFound is returned when a quiz session id is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuizNotFinished is returned when a result is requested for a
	// still-running session.
	ErrQuizNotFinished = errors.New("quiz is not finished yet")
	// ErrUnknownLifeline is returned for an unrecognized lifeline kind.
	ErrUnknownLifeline = errors.New("unknown lifeline")
)
