package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrDuplicateEmail     ErrCode = "DUPLICATE_EMAIL"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Quiz-specific ─────────────────────────────────────────────────
	ErrSubjectOrTopic  ErrCode = "SUBJECT_OR_TOPIC_REQUIRED"
	ErrNoQuestions     ErrCode = "NO_QUESTIONS"
	ErrQuizNotFinished ErrCode = "QUIZ_NOT_FINISHED"
	ErrQuizFinished    ErrCode = "QUIZ_FINISHED"
	ErrInvalidOption   ErrCode = "INVALID_OPTION"
	ErrUnknownLifeline ErrCode = "UNKNOWN_LIFELINE"
	ErrAIGeneration    ErrCode = "AI_GENERATION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrDuplicateEmail:
		return "An account with this email already exists."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."

	// ─── Quiz-specific ─────────────────────────────────────────────────
	case ErrSubjectOrTopic:
		return "Choose a subject or enter a topic to start a quiz."
	case ErrNoQuestions:
		return "No questions are available for this subject."
	case ErrQuizNotFinished:
		return "The quiz is not finished yet."
	case ErrQuizFinished:
		return "The quiz is already finished."
	case ErrInvalidOption:
		return "The chosen option is out of range."
	case ErrUnknownLifeline:
		return "Unknown lifeline."
	case ErrAIGeneration:
		return "Question generation failed. Please try again."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
