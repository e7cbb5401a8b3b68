package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Session & Auth ────────────────────────────────────────────────
	ErrInvalidCode     ErrCode = "INVALID_CODE"
	ErrNotLoggedIn     ErrCode = "NOT_LOGGED_IN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Remote backend ────────────────────────────────────────────────
	ErrBackendUnavailable ErrCode = "BACKEND_UNAVAILABLE"
	ErrBackendRejected    ErrCode = "BACKEND_REJECTED"

	// ─── Quiz state machine ────────────────────────────────────────────
	ErrQuizNotStarted ErrCode = "QUIZ_NOT_STARTED"
	ErrAnswerPending  ErrCode = "ANSWER_PENDING"
	ErrNoAnswer       ErrCode = "NO_ANSWER_SUBMITTED"
	ErrQuizCompleted  ErrCode = "QUIZ_COMPLETED"
	ErrNoQuestions    ErrCode = "NO_QUESTIONS"

	// ─── Jigsaw pipeline ───────────────────────────────────────────────
	ErrEmptyInput   ErrCode = "EMPTY_INPUT"
	ErrImageDecode  ErrCode = "IMAGE_DECODE_FAILED"
	ErrArchivePack  ErrCode = "ARCHIVE_PACK_FAILED"
	ErrFileTooLarge ErrCode = "FILE_TOO_LARGE"
	ErrInvalidGrid  ErrCode = "INVALID_GRID_SIZE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// The messages are short enough to display inline next to the triggering
// control, which is how every failure is surfaced to the user.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCode:
		return "Invalid code."
	case ErrNotLoggedIn:
		return "Please log in with your code first."
	case ErrAdminAccessOnly:
		return "This page is restricted to administrators."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrBackendUnavailable:
		return "The game server could not be reached. Please try again."
	case ErrBackendRejected:
		return "The game server rejected the request."
	case ErrQuizNotStarted:
		return "The quiz has not been started yet."
	case ErrAnswerPending:
		return "An answer was already submitted for this question."
	case ErrNoAnswer:
		return "Submit an answer before advancing."
	case ErrQuizCompleted:
		return "You have already completed this challenge."
	case ErrNoQuestions:
		return "No questions loaded."
	case ErrEmptyInput:
		return "No image uploaded."
	case ErrImageDecode:
		return "The uploaded file could not be read as an image."
	case ErrArchivePack:
		return "Building the puzzle archive failed."
	case ErrFileTooLarge:
		return "The uploaded file exceeds the size limit."
	case ErrInvalidGrid:
		return "Grid size must be between 1 and 12."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
