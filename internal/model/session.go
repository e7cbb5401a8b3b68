package model

import "time"

// QuizSession is the persisted snapshot of a participant's progress
// through the quiz. It is mutated only by the quiz state machine and
// written to the session store after every mutation.
//
// Invariant: CurrentIdx is always a valid position in Questions, or equal
// to len(Questions) when the quiz is terminal.
type QuizSession struct {
	// Code is the participant identity code. It doubles as the bearer
	// credential for every backend call; no separate token format exists.
	Code        string     `json:"unique_code"`
	Questions   []Question `json:"questions"`
	CurrentIdx  int        `json:"current_index"`
	Started     bool       `json:"started"`
	ChallengeID *int64     `json:"challenge_id,omitempty"`

	// QuestionShownAt is when the current question became visible. It
	// survives machine rebuilds; only a resume after reload restarts it.
	QuestionShownAt time.Time `json:"question_shown_at"`

	// LastResult holds the verdict for the current question once an answer
	// has been submitted. While set, further submissions are rejected
	// until the participant advances.
	LastResult *AnswerResult `json:"last_result,omitempty"`

	Completed bool `json:"completed"`
	// Score is the figure reported by the backend on resume, or the
	// last answer's correctness flag on local completion. The backend's
	// tally is the authoritative one; no running total is kept here.
	Score *int `json:"score,omitempty"`
	// CompletionMessage is shown instead of the start button when the
	// backend reports the participant already finished.
	CompletionMessage string `json:"completion_message,omitempty"`
}

// State labels for the quiz session machine.
type QuizState string

const (
	StateLoggedOut  QuizState = "LOGGED_OUT"
	StateLoggedIn   QuizState = "LOGGED_IN"
	StateInProgress QuizState = "IN_PROGRESS"
	StateCompleted  QuizState = "COMPLETED"
)

// State derives the machine state from the snapshot fields.
func (s *QuizSession) State() QuizState {
	switch {
	case s == nil || s.Code == "":
		return StateLoggedOut
	case s.Completed:
		return StateCompleted
	case s.Started:
		return StateInProgress
	default:
		return StateLoggedIn
	}
}

// CurrentQuestion returns the question at the current index, or nil when
// the index is terminal.
func (s *QuizSession) CurrentQuestion() *Question {
	if s.CurrentIdx < 0 || s.CurrentIdx >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIdx]
}
