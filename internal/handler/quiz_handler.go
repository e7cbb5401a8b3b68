package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/middleware"
	"github.com/Alka-null/nbcc2026gamesweb/internal/quiz"
	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
	"github.com/Alka-null/nbcc2026gamesweb/internal/validator"
)

// QuizHandler exposes the quiz session state machine over HTTP. Every
// endpoint rebuilds the machine from the persisted snapshot, applies one
// transition, and returns the resulting view state.
type QuizHandler struct {
	backend quiz.Backend
	store   *session.Store
	log     zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(b quiz.Backend, store *session.Store, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{backend: b, store: store, log: log}
}

// machine builds and restores the state machine for the calling client.
func (h *QuizHandler) machine(c *gin.Context) (*quiz.Machine, bool) {
	m := quiz.NewMachine(h.backend, h.store, middleware.SessionID(c), h.log)
	if err := m.Restore(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, false
	}
	return m, true
}

// stateView shapes the snapshot for the browser: full machine state plus
// the current question, never the full remaining list.
func stateView(m *quiz.Machine) gin.H {
	snap := m.Snapshot()
	view := gin.H{
		"state":          m.State(),
		"started":        snap.Started,
		"question_count": len(snap.Questions),
		"current_index":  snap.CurrentIdx,
	}
	if snap.ChallengeID != nil {
		view["challenge_id"] = *snap.ChallengeID
	}
	if q := snap.CurrentQuestion(); q != nil {
		view["question"] = q
	}
	if snap.LastResult != nil {
		view["last_result"] = snap.LastResult
	}
	if snap.Completed {
		view["score"] = snap.Score
		if snap.CompletionMessage != "" {
			view["completion_message"] = snap.CompletionMessage
		}
	}
	return view
}

// failQuiz maps state machine errors to response codes. Remote-call
// failures fall through to the shared backend mapping.
func failQuiz(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quiz.ErrNotLoggedIn):
		response.Fail(c, http.StatusUnauthorized, response.ErrNotLoggedIn)
	case errors.Is(err, quiz.ErrNotStarted):
		response.Fail(c, http.StatusConflict, response.ErrQuizNotStarted)
	case errors.Is(err, quiz.ErrNoQuestions):
		response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
	case errors.Is(err, quiz.ErrAnswerPending):
		response.Fail(c, http.StatusConflict, response.ErrAnswerPending)
	case errors.Is(err, quiz.ErrNoAnswer):
		response.Fail(c, http.StatusConflict, response.ErrNoAnswer)
	case errors.Is(err, quiz.ErrCompleted):
		response.Fail(c, http.StatusConflict, response.ErrQuizCompleted)
	default:
		failBackend(c, err)
	}
}

// QuizLoginRequest carries the participant identity code.
type QuizLoginRequest struct {
	UniqueCode string `json:"unique_code" binding:"required"`
}

// Login godoc
// POST /api/v1/quiz/login
// Exchanges the identity code for validity, loads the question list, and
// resumes any recorded progress. Failure leaves the machine LoggedOut.
func (h *QuizHandler) Login(c *gin.Context) {
	var req QuizLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	m, ok := h.machine(c)
	if !ok {
		return
	}
	if err := m.Login(c.Request.Context(), req.UniqueCode); err != nil {
		failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, stateView(m))
}

// State godoc
// GET /api/v1/quiz/state
// Returns the machine state for the current client session. This is the
// page mount path: a mid-quiz session re-queries the backend's progress
// pointer and restarts the answer clock.
func (h *QuizHandler) State(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}
	if err := m.Resume(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, stateView(m))
}

// Start godoc
// POST /api/v1/quiz/start
// Begins the quiz and starts the answer clock.
func (h *QuizHandler) Start(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}
	if err := m.Start(c.Request.Context()); err != nil {
		failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, stateView(m))
}

// AnswerRequest carries the selected option for the current question.
type AnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// SubmitAnswer godoc
// POST /api/v1/quiz/answer
// Sends the selected option to the scoring authority and records the
// verdict. Repeat submissions for the same question are rejected.
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	m, ok := h.machine(c)
	if !ok {
		return
	}
	result, err := m.SubmitAnswer(c.Request.Context(), req.Answer)
	if err != nil {
		failQuiz(c, err)
		return
	}

	view := stateView(m)
	view["result"] = result
	response.Success(c, http.StatusOK, view)
}

// Advance godoc
// POST /api/v1/quiz/advance
// Acknowledges the recorded verdict and moves to the next question or to
// the completed screen.
func (h *QuizHandler) Advance(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}
	if err := m.Advance(c.Request.Context()); err != nil {
		failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, stateView(m))
}

// Reset godoc
// POST /api/v1/quiz/reset
// Clears the quiz session for a fresh start ("start new quiz").
func (h *QuizHandler) Reset(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}
	if err := m.Reset(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, stateView(m))
}
