// Package quiz implements the participant's quiz session state machine:
// LoggedOut → LoggedIn → InProgress(i) → Completed. The machine is a
// standalone unit with explicit entry points, decoupled from any view or
// navigation concern. It owns the only mutation path for the persisted
// quiz snapshot and coordinates one round trip with the remote scoring
// authority per answer.
package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/backend"
	"github.com/Alka-null/nbcc2026gamesweb/internal/model"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
)

// Backend is the slice of the remote API the machine needs.
type Backend interface {
	CodeLogin(ctx context.Context, code string) (*backend.CodeLoginResult, error)
	QuizQuestions(ctx context.Context) ([]model.Question, error)
	GameSession(ctx context.Context, code string) (*backend.GameSessionResult, error)
	SubmitAnswer(ctx context.Context, sub backend.AnswerSubmission) (*model.AnswerResult, error)
	AddLeaderboardParticipant(ctx context.Context, code string) error
}

// Machine state errors. Each maps to one rejected transition; the
// machine is left exactly as it was.
var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrNotStarted    = errors.New("quiz not started")
	ErrNoQuestions   = errors.New("no questions loaded")
	ErrAnswerPending = errors.New("answer already submitted for this question")
	ErrNoAnswer      = errors.New("no answer submitted yet")
	ErrCompleted     = errors.New("quiz already completed")
)

// Clock abstracts time for tests.
type Clock func() time.Time

// Machine drives one client's quiz session. It is rebuilt per request
// from the persisted snapshot: call Restore, apply one transition, and
// the machine persists the result. All remote failures leave the prior
// state intact; the caller surfaces the error and the user retries.
type Machine struct {
	backend Backend
	store   *session.Store
	sid     string
	now     Clock
	log     zerolog.Logger

	snap model.QuizSession
}

// NewMachine creates a machine bound to one client session.
func NewMachine(b Backend, store *session.Store, sessionID string, log zerolog.Logger) *Machine {
	return &Machine{
		backend: b,
		store:   store,
		sid:     sessionID,
		now:     time.Now,
		log:     log.With().Str("component", "quiz_machine").Logger(),
	}
}

// WithClock replaces the machine's time source. Test hook.
func (m *Machine) WithClock(now Clock) *Machine {
	m.now = now
	return m
}

// Snapshot returns a copy of the current session snapshot.
func (m *Machine) Snapshot() model.QuizSession { return m.snap }

// State returns the current machine state.
func (m *Machine) State() model.QuizState { return m.snap.State() }

// Restore rehydrates the machine from the persisted snapshot. A missing
// or corrupt snapshot restores to LoggedOut. No backend traffic and no
// clock changes happen here; each transition then operates on the
// snapshot exactly as the previous one persisted it.
func (m *Machine) Restore(ctx context.Context) error {
	snap, err := m.store.LoadQuizSession(ctx, m.sid)
	if err != nil {
		return err
	}
	if snap == nil {
		m.snap = model.QuizSession{}
		return nil
	}
	m.snap = *snap
	return nil
}

// Resume re-aligns a restored mid-quiz session with the backend's
// progress pointer (the page reload path). The answer clock restarts
// at now; elapsed time across a reload is deliberately not
// reconstructed. LoggedOut and Completed sessions are left untouched.
func (m *Machine) Resume(ctx context.Context) error {
	if m.snap.Code == "" || len(m.snap.Questions) == 0 || m.snap.Completed {
		return nil
	}
	// Best effort: a failed progress lookup leaves the restored
	// snapshot in place.
	if err := m.resume(ctx); err != nil {
		m.log.Debug().Err(err).Msg("Resume after reload failed")
	}
	if m.snap.Started {
		m.snap.QuestionShownAt = m.now()
	}
	return m.persist(ctx)
}

// Login exchanges the identity code for validity, loads the question
// list, and resumes any recorded progress. On any failure the machine
// stays LoggedOut and the error is returned for inline display.
func (m *Machine) Login(ctx context.Context, code string) error {
	login, err := m.backend.CodeLogin(ctx, code)
	if err != nil {
		return err
	}

	questions, err := m.backend.QuizQuestions(ctx)
	if err != nil {
		return err
	}

	m.snap = model.QuizSession{
		Code:        code,
		Questions:   questions,
		ChallengeID: login.ChallengeID,
	}

	if err := m.store.SaveParticipantCode(ctx, m.sid, code); err != nil {
		m.log.Warn().Err(err).Msg("Persisting badge code failed")
	}

	// Resume is best effort on login; a dead progress endpoint still
	// lets a fresh participant start at question 0.
	if err := m.resume(ctx); err != nil {
		m.log.Debug().Err(err).Msg("Resume during login failed")
	}

	return m.persist(ctx)
}

// resume aligns the machine with the backend's recorded progress
// pointer. A participant whose answered count equals the reported
// current question is already finished and lands in Completed without
// any further question or answer traffic (the idempotent-resume guard).
func (m *Machine) resume(ctx context.Context) error {
	sess, err := m.backend.GameSession(ctx, m.snap.Code)
	if err != nil {
		return err
	}

	if sess.ChallengeID != nil {
		m.snap.ChallengeID = sess.ChallengeID
	}

	if sess.TotalAnswered > 0 && sess.CurrentQuestion == int64(sess.TotalAnswered) {
		m.snap.Completed = true
		m.snap.CompletionMessage = "You have already completed this challenge."
		score := 0
		if sess.Score != nil {
			score = *sess.Score
		}
		m.snap.Score = &score
		return nil
	}

	idx := 0
	for i, q := range m.snap.Questions {
		if q.ID == sess.CurrentQuestion {
			idx = i
			break
		}
	}
	m.snap.CurrentIdx = idx
	return nil
}

// Start begins the quiz: the participant is registered on the
// leaderboard (fire-and-forget) and the answer clock starts.
func (m *Machine) Start(ctx context.Context) error {
	switch m.State() {
	case model.StateLoggedOut:
		return ErrNotLoggedIn
	case model.StateCompleted:
		return ErrCompleted
	}
	if len(m.snap.Questions) == 0 {
		return ErrNoQuestions
	}

	if err := m.backend.AddLeaderboardParticipant(ctx, m.snap.Code); err != nil {
		m.log.Debug().Err(err).Msg("Leaderboard registration failed")
	}

	m.snap.Started = true
	m.snap.LastResult = nil
	m.snap.QuestionShownAt = m.now()
	return m.persist(ctx)
}

// SubmitAnswer sends the selected option to the scoring authority in one
// round trip and records the verdict. A second submission for the same
// question is rejected until Advance.
func (m *Machine) SubmitAnswer(ctx context.Context, answer string) (*model.AnswerResult, error) {
	switch m.State() {
	case model.StateLoggedOut:
		return nil, ErrNotLoggedIn
	case model.StateLoggedIn:
		return nil, ErrNotStarted
	case model.StateCompleted:
		return nil, ErrCompleted
	}
	if m.snap.LastResult != nil {
		return nil, ErrAnswerPending
	}
	q := m.snap.CurrentQuestion()
	if q == nil {
		return nil, ErrNoQuestions
	}

	timeTaken := 0
	if !m.snap.QuestionShownAt.IsZero() {
		timeTaken = int(m.now().Sub(m.snap.QuestionShownAt).Round(time.Second) / time.Second)
	}

	result, err := m.backend.SubmitAnswer(ctx, backend.AnswerSubmission{
		UserID:      m.snap.Code,
		QuestionID:  q.ID,
		Answer:      answer,
		TimeTaken:   timeTaken,
		ChallengeID: m.snap.ChallengeID,
	})
	if err != nil {
		return nil, err
	}

	m.snap.LastResult = result
	if err := m.persist(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// Advance acknowledges the recorded verdict and moves to the next
// question, or to Completed when the list is exhausted. The local score
// on completion is the last answer's flag only; the backend keeps the
// authoritative tally.
func (m *Machine) Advance(ctx context.Context) error {
	switch m.State() {
	case model.StateLoggedOut:
		return ErrNotLoggedIn
	case model.StateLoggedIn:
		return ErrNotStarted
	case model.StateCompleted:
		return ErrCompleted
	}
	if m.snap.LastResult == nil {
		return ErrNoAnswer
	}

	if m.snap.CurrentIdx+1 >= len(m.snap.Questions) {
		score := 0
		if m.snap.LastResult.IsCorrect {
			score = 1
		}
		m.snap.CurrentIdx = len(m.snap.Questions)
		m.snap.Completed = true
		m.snap.Score = &score
		m.snap.LastResult = nil
		// Completion destroys the persisted record; the final screen
		// lives only in this response.
		return m.store.ClearQuizSession(ctx, m.sid)
	}

	m.snap.CurrentIdx++
	m.snap.LastResult = nil
	m.snap.QuestionShownAt = m.now()
	return m.persist(ctx)
}

// Reset clears the session for a fresh quiz ("start new quiz"). The
// badge code record is left alone; only the quiz snapshot is destroyed.
func (m *Machine) Reset(ctx context.Context) error {
	m.snap = model.QuizSession{}
	return m.store.ClearQuizSession(ctx, m.sid)
}

func (m *Machine) persist(ctx context.Context) error {
	return m.store.SaveQuizSession(ctx, m.sid, &m.snap)
}
