// Package backend is the HTTP client for the remote gamification API.
// Every piece of business logic — code validity, scoring, leaderboards,
// feedback storage — lives on the other side of this client; the gateway
// only shapes requests and decodes responses.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Alka-null/nbcc2026gamesweb/internal/model"
)

// ErrUnavailable reports a transport-level failure: the request never
// produced an HTTP response.
var ErrUnavailable = errors.New("game backend unavailable")

// APIError is a non-success HTTP response from the backend, carrying the
// decoded error message when one was provided.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client talks to the remote gamification API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client rooted at baseURL. A nil httpClient
// falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// CodeLoginResult is the payload returned by a successful code login.
// Token is optional; when absent the identity code itself is the bearer
// credential. ChallengeID is present while a leaderboard challenge runs.
type CodeLoginResult struct {
	Token       string `json:"token"`
	ChallengeID *int64 `json:"challenge_id"`
}

// CodeLogin exchanges an identity code for validity confirmation and an
// optional active challenge identifier.
func (c *Client) CodeLogin(ctx context.Context, code string) (*CodeLoginResult, error) {
	var result CodeLoginResult
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/code-login/",
		map[string]string{"unique_code": code}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type registerResponse struct {
	Player struct {
		UniqueCode string `json:"unique_code"`
	} `json:"player"`
	UniqueCode string `json:"unique_code"`
	Code       string `json:"code"`
}

// Register creates a participant and returns the generated identity code.
// The backend has shipped the code under several shapes over time, so all
// known locations are checked.
func (c *Client) Register(ctx context.Context, name, email string) (string, error) {
	var resp registerResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register/",
		map[string]string{"name": name, "email": email}, &resp)
	if err != nil {
		return "", err
	}

	code := resp.Player.UniqueCode
	if code == "" {
		code = resp.UniqueCode
	}
	if code == "" {
		code = resp.Code
	}
	if code == "" {
		return "", errors.New("registration succeeded but no code was returned")
	}
	return code, nil
}

type questionsResponse struct {
	Questions []model.Question `json:"questions"`
}

// QuizQuestions fetches the full ordered question list.
func (c *Client) QuizQuestions(ctx context.Context) ([]model.Question, error) {
	var resp questionsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/gameplay/quiz_questions/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// GameSessionResult is the backend's recorded progress pointer for a
// participant, queried on login and on resume.
type GameSessionResult struct {
	CurrentQuestion int64  `json:"current_question"`
	TotalAnswered   int    `json:"total_answered"`
	Score           *int   `json:"score"`
	ChallengeID     *int64 `json:"challenge_id"`
}

// GameSession queries the participant's current question pointer.
func (c *Client) GameSession(ctx context.Context, code string) (*GameSessionResult, error) {
	var result GameSessionResult
	err := c.doJSON(ctx, http.MethodPost, "/api/gameplay/game_session/",
		map[string]string{"unique_code": code}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AnswerSubmission is one answer round trip to the scoring authority.
type AnswerSubmission struct {
	UserID      string `json:"user_id"`
	QuestionID  int64  `json:"question_id"`
	Answer      string `json:"answer"`
	TimeTaken   int    `json:"time_taken"`
	ChallengeID *int64 `json:"challenge_id"`
}

type submitAnswerResponse struct {
	IsCorrect bool `json:"is_correct"`
	Correct   bool `json:"correct"`
}

// SubmitAnswer sends one answer and returns the normalized verdict. The
// backend has used both "is_correct" and "correct" field names; either
// counts.
func (c *Client) SubmitAnswer(ctx context.Context, sub AnswerSubmission) (*model.AnswerResult, error) {
	var resp submitAnswerResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/gameplay/submit_answer/", sub, &resp); err != nil {
		return nil, err
	}
	return &model.AnswerResult{IsCorrect: resp.IsCorrect || resp.Correct}, nil
}

// AddLeaderboardParticipant registers the participant on the leaderboard.
// Fire-and-forget: a failure never blocks the quiz from starting.
func (c *Client) AddLeaderboardParticipant(ctx context.Context, code string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/gameplay/add_leaderboard_participant/",
		map[string]string{"unique_code": code}, nil)
}

// StartChallengeResult identifies a freshly started challenge.
type StartChallengeResult struct {
	ChallengeID int64  `json:"challenge_id"`
	Name        string `json:"name"`
}

// StartChallenge begins a new leaderboard challenge.
func (c *Client) StartChallenge(ctx context.Context, name string) (*StartChallengeResult, error) {
	var result StartChallengeResult
	err := c.doJSON(ctx, http.MethodPost, "/api/gameplay/start_challenge/",
		map[string]string{"name": name}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type challengesResponse struct {
	Challenges []model.Challenge `json:"challenges"`
}

// ListChallenges returns all past and present challenges.
func (c *Client) ListChallenges(ctx context.Context) ([]model.Challenge, error) {
	var resp challengesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/gameplay/challenges/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Challenges, nil
}

// FeedbackReceipt acknowledges a stored feedback record.
type FeedbackReceipt struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FeedbackID *int64 `json:"feedback_id"`
}

// SubmitFeedback stores one feedback record.
func (c *Client) SubmitFeedback(ctx context.Context, sub model.FeedbackSubmission) (*FeedbackReceipt, error) {
	var receipt FeedbackReceipt
	if err := c.doJSON(ctx, http.MethodPost, "/api/gameplay/feedback/", sub, &receipt); err != nil {
		return nil, err
	}
	if !receipt.Success && receipt.Message != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: receipt.Message}
	}
	return &receipt, nil
}

type feedbackListResponse struct {
	Feedbacks []model.Feedback `json:"feedbacks"`
}

// ListFeedback returns every stored feedback record.
func (c *Client) ListFeedback(ctx context.Context) ([]model.Feedback, error) {
	var resp feedbackListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/gameplay/feedback/all/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Feedbacks, nil
}

// UploadJigsawPieces forwards a finished tile batch to backend storage.
// Pieces are base64 data URLs, row-major order.
func (c *Client) UploadJigsawPieces(ctx context.Context, pieces []string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/jigsaw/upload/",
		map[string][]string{"pieces": pieces}, nil)
}

type errorResponse struct {
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e errorResponse) first() string {
	for _, m := range []string{e.Error, e.Detail, e.Message} {
		if strings.TrimSpace(m) != "" {
			return m
		}
	}
	return ""
}

// doJSON performs one round trip: marshal the request body (when given),
// issue the request, map transport failures to ErrUnavailable and
// non-2xx statuses to *APIError, and decode into responseBody (when given).
func (c *Client) doJSON(ctx context.Context, method, path string, requestBody, responseBody interface{}) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.first()
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(responseBody)
}
