package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alka-null/nbcc2026gamesweb/internal/backend"
	"github.com/Alka-null/nbcc2026gamesweb/internal/model"
	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
	"github.com/Alka-null/nbcc2026gamesweb/internal/validator"
)

// ChallengeHandler proxies leaderboard challenge administration to the
// backend. Challenges are display-only here; their lifecycle is owned
// remotely.
type ChallengeHandler struct {
	client *backend.Client
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(client *backend.Client) *ChallengeHandler {
	return &ChallengeHandler{client: client}
}

// StartChallengeRequest names a new leaderboard challenge.
type StartChallengeRequest struct {
	Name string `json:"name" binding:"required"`
}

// Start godoc
// POST /api/v1/admin/challenges
// Starts a new leaderboard challenge on the backend.
func (h *ChallengeHandler) Start(c *gin.Context) {
	var req StartChallengeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.client.StartChallenge(c.Request.Context(), req.Name)
	if err != nil {
		failBackend(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"challenge_id": result.ChallengeID,
		"name":         result.Name,
	})
}

// List godoc
// GET /api/v1/admin/challenges
// Returns all past and present challenges.
func (h *ChallengeHandler) List(c *gin.Context) {
	challenges, err := h.client.ListChallenges(c.Request.Context())
	if err != nil {
		failBackend(c, err)
		return
	}
	if challenges == nil {
		challenges = []model.Challenge{}
	}
	response.Success(c, http.StatusOK, gin.H{"challenges": challenges})
}
