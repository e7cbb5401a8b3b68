package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/backend"
	"github.com/Alka-null/nbcc2026gamesweb/internal/middleware"
	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
	"github.com/Alka-null/nbcc2026gamesweb/internal/validator"
)

// AuthHandler handles registration, admin code login, and the session
// badge endpoint.
type AuthHandler struct {
	client *backend.Client
	store  *session.Store
	log    zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *backend.Client, store *session.Store, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		client: client,
		store:  store,
		log:    log.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterRequest is the participant sign-up payload.
type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Register godoc
// POST /api/v1/auth/register
// Creates a participant on the remote backend and persists the returned
// identity code for cross-page badge display.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	code, err := h.client.Register(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		failBackend(c, err)
		return
	}

	sid := middleware.SessionID(c)
	if err := h.store.SaveParticipantCode(c.Request.Context(), sid, code); err != nil {
		h.log.Warn().Err(err).Msg("Persisting badge code failed")
	}

	response.Success(c, http.StatusOK, gin.H{"unique_code": code})
}

// CodeLoginRequest carries the admin identity code.
type CodeLoginRequest struct {
	UniqueCode string `json:"unique_code" binding:"required"`
}

// CodeLogin godoc
// POST /api/v1/auth/code-login
// Validates an admin code against the backend and stores the returned
// bearer credential (or the code itself when no token is issued) for
// this client session.
func (h *AuthHandler) CodeLogin(c *gin.Context) {
	var req CodeLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.client.CodeLogin(c.Request.Context(), req.UniqueCode)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCode)
			return
		}
		failBackend(c, err)
		return
	}

	token := result.Token
	if token == "" {
		token = req.UniqueCode
	}

	sid := middleware.SessionID(c)
	if err := h.store.SaveAdminToken(c.Request.Context(), sid, token); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logged_in": true})
}

// Logout godoc
// POST /api/v1/auth/logout
// Drops the stored admin credential for this client session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := middleware.SessionID(c)
	if err := h.store.ClearAdminToken(c.Request.Context(), sid); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logged_in": false})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the badge state for the current client session: the stored
// participant code (if any) and whether an admin credential is present.
func (h *AuthHandler) Me(c *gin.Context) {
	sid := middleware.SessionID(c)
	ctx := c.Request.Context()

	code, err := h.store.ParticipantCode(ctx, sid)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	adminToken, err := h.store.AdminToken(ctx, sid)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"unique_code": code,
		"is_admin":    adminToken != "",
	})
}
