package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/backend"
	"github.com/Alka-null/nbcc2026gamesweb/internal/export"
	"github.com/Alka-null/nbcc2026gamesweb/internal/middleware"
	"github.com/Alka-null/nbcc2026gamesweb/internal/model"
	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
	"github.com/Alka-null/nbcc2026gamesweb/internal/validator"
)

// FeedbackHandler proxies feedback submission and powers the admin
// listing with its CSV and Word exports.
type FeedbackHandler struct {
	client *backend.Client
	store  *session.Store
	log    zerolog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(client *backend.Client, store *session.Store, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		client: client,
		store:  store,
		log:    log.With().Str("component", "feedback_handler").Logger(),
	}
}

// Submit godoc
// POST /api/v1/feedback
// Forwards one feedback record to the backend. A missing identity code
// falls back to the stored badge code, then to "anonymous".
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackSubmission
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	req.UniqueCode = strings.TrimSpace(req.UniqueCode)
	if req.UniqueCode == "" {
		stored, err := h.store.ParticipantCode(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			h.log.Warn().Err(err).Msg("Badge code lookup failed")
		}
		req.UniqueCode = stored
	}
	if req.UniqueCode == "" {
		req.UniqueCode = "anonymous"
	}

	receipt, err := h.client.SubmitFeedback(c.Request.Context(), req)
	if err != nil {
		failBackend(c, err)
		return
	}

	response.Success(c, http.StatusOK, receipt)
}

// List godoc
// GET /api/v1/admin/feedback
// Returns all stored feedback records.
func (h *FeedbackHandler) List(c *gin.Context) {
	feedbacks, err := h.client.ListFeedback(c.Request.Context())
	if err != nil {
		failBackend(c, err)
		return
	}
	if feedbacks == nil {
		feedbacks = []model.Feedback{}
	}
	response.Success(c, http.StatusOK, gin.H{"feedbacks": feedbacks})
}

// ExportCSV godoc
// GET /api/v1/admin/feedback/export/csv
// Streams every feedback record as a dated CSV download.
func (h *FeedbackHandler) ExportCSV(c *gin.Context) {
	feedbacks, err := h.client.ListFeedback(c.Request.Context())
	if err != nil {
		failBackend(c, err)
		return
	}

	data, err := export.FeedbackCSV(feedbacks)
	if err != nil {
		h.log.Error().Err(err).Msg("CSV export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	name := export.ExportFilename("csv", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportDoc godoc
// GET /api/v1/admin/feedback/export/doc
// Streams every feedback record as a Word-compatible document download.
func (h *FeedbackHandler) ExportDoc(c *gin.Context) {
	feedbacks, err := h.client.ListFeedback(c.Request.Context())
	if err != nil {
		failBackend(c, err)
		return
	}

	data, err := export.FeedbackDoc(feedbacks, time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Document export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	name := export.ExportFilename("doc", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/msword", data)
}
