package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alka-null/nbcc2026gamesweb/internal/backend"
	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
)

// failBackend reduces a remote-call failure to an inline error payload.
// Transport failures and backend rejections keep their own codes so the
// UI can word the retry hint accordingly; nothing is retried here.
func failBackend(c *gin.Context, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, backend.ErrUnavailable):
		response.Fail(c, http.StatusBadGateway, response.ErrBackendUnavailable)
	case errors.As(err, &apiErr):
		response.FailWithMessage(c, http.StatusBadGateway, response.ErrBackendRejected, apiErr.Message)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
