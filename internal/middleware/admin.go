package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
)

// RequireAdminSession gates admin routes on a stored admin bearer
// credential for the current client session. The credential is whatever
// the backend returned at code login; no format is assumed or validated
// locally.
func RequireAdminSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := SessionID(c)
		if sid == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAdminAccessOnly)
			return
		}

		token, err := store.AdminToken(c.Request.Context(), sid)
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAdminAccessOnly)
			return
		}

		c.Next()
	}
}
