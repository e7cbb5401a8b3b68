package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// ContextKeySessionID is the Gin context key for the client session ID.
	ContextKeySessionID = "client_session_id"

	// SessionCookieName carries the signed client session token. The
	// cookie only identifies the browser to the session store; the
	// participant identity code inside the store stays an opaque backend
	// credential.
	SessionCookieName = "nbcc_session"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// ClientSession ensures every request carries a valid client session ID,
// minting a fresh one (and setting the cookie) when the incoming token is
// missing, expired, or tampered with. The ID keys all session store
// records for this browser.
func ClientSession(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := ""
		if raw, err := c.Cookie(SessionCookieName); err == nil {
			sid, _ = parseSessionToken(raw, secret)
		}

		if sid == "" {
			sid = uuid.New().String()
			token, err := mintSessionToken(sid, secret, ttl)
			if err == nil {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(SessionCookieName, token, int(ttl/time.Second), "/", "", false, true)
			}
		}

		c.Set(ContextKeySessionID, sid)
		c.Next()
	}
}

// SessionID retrieves the client session ID from the Gin context.
// Returns "" if the ClientSession middleware did not run.
func SessionID(c *gin.Context) string {
	val, exists := c.Get(ContextKeySessionID)
	if !exists {
		return ""
	}
	sid, _ := val.(string)
	return sid
}

func mintSessionToken(sid, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SessionID: sid,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseSessionToken(raw, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}
