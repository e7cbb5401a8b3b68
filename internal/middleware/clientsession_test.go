package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func sessionRouter() *gin.Engine {
	r := gin.New()
	r.Use(ClientSession(testSecret, time.Hour))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})
	return r
}

func TestClientSessionMintsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	sessionRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Body.String() == "" {
		t.Fatal("expected a session ID")
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
}

func TestClientSessionIsStableAcrossRequests(t *testing.T) {
	r := sessionRouter()

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	sid := first.Body.String()

	var cookie *http.Cookie
	for _, ck := range first.Result().Cookies() {
		if ck.Name == SessionCookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)

	if second.Body.String() != sid {
		t.Fatalf("session ID changed: %q then %q", sid, second.Body.String())
	}
	for _, ck := range second.Result().Cookies() {
		if ck.Name == SessionCookieName {
			t.Fatal("cookie re-minted for a valid session")
		}
	}
}

func TestClientSessionRejectsTamperedToken(t *testing.T) {
	r := sessionRouter()

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	sid := first.Body.String()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage.token.here"})
	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)

	if second.Body.String() == sid || second.Body.String() == "" {
		t.Fatalf("tampered token should mint a fresh session, got %q", second.Body.String())
	}

	minted := false
	for _, ck := range second.Result().Cookies() {
		if ck.Name == SessionCookieName {
			minted = true
		}
	}
	if !minted {
		t.Fatal("expected a replacement cookie")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := mintSessionToken("sid-42", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	sid, err := parseSessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sid != "sid-42" {
		t.Fatalf("sid %q", sid)
	}

	if _, err := parseSessionToken(token, "other-secret"); err == nil {
		t.Fatal("expected a signature failure with the wrong secret")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := mintSessionToken("sid-42", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := parseSessionToken(token, testSecret); err == nil {
		t.Fatal("expected an expiry failure")
	}
}
