package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/backend"
	"github.com/Alka-null/nbcc2026gamesweb/internal/middleware"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
)

func newHandlerStore(t *testing.T) *session.Store {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return session.NewStore(client, time.Minute, zerolog.Nop())
}

// withSessionID pins the client session ID so store assertions can use it.
func withSessionID(sid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeySessionID, sid)
		c.Next()
	}
}

func authRouter(t *testing.T, backendSrv *httptest.Server, store *session.Store) *gin.Engine {
	t.Helper()
	client := backend.NewClient(backendSrv.URL, nil)
	h := NewAuthHandler(client, store, zerolog.Nop())

	r := gin.New()
	r.Use(withSessionID("sid-1"))
	r.POST("/register", h.Register)
	r.POST("/code-login", h.CodeLogin)
	r.POST("/logout", h.Logout)
	r.GET("/me", h.Me)

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdminSession(store))
	admin.GET("/check", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterStoresBadgeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/register/" {
			t.Errorf("path %q", r.URL.Path)
		}
		w.Write([]byte(`{"player":{"unique_code":"NEW123"}}`))
	}))
	defer srv.Close()

	store := newHandlerStore(t)
	r := authRouter(t, srv, store)

	rec := postJSON(t, r, "/register", `{"name":"Ada","email":"ada@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			UniqueCode string `json:"unique_code"`
		} `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Data.UniqueCode != "NEW123" {
		t.Fatalf("code %q", resp.Data.UniqueCode)
	}

	stored, _ := store.ParticipantCode(context.Background(), "sid-1")
	if stored != "NEW123" {
		t.Fatalf("stored code %q", stored)
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called on validation failure")
	}))
	defer srv.Close()

	r := authRouter(t, srv, newHandlerStore(t))
	rec := postJSON(t, r, "/register", `{"name":"Ada","email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestCodeLoginOpensAdminSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"admin-tok"}`))
	}))
	defer srv.Close()

	store := newHandlerStore(t)
	r := authRouter(t, srv, store)

	rec := postJSON(t, r, "/code-login", `{"unique_code":"ADMIN1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	tok, _ := store.AdminToken(context.Background(), "sid-1")
	if tok != "admin-tok" {
		t.Fatalf("stored token %q", tok)
	}

	// Admin routes open up for this session.
	req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	check := httptest.NewRecorder()
	r.ServeHTTP(check, req)
	if check.Code != http.StatusNoContent {
		t.Fatalf("admin gate status %d", check.Code)
	}
}

func TestCodeLoginFallsBackToCodeAsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := newHandlerStore(t)
	r := authRouter(t, srv, store)

	postJSON(t, r, "/code-login", `{"unique_code":"ADMIN1"}`)
	tok, _ := store.AdminToken(context.Background(), "sid-1")
	if tok != "ADMIN1" {
		t.Fatalf("stored token %q, want the code itself", tok)
	}
}

func TestCodeLoginRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid code"}`))
	}))
	defer srv.Close()

	store := newHandlerStore(t)
	r := authRouter(t, srv, store)

	rec := postJSON(t, r, "/code-login", `{"unique_code":"WRONG"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
	if tok, _ := store.AdminToken(context.Background(), "sid-1"); tok != "" {
		t.Fatalf("token stored despite rejection: %q", tok)
	}
}

func TestLogoutClosesAdminSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"admin-tok"}`))
	}))
	defer srv.Close()

	store := newHandlerStore(t)
	r := authRouter(t, srv, store)

	postJSON(t, r, "/code-login", `{"unique_code":"ADMIN1"}`)
	postJSON(t, r, "/logout", ``)

	req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("admin gate status %d after logout, want 401", rec.Code)
	}
}

func TestMeReflectsSessionState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"player":{"unique_code":"NEW123"}}`))
	}))
	defer srv.Close()

	store := newHandlerStore(t)
	r := authRouter(t, srv, store)

	me := func() (string, bool) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		var resp struct {
			Data struct {
				UniqueCode string `json:"unique_code"`
				IsAdmin    bool   `json:"is_admin"`
			} `json:"data"`
		}
		json.Unmarshal(rec.Body.Bytes(), &resp)
		return resp.Data.UniqueCode, resp.Data.IsAdmin
	}

	if code, isAdmin := me(); code != "" || isAdmin {
		t.Fatalf("fresh session reported %q/%v", code, isAdmin)
	}

	postJSON(t, r, "/register", `{"name":"Ada","email":"ada@example.com"}`)
	if code, _ := me(); code != "NEW123" {
		t.Fatalf("badge code %q after register", code)
	}
}
