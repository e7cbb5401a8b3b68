package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	ws "github.com/Alka-null/nbcc2026gamesweb/internal/websocket"
)

func TestSessionStreamDeliversOwnChanges(t *testing.T) {
	store := newHandlerStore(t)
	h := NewWSHandler(store, zerolog.Nop(), nil)

	r := gin.New()
	r.Use(withSessionID("sid-1"))
	r.GET("/stream", h.SessionStream)

	server := httptest.NewServer(r)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// A pong confirms the server side finished subscribing before we
	// publish anything.
	if err := conn.WriteJSON(ws.RequestPayload{Action: ws.ActionPing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var pong ws.PongResponse
	if err := conn.ReadJSON(&pong); err != nil {
		t.Fatalf("read pong: %v", err)
	}

	// A write for another session must not reach this stream; a write
	// for the caller's session must.
	ctx := context.Background()
	if err := store.SaveParticipantCode(ctx, "sid-2", "OTHER"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveParticipantCode(ctx, "sid-1", "MINE"); err != nil {
		t.Fatalf("save: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var change ws.ChangeResponse
	if err := conn.ReadJSON(&change); err != nil {
		t.Fatalf("read change: %v", err)
	}
	if change.Event != ws.EventChange {
		t.Fatalf("event %q", change.Event)
	}
	if change.Record != "participant_code" {
		t.Fatalf("record %q", change.Record)
	}
}

func TestSessionStreamAnswersPing(t *testing.T) {
	store := newHandlerStore(t)
	h := NewWSHandler(store, zerolog.Nop(), nil)

	r := gin.New()
	r.Use(withSessionID("sid-1"))
	r.GET("/stream", h.SessionStream)

	server := httptest.NewServer(r)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(ws.RequestPayload{Action: ws.ActionPing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var pong ws.PongResponse
	if err := conn.ReadJSON(&pong); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if pong.Event != ws.EventPong {
		t.Fatalf("event %q", pong.Event)
	}
}

func TestSessionStreamRejectsDisallowedOrigin(t *testing.T) {
	store := newHandlerStore(t)
	h := NewWSHandler(store, zerolog.Nop(), []string{"https://allowed.example.com"})

	r := gin.New()
	r.Use(withSessionID("sid-1"))
	r.GET("/stream", h.SessionStream)

	server := httptest.NewServer(r)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/stream"
	header := map[string][]string{"Origin": {"https://evil.example.com"}}
	if _, _, err := websocket.DefaultDialer.Dial(u, header); err == nil {
		t.Fatal("expected the upgrade to be refused")
	}
}
