package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/middleware"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
	ws "github.com/Alka-null/nbcc2026gamesweb/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams session record changes to the owning client so open
// tabs can refresh their view without polling.
type WSHandler struct {
	store    *session.Store
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(store *session.Store, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		store:    store,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/session/stream
// Upgrades to WebSocket and pushes a change event whenever one of the
// caller's session records is written or cleared.
func (h *WSHandler) SessionStream(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.store.Subscribe()
	defer cancel()

	wsLog := h.log.With().Str("session_id", sessionID).Logger()
	wsLog.Info().Msg("Client connected")

	// Reader loop in its own goroutine: it only forwards inbound actions
	// and detects the client closing the socket. All writes stay on the
	// main loop, the connection's single writer.
	done := make(chan struct{})
	exit := make(chan struct{})
	defer close(exit)
	actions := make(chan ws.RequestPayload)
	go func() {
		defer close(done)
		for {
			var msg ws.RequestPayload
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			select {
			case actions <- msg:
			case <-exit:
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case msg := <-actions:
			switch msg.Action {
			case ws.ActionPing:
				if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
					return
				}
			default:
				wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
				ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.SessionID != sessionID {
				continue
			}
			if err := ws.WriteTyped(conn, ws.ChangeResponse{Event: ws.EventChange, Record: ev.Record}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed")
				return
			}
		}
	}
}
