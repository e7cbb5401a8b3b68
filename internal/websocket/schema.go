package websocket

import "github.com/Alka-null/nbcc2026gamesweb/internal/session"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestPayload is the single inbound message shape. The stream is
// push-driven; clients only send keepalive pings.
type RequestPayload struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventChange Event = "change"
	EventError  Event = "error"
	EventPong   Event = "pong"
)

// ChangeResponse notifies the client that one of its session records was
// written or cleared. The client re-reads the relevant endpoint; the
// event itself carries no state.
type ChangeResponse struct {
	Event  Event          `json:"event"`
	Record session.Record `json:"record"`
}

// ErrorResponse reports a stream-level failure before the connection drops.
type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

// PongResponse answers a client ping.
type PongResponse struct {
	Event Event `json:"event"`
}
