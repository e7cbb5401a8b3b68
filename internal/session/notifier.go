package session

import "sync"

// Record names one of the persisted session record kinds.
type Record string

const (
	RecordParticipantCode Record = "participant_code"
	RecordQuizSession     Record = "quiz_session"
	RecordAdminToken      Record = "admin_token"
)

// ChangeEvent announces that a session record was written or cleared.
// Subscribers re-read the store; the event carries no payload, keeping
// the last-write-wins semantics of the underlying records.
type ChangeEvent struct {
	SessionID string `json:"session_id"`
	Record    Record `json:"record"`
}

// Notifier is an in-process publish/subscribe registry for session
// change events. Open tabs learn about record changes through the
// WebSocket stream instead of polling.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan ChangeEvent
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan ChangeEvent)}
}

// Subscribe registers a new subscriber channel and its cancel function.
// The channel is buffered; see Publish for the overflow policy.
func (n *Notifier) Subscribe() (<-chan ChangeEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan ChangeEvent, 16)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking. A
// subscriber that has fallen behind misses the event; it will catch up
// on its next read of the store.
func (n *Notifier) Publish(ev ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
