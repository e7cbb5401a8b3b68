package config

import (
	"fmt"
)

// SessionKeyStruct centralizes Redis key naming for per-client session
// records. The three record kinds mirror what the browser front end keeps
// in durable storage: the participant badge code, the quiz session
// snapshot, and the admin bearer credential.
type SessionKeyStruct struct{}

func NewSessionKeyStruct() *SessionKeyStruct {
	return &SessionKeyStruct{}
}

// ParticipantCodeKey returns the key holding a client's identity code,
// shown as a cross-page badge and prefilled into the feedback form.
func (r *SessionKeyStruct) ParticipantCodeKey(sessionID string) string {
	return fmt.Sprintf("client:%s:participant_code", sessionID)
}

// QuizSnapshotKey returns the key holding the full quiz session snapshot.
func (r *SessionKeyStruct) QuizSnapshotKey(sessionID string) string {
	return fmt.Sprintf("client:%s:quiz_snapshot", sessionID)
}

// AdminTokenKey returns the key holding the admin bearer credential.
func (r *SessionKeyStruct) AdminTokenKey(sessionID string) string {
	return fmt.Sprintf("client:%s:admin_token", sessionID)
}

var SessionKey = NewSessionKeyStruct()
