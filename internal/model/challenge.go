package model

import "time"

// Challenge is a named, time-bounded leaderboard competition instance.
// Challenges are created and ended exclusively by the remote backend;
// this service only starts and displays them.
type Challenge struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}
