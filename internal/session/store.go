// Package session is the per-client persisted state store: Redis records
// keyed by a client session ID, holding the participant badge code, the
// quiz session snapshot, and the admin bearer credential. The records
// survive page reloads; the browser itself keeps nothing durable.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/config"
	"github.com/Alka-null/nbcc2026gamesweb/internal/model"
)

// Store reads and writes per-client session records. Writes are
// last-writer-wins; there is no merge or versioning. Every write and
// clear publishes a change event to subscribers.
type Store struct {
	rdb      *redis.Client
	ttl      time.Duration
	log      zerolog.Logger
	notifier *Notifier
}

// NewStore creates a session store. ttl is a safety-net expiry; records
// are expected to be cleared explicitly on logout or completion.
func NewStore(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Store {
	return &Store{
		rdb:      rdb,
		ttl:      ttl,
		log:      log.With().Str("component", "session_store").Logger(),
		notifier: NewNotifier(),
	}
}

// Subscribe registers a change-event subscriber. The returned cancel
// function must be called when the subscriber is done.
func (s *Store) Subscribe() (<-chan ChangeEvent, func()) {
	return s.notifier.Subscribe()
}

// LoadQuizSession returns the stored quiz snapshot, or nil when the
// record is missing or corrupt. Corrupt records are treated as absent,
// never repaired and never surfaced to the user.
func (s *Store) LoadQuizSession(ctx context.Context, sessionID string) (*model.QuizSession, error) {
	key := config.SessionKey.QuizSnapshotKey(sessionID)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load quiz session: %w", err)
	}

	var snap model.QuizSession
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Debug().Err(err).Str("session_id", sessionID).Msg("Corrupt quiz snapshot treated as absent")
		return nil, nil
	}
	return &snap, nil
}

// SaveQuizSession persists the quiz snapshot for the client.
func (s *Store) SaveQuizSession(ctx context.Context, sessionID string, snap *model.QuizSession) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode quiz session: %w", err)
	}
	key := config.SessionKey.QuizSnapshotKey(sessionID)
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save quiz session: %w", err)
	}
	s.notifier.Publish(ChangeEvent{SessionID: sessionID, Record: RecordQuizSession})
	return nil
}

// ClearQuizSession removes the quiz snapshot.
func (s *Store) ClearQuizSession(ctx context.Context, sessionID string) error {
	key := config.SessionKey.QuizSnapshotKey(sessionID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear quiz session: %w", err)
	}
	s.notifier.Publish(ChangeEvent{SessionID: sessionID, Record: RecordQuizSession})
	return nil
}

// ParticipantCode returns the stored badge code, or "" when absent.
func (s *Store) ParticipantCode(ctx context.Context, sessionID string) (string, error) {
	return s.getString(ctx, config.SessionKey.ParticipantCodeKey(sessionID))
}

// SaveParticipantCode stores the badge code shown across pages.
func (s *Store) SaveParticipantCode(ctx context.Context, sessionID, code string) error {
	key := config.SessionKey.ParticipantCodeKey(sessionID)
	if err := s.rdb.Set(ctx, key, code, s.ttl).Err(); err != nil {
		return fmt.Errorf("save participant code: %w", err)
	}
	s.notifier.Publish(ChangeEvent{SessionID: sessionID, Record: RecordParticipantCode})
	return nil
}

// ClearParticipantCode removes the badge code.
func (s *Store) ClearParticipantCode(ctx context.Context, sessionID string) error {
	key := config.SessionKey.ParticipantCodeKey(sessionID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear participant code: %w", err)
	}
	s.notifier.Publish(ChangeEvent{SessionID: sessionID, Record: RecordParticipantCode})
	return nil
}

// AdminToken returns the stored admin bearer credential, or "" when the
// client is not an admin.
func (s *Store) AdminToken(ctx context.Context, sessionID string) (string, error) {
	return s.getString(ctx, config.SessionKey.AdminTokenKey(sessionID))
}

// SaveAdminToken stores the admin bearer credential.
func (s *Store) SaveAdminToken(ctx context.Context, sessionID, token string) error {
	key := config.SessionKey.AdminTokenKey(sessionID)
	if err := s.rdb.Set(ctx, key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("save admin token: %w", err)
	}
	s.notifier.Publish(ChangeEvent{SessionID: sessionID, Record: RecordAdminToken})
	return nil
}

// ClearAdminToken removes the admin bearer credential.
func (s *Store) ClearAdminToken(ctx context.Context, sessionID string) error {
	key := config.SessionKey.AdminTokenKey(sessionID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear admin token: %w", err)
	}
	s.notifier.Publish(ChangeEvent{SessionID: sessionID, Record: RecordAdminToken})
	return nil
}

func (s *Store) getString(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return val, nil
}
