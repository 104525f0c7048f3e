package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
)

// Key formats:
//
//	session:<credential>        → JSON session record, TTL'd
//	user_sessions:<user_id>     → set of live credentials for that user
const (
	sessionPrefix      = "session:"
	userSessionsPrefix = "user_sessions:"
)

// SessionStore keeps session records in Redis, keyed by the full
// credential string. Redis's own TTL eviction is a backstop; callers
// still check expiry explicitly.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put stores the record and indexes the credential under its user. The
// user index inherits the latest session's TTL so it never outlives the
// last live session by more than one token lifetime.
func (s *SessionStore) Put(ctx context.Context, credential string, rec domain.SessionRecord, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	userKey := userSessionsPrefix + rec.UserID
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionPrefix+credential, payload, ttl)
	pipe.SAdd(ctx, userKey, credential)
	pipe.Expire(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, credential string) (*domain.SessionRecord, error) {
	raw, err := s.client.Get(ctx, sessionPrefix+credential).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &rec, nil
}

// Delete removes the session record and its user-index entry. Deleting
// an absent credential is a no-op.
func (s *SessionStore) Delete(ctx context.Context, credential string) error {
	rec, err := s.Get(ctx, credential)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionPrefix+credential)
	pipe.SRem(ctx, userSessionsPrefix+rec.UserID, credential)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteAll removes every session indexed under the user and returns
// how many record keys were actually live (index entries may outlive
// TTL-evicted records).
func (s *SessionStore) DeleteAll(ctx context.Context, userID string) (int, error) {
	userKey := userSessionsPrefix + userID
	credentials, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list user sessions: %w", err)
	}

	live := 0
	if len(credentials) > 0 {
		keys := make([]string, len(credentials))
		for i, c := range credentials {
			keys[i] = sessionPrefix + c
		}
		n, err := s.client.Del(ctx, keys...).Result()
		if err != nil {
			return 0, fmt.Errorf("delete user sessions: %w", err)
		}
		live = int(n)
	}

	if err := s.client.Del(ctx, userKey).Err(); err != nil {
		return live, fmt.Errorf("delete session index: %w", err)
	}
	return live, nil
}
