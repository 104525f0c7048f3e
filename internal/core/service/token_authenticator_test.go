package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
)

// memSessionStore is an in-memory SessionStore with the same contract
// as the Redis-backed one.
type memSessionStore struct {
	records map[string]domain.SessionRecord
	byUser  map[string]map[string]struct{}
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		records: make(map[string]domain.SessionRecord),
		byUser:  make(map[string]map[string]struct{}),
	}
}

func (s *memSessionStore) Put(_ context.Context, credential string, rec domain.SessionRecord, _ time.Duration) error {
	s.records[credential] = rec
	if s.byUser[rec.UserID] == nil {
		s.byUser[rec.UserID] = make(map[string]struct{})
	}
	s.byUser[rec.UserID][credential] = struct{}{}
	return nil
}

func (s *memSessionStore) Get(_ context.Context, credential string) (*domain.SessionRecord, error) {
	rec, ok := s.records[credential]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &rec, nil
}

func (s *memSessionStore) Delete(_ context.Context, credential string) error {
	rec, ok := s.records[credential]
	if !ok {
		return nil
	}
	delete(s.records, credential)
	delete(s.byUser[rec.UserID], credential)
	return nil
}

func (s *memSessionStore) DeleteAll(_ context.Context, userID string) (int, error) {
	n := 0
	for credential := range s.byUser[userID] {
		if _, ok := s.records[credential]; ok {
			delete(s.records, credential)
			n++
		}
	}
	delete(s.byUser, userID)
	return n, nil
}

func testUser() *domain.User {
	return &domain.User{
		ID:       "u-1",
		Name:     "Alice",
		Email:    "alice@example.com",
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
}

func TestTokenAuthenticator_IssueAndValidate(t *testing.T) {
	store := newMemSessionStore()
	auth := NewTokenAuthenticator(store, 0, zerolog.Nop())

	issued, err := auth.Issue(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if !strings.HasPrefix(issued.Token, domain.CredentialPrefix) {
		t.Fatalf("credential %q missing prefix", issued.Token)
	}
	if issued.TokenType != domain.TokenType {
		t.Fatalf("unexpected token type %q", issued.TokenType)
	}
	if issued.ExpiresIn != 86400 {
		t.Fatalf("expected 86400 seconds lifetime, got %d", issued.ExpiresIn)
	}
	if issued.Record.ExpiresAt != issued.Record.IssuedAt+86400 {
		t.Fatalf("expiry not one day after issuance")
	}

	rec, err := auth.Validate(context.Background(), issued.Token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if rec.UserID != "u-1" || rec.Email != "alice@example.com" || rec.Role != domain.RoleAdmin {
		t.Fatalf("record does not match issued identity: %+v", rec)
	}
}

func TestTokenAuthenticator_CredentialSelfDescribing(t *testing.T) {
	store := newMemSessionStore()
	auth := NewTokenAuthenticator(store, time.Hour, zerolog.Nop())

	issued, err := auth.Issue(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Claims must be readable without touching the store.
	decoded, err := domain.DecodeCredential(issued.Token)
	if err != nil {
		t.Fatalf("DecodeCredential returned error: %v", err)
	}
	if *decoded != issued.Record {
		t.Fatalf("decoded claims %+v differ from stored record %+v", decoded, issued.Record)
	}
}

func TestTokenAuthenticator_ValidateUnknown(t *testing.T) {
	auth := NewTokenAuthenticator(newMemSessionStore(), time.Hour, zerolog.Nop())

	if _, err := auth.Validate(context.Background(), "Bearer_bogus_0000"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTokenAuthenticator_RevokeIsIdempotent(t *testing.T) {
	store := newMemSessionStore()
	auth := NewTokenAuthenticator(store, time.Hour, zerolog.Nop())

	issued, err := auth.Issue(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := auth.Revoke(context.Background(), issued.Token); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if _, err := auth.Validate(context.Background(), issued.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after revoke, got %v", err)
	}

	// Second revoke of the same credential must stay quiet.
	if err := auth.Revoke(context.Background(), issued.Token); err != nil {
		t.Fatalf("second Revoke returned error: %v", err)
	}
}

func TestTokenAuthenticator_ExpiredSessionEvicted(t *testing.T) {
	store := newMemSessionStore()
	auth := NewTokenAuthenticator(store, time.Hour, zerolog.Nop())

	issuedAt := time.Now().UTC()
	auth.now = func() time.Time { return issuedAt }

	issued, err := auth.Issue(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	auth.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }

	if _, err := auth.Validate(context.Background(), issued.Token); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	// The expired record is gone; a second attempt sees a plain miss.
	if _, err := auth.Validate(context.Background(), issued.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after eviction, got %v", err)
	}
}

func TestTokenAuthenticator_Refresh(t *testing.T) {
	store := newMemSessionStore()
	auth := NewTokenAuthenticator(store, time.Hour, zerolog.Nop())

	user := testUser()
	old, err := auth.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	fresh, err := auth.Refresh(context.Background(), old.Token, user)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if fresh.Token == old.Token {
		t.Fatalf("refresh reissued the same credential")
	}

	if _, err := auth.Validate(context.Background(), old.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("old credential still valid after refresh: %v", err)
	}
	if _, err := auth.Validate(context.Background(), fresh.Token); err != nil {
		t.Fatalf("new credential invalid after refresh: %v", err)
	}
}

func TestTokenAuthenticator_RevokeAll(t *testing.T) {
	store := newMemSessionStore()
	auth := NewTokenAuthenticator(store, time.Hour, zerolog.Nop())

	user := testUser()
	first, _ := auth.Issue(context.Background(), user)
	second, _ := auth.Issue(context.Background(), user)

	n, err := auth.RevokeAll(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("RevokeAll returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 revoked sessions, got %d", n)
	}

	for _, credential := range []string{first.Token, second.Token} {
		if _, err := auth.Validate(context.Background(), credential); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("credential survived RevokeAll: %v", err)
		}
	}
}
