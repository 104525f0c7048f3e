package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// suffixBytes is the entropy of the random credential suffix. 20 bytes
// keeps credentials unguessable even if a claims block is replayed.
const suffixBytes = 20

// TokenAuthenticator issues and validates the bearer credentials used
// on every protected route. Credentials are self-describing (claims are
// readable offline) but validity is decided solely by the session
// store, so revocation takes effect immediately.
type TokenAuthenticator struct {
	store    ports.SessionStore
	tokenTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewTokenAuthenticator(store ports.SessionStore, tokenTTL time.Duration, log zerolog.Logger) *TokenAuthenticator {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenAuthenticator{
		store:    store,
		tokenTTL: tokenTTL,
		log:      log,
		now:      time.Now,
	}
}

// Issue mints a credential for an already-verified identity and stores
// its session record under the full credential string, TTL'd to the
// token lifetime.
func (a *TokenAuthenticator) Issue(ctx context.Context, user *domain.User) (*ports.IssuedCredential, error) {
	now := a.now().UTC()
	rec := domain.SessionRecord{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(a.tokenTTL).Unix(),
	}

	suffix, err := randomSuffix()
	if err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}
	credential := domain.EncodeCredential(rec, suffix)

	if err := a.store.Put(ctx, credential, rec, a.tokenTTL); err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}

	return &ports.IssuedCredential{
		Token:     credential,
		TokenType: domain.TokenType,
		ExpiresIn: int64(a.tokenTTL / time.Second),
		Record:    rec,
	}, nil
}

// Validate resolves a raw bearer string. The store lookup comes first:
// even a well-formed credential is worthless once its record is gone.
// The expiry check is explicit because store TTL eviction timing cannot
// be trusted across clock skew.
func (a *TokenAuthenticator) Validate(ctx context.Context, credential string) (*domain.SessionRecord, error) {
	rec, err := a.store.Get(ctx, credential)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("validate credential: %w", err)
	}

	if rec.ExpiredAt(a.now()) {
		if err := a.store.Delete(ctx, credential); err != nil {
			a.log.Warn().Err(err).Msg("failed to evict expired session")
		}
		return nil, domain.ErrSessionExpired
	}

	return rec, nil
}

// Revoke deletes the credential's session record. Revoking an unknown
// or already-revoked credential is a no-op: concurrent logouts must not
// surface failures.
func (a *TokenAuthenticator) Revoke(ctx context.Context, credential string) error {
	if err := a.store.Delete(ctx, credential); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("revoke credential: %w", err)
	}
	return nil
}

// RevokeAll removes every live session of the user.
func (a *TokenAuthenticator) RevokeAll(ctx context.Context, userID string) (int, error) {
	n, err := a.store.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke all sessions: %w", err)
	}
	return n, nil
}

// Refresh issues a replacement credential, then revokes the old one.
// The order matters: a crash between the two steps leaves the user with
// two valid sessions rather than zero.
func (a *TokenAuthenticator) Refresh(ctx context.Context, oldCredential string, user *domain.User) (*ports.IssuedCredential, error) {
	issued, err := a.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := a.Revoke(ctx, oldCredential); err != nil {
		a.log.Warn().Err(err).Str("user_id", user.ID).Msg("refresh kept the previous session alive")
	}
	return issued, nil
}

func randomSuffix() (string, error) {
	b := make([]byte, suffixBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
