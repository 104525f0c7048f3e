package domain

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// CredentialPrefix marks every credential issued by this service.
const CredentialPrefix = "Bearer_"

// TokenType is the scheme reported to clients in auth payloads.
const TokenType = "Bearer"

// credentialSuffixHexLen is the length of the random hex suffix
// (20 bytes of entropy).
const credentialSuffixHexLen = 40

var ErrUnauthenticated = errors.New("unauthenticated")
var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")
var ErrForbidden = errors.New("access forbidden")
var ErrMalformedCredential = errors.New("malformed credential")

// SessionRecord is the server-side state bound to one credential.
// The same shape is embedded in the credential's claims block, but the
// stored copy is authoritative: a credential whose record is gone is
// invalid no matter what its claims say.
type SessionRecord struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// ExpiredAt reports whether the record's lifetime has passed at now.
func (r SessionRecord) ExpiredAt(now time.Time) bool {
	return !now.Before(time.Unix(r.ExpiresAt, 0))
}

// TTLAt returns the remaining validity at now, never negative.
func (r SessionRecord) TTLAt(now time.Time) time.Duration {
	ttl := time.Unix(r.ExpiresAt, 0).Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Authorized reports whether the record's role is one of required.
// Membership is strict: there is no role hierarchy, admin does not
// imply customer.
func (r SessionRecord) Authorized(required ...string) bool {
	for _, role := range required {
		if r.Role == role {
			return true
		}
	}
	return false
}

// EncodeCredential builds the wire credential:
//
//	"Bearer_" + base64url(JSON claims) + "_" + hex random suffix
//
// The base64url alphabet never contains '_', so the two separators are
// unambiguous.
func EncodeCredential(rec SessionRecord, suffix string) string {
	claims, _ := json.Marshal(rec)
	return CredentialPrefix + base64.RawURLEncoding.EncodeToString(claims) + "_" + suffix
}

// DecodeCredential extracts the claims block from a credential without
// consulting the session store. Callers must not treat a decoded record
// as valid; only the store lookup decides validity.
func DecodeCredential(credential string) (*SessionRecord, error) {
	rest, ok := strings.CutPrefix(credential, CredentialPrefix)
	if !ok {
		return nil, ErrMalformedCredential
	}
	claims64, suffix, ok := strings.Cut(rest, "_")
	if !ok || len(suffix) < credentialSuffixHexLen {
		return nil, ErrMalformedCredential
	}
	raw, err := base64.RawURLEncoding.DecodeString(claims64)
	if err != nil {
		return nil, ErrMalformedCredential
	}
	var rec SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, ErrMalformedCredential
	}
	return &rec, nil
}
