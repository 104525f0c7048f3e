package ports

import (
	"context"
	"time"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
)

// SessionStore is the TTL'd key-value store holding session records,
// keyed by the full credential string.
type SessionStore interface {
	// Put stores the record under credential with the given TTL and
	// indexes it by the record's user so every session of a user can be
	// revoked at once.
	Put(ctx context.Context, credential string, rec domain.SessionRecord, ttl time.Duration) error
	// Get retrieves the record for credential. A miss returns
	// domain.ErrSessionNotFound.
	Get(ctx context.Context, credential string) (*domain.SessionRecord, error)
	// Delete removes the record for credential. Deleting an absent
	// credential is a no-op.
	Delete(ctx context.Context, credential string) error
	// DeleteAll removes every session of the given user and returns
	// how many were live.
	DeleteAll(ctx context.Context, userID string) (int, error)
}

// IssuedCredential is returned by the authenticator on every issuance
// path and rendered verbatim into auth payloads.
type IssuedCredential struct {
	Token     string
	TokenType string
	ExpiresIn int64
	Record    domain.SessionRecord
}

// TokenAuthenticator issues, validates and revokes bearer credentials.
type TokenAuthenticator interface {
	Issue(ctx context.Context, user *domain.User) (*IssuedCredential, error)
	// Validate resolves a raw bearer string to its session record.
	// Unknown or revoked credentials fail with domain.ErrUnauthenticated,
	// expired ones with domain.ErrSessionExpired (and the record is
	// evicted).
	Validate(ctx context.Context, credential string) (*domain.SessionRecord, error)
	Revoke(ctx context.Context, credential string) error
	RevokeAll(ctx context.Context, userID string) (int, error)
	// Refresh issues a replacement credential before revoking the old
	// one, so a partial failure leaves the user logged in.
	Refresh(ctx context.Context, oldCredential string, user *domain.User) (*IssuedCredential, error)
}

// UserFilter carries query parameters for the admin user listing.
type UserFilter struct {
	Search   string // partial match on name or email
	Role     string
	IsActive *bool
	Page     int // 1-based
	Limit    int
}

// UserRepository is the directory of accounts (lookup by email is the
// login path's single read).
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
	CountActive(ctx context.Context) (int64, error)
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
	RemoteIP string
}

// ProfileInput carries a profile update. Avatar is the URL or path of
// an already uploaded image.
type ProfileInput struct {
	Name    string
	Phone   string
	Avatar  string
	Address *domain.Address
}

// AuthSession is the payload produced by every login/registration/refresh.
type AuthSession struct {
	User      *domain.User
	Token     string
	TokenType string
	ExpiresIn int64
}

// AuthService defines the authentication use-cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthSession, error)
	Login(ctx context.Context, email, password, remoteIP string) (*AuthSession, error)
	Logout(ctx context.Context, credential string, rec *domain.SessionRecord) error
	LogoutAll(ctx context.Context, rec *domain.SessionRecord) (int, error)
	Refresh(ctx context.Context, credential string, rec *domain.SessionRecord) (*AuthSession, error)
	Me(ctx context.Context, rec *domain.SessionRecord) (*domain.User, error)
	ChangePassword(ctx context.Context, rec *domain.SessionRecord, current, updated string) error
	UpdateProfile(ctx context.Context, rec *domain.SessionRecord, input ProfileInput) (*domain.User, error)
}

// AdminUserInput carries the admin user create/update payload.
type AdminUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
	IsActive *bool
}

// UserAdminService defines the admin console's user management use-cases.
type UserAdminService interface {
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input AdminUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input AdminUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// ToggleStatus flips is_active; deactivation revokes all of the
	// user's live sessions.
	ToggleStatus(ctx context.Context, id string) (*domain.User, error)
}
