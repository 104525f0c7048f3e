package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// AuthService implements registration, login and session lifecycle on
// top of the user directory and the token authenticator.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenAuthenticator
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenAuthenticator, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, audit: audit, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthSession, error) {
	role, err := domain.NormalizeRole(input.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	issued, err := s.tokens.Issue(ctx, created)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditRegister, created.Email, input.RemoteIP)
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return authSession(created, issued), nil
}

// Login verifies the password against the directory entry. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password, remoteIP string) (*ports.AuthSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.AuditLoginFailed, email, remoteIP)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(domain.AuditLoginFailed, email, remoteIP)
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	issued, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.users.RecordLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	s.record(domain.AuditLogin, email, remoteIP)
	return authSession(user, issued), nil
}

// Logout revokes the presented credential. Always succeeds for unknown
// credentials so repeated logouts stay quiet.
func (s *AuthService) Logout(ctx context.Context, credential string, rec *domain.SessionRecord) error {
	if err := s.tokens.Revoke(ctx, credential); err != nil {
		return err
	}
	s.record(domain.AuditLogout, rec.Email, "")
	return nil
}

// LogoutAll revokes every session of the calling user and returns how
// many were live.
func (s *AuthService) LogoutAll(ctx context.Context, rec *domain.SessionRecord) (int, error) {
	n, err := s.tokens.RevokeAll(ctx, rec.UserID)
	if err != nil {
		return 0, err
	}
	s.record(domain.AuditLogout, rec.Email, "")
	return n, nil
}

// Refresh rotates the credential: the new session is durable before the
// old credential is revoked.
func (s *AuthService) Refresh(ctx context.Context, credential string, rec *domain.SessionRecord) (*ports.AuthSession, error) {
	user, err := s.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	issued, err := s.tokens.Refresh(ctx, credential, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditRefresh, user.Email, "")
	return authSession(user, issued), nil
}

func (s *AuthService) Me(ctx context.Context, rec *domain.SessionRecord) (*domain.User, error) {
	return s.users.FindByID(ctx, rec.UserID)
}

func (s *AuthService) ChangePassword(ctx context.Context, rec *domain.SessionRecord, current, updated string) error {
	user, err := s.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

func (s *AuthService) UpdateProfile(ctx context.Context, rec *domain.SessionRecord, input ports.ProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) record(action domain.AuditAction, actor, remoteIP string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		RemoteIP:  remoteIP,
		Timestamp: time.Now().UTC(),
	})
}

func authSession(user *domain.User, issued *ports.IssuedCredential) *ports.AuthSession {
	return &ports.AuthSession{
		User:      user,
		Token:     issued.Token,
		TokenType: issued.TokenType,
		ExpiresIn: issued.ExpiresIn,
	}
}
