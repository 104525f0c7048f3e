package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// UserAdminService implements the admin console's user management.
type UserAdminService struct {
	users  ports.UserRepository
	tokens ports.TokenAuthenticator
	log    zerolog.Logger
}

func NewUserAdminService(users ports.UserRepository, tokens ports.TokenAuthenticator, log zerolog.Logger) *UserAdminService {
	return &UserAdminService{users: users, tokens: tokens, log: log}
}

func (s *UserAdminService) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.users.List(ctx, filter)
}

func (s *UserAdminService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserAdminService) Create(ctx context.Context, input ports.AdminUserInput) (*domain.User, error) {
	role, err := domain.NormalizeRole(input.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Role:         role,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *UserAdminService) Update(ctx context.Context, id string, input ports.AdminUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Role != "" {
		role, err := domain.NormalizeRole(input.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserAdminService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := s.tokens.RevokeAll(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("failed to revoke sessions of deleted user")
	}
	return nil
}

// ToggleStatus flips the account's active flag. Deactivation revokes
// every live session so a disabled account cannot keep using an old
// credential.
func (s *UserAdminService) ToggleStatus(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.users.SetActive(ctx, id, user.IsActive); err != nil {
		return nil, err
	}

	if !user.IsActive {
		if n, err := s.tokens.RevokeAll(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("failed to revoke sessions of deactivated user")
		} else if n > 0 {
			s.log.Info().Str("user_id", id).Int("sessions", n).Msg("revoked sessions on deactivation")
		}
	}
	return user, nil
}
