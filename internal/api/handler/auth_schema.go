package handler

import (
	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,min=7"`
	Role     string `json:"role" validate:"omitempty,oneof=admin customer vendor user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type updateProfileRequest struct {
	Name    string          `json:"name" validate:"omitempty,min=2"`
	Phone   string          `json:"phone" validate:"omitempty,min=7"`
	Address *domain.Address `json:"address"`
}

// avatarRequest points at an already uploaded image; the API stores the
// reference, not the bytes.
type avatarRequest struct {
	Avatar string `json:"avatar" validate:"required,max=2048"`
}

// authResponse is the payload of every issuance path. ExpiresIn is
// seconds until expiry, 86400 for the default day-long session.
type authResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type logoutAllResponse struct {
	Message         string `json:"message"`
	SessionsRevoked int    `json:"sessions_revoked"`
}

func toAuthResponse(session *ports.AuthSession) authResponse {
	return authResponse{
		User:      session.User,
		Token:     session.Token,
		TokenType: session.TokenType,
		ExpiresIn: session.ExpiresIn,
	}
}
