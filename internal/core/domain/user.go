package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
)

// legacyRoleUser predates the customer/vendor split; stored documents
// and incoming payloads still carry it.
const legacyRoleUser = "user"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrAccountDisabled = errors.New("account disabled")
var ErrInvalidRole = errors.New("invalid role")

// Address is the optional postal address attached to a user profile.
type Address struct {
	Street     string `json:"street,omitempty" bson:"street,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
}

// User models an account in the user directory.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	Address      *Address   `json:"address,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// NormalizeRole maps an incoming role value to its canonical form.
// The empty string defaults to the lowest-privilege role and the
// legacy "user" value is folded into "customer".
func NormalizeRole(role string) (string, error) {
	switch role {
	case "", RoleCustomer, legacyRoleUser:
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleVendor:
		return RoleVendor, nil
	default:
		return "", ErrInvalidRole
	}
}
