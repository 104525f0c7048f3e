package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/api/middleware"
	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.AuthSession, error)
	loginFn    func(ctx context.Context, email, password, remoteIP string) (*ports.AuthSession, error)
	logoutFn   func(ctx context.Context, credential string, rec *domain.SessionRecord) error
	refreshFn  func(ctx context.Context, credential string, rec *domain.SessionRecord) (*ports.AuthSession, error)
	meFn       func(ctx context.Context, rec *domain.SessionRecord) (*domain.User, error)
	profileFn  func(ctx context.Context, rec *domain.SessionRecord, input ports.ProfileInput) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthSession, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password, remoteIP string) (*ports.AuthSession, error) {
	return s.loginFn(ctx, email, password, remoteIP)
}

func (s *stubAuthService) Logout(ctx context.Context, credential string, rec *domain.SessionRecord) error {
	return s.logoutFn(ctx, credential, rec)
}

func (s *stubAuthService) LogoutAll(context.Context, *domain.SessionRecord) (int, error) {
	return 0, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, credential string, rec *domain.SessionRecord) (*ports.AuthSession, error) {
	return s.refreshFn(ctx, credential, rec)
}

func (s *stubAuthService) Me(ctx context.Context, rec *domain.SessionRecord) (*domain.User, error) {
	return s.meFn(ctx, rec)
}

func (s *stubAuthService) ChangePassword(context.Context, *domain.SessionRecord, string, string) error {
	return nil
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, rec *domain.SessionRecord, input ports.ProfileInput) (*domain.User, error) {
	return s.profileFn(ctx, rec, input)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password, _ string) (*ports.AuthSession, error) {
			if email != "alice@example.com" || password != "s3cretpass" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.AuthSession{
				User:      &domain.User{ID: "u-1", Email: email, Role: domain.RoleCustomer},
				Token:     "Bearer_claims_suffix",
				TokenType: domain.TokenType,
				ExpiresIn: 86400,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"s3cretpass"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "Bearer_claims_suffix" {
		t.Fatalf("token missing from payload: %+v", resp)
	}
	if resp["token_type"] != "Bearer" {
		t.Fatalf("unexpected token_type: %v", resp["token_type"])
	}
	if resp["expires_in"] != float64(86400) {
		t.Fatalf("unexpected expires_in: %v", resp["expires_in"])
	}
	if _, ok := resp["user"].(map[string]any); !ok {
		t.Fatalf("expected user in payload: %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.AuthSession, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.AuthSession, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"not-an-email"}`)
	err := handler.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.AuthSession, error) {
			if input.Name != "Alice" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.AuthSession{
				User:      &domain.User{ID: "u-1", Name: input.Name, Email: input.Email, Role: domain.RoleCustomer},
				Token:     "Bearer_claims_suffix",
				TokenType: domain.TokenType,
				ExpiresIn: 86400,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"s3cretpass"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"short"}`)
	err := handler.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	revoked := ""
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, credential string, _ *domain.SessionRecord) error {
			revoked = credential
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set(middleware.SessionKey, &domain.SessionRecord{UserID: "u-1", Email: "alice@example.com"})
	c.Set(middleware.CredentialKey, "Bearer_claims_suffix")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revoked != "Bearer_claims_suffix" {
		t.Fatalf("logout revoked %q", revoked)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/logout", "")
	err := handler.Logout(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, credential string, rec *domain.SessionRecord) (*ports.AuthSession, error) {
			if credential != "Bearer_old_suffix" {
				t.Fatalf("unexpected credential %q", credential)
			}
			return &ports.AuthSession{
				User:      &domain.User{ID: rec.UserID, Email: rec.Email},
				Token:     "Bearer_new_suffix",
				TokenType: domain.TokenType,
				ExpiresIn: 86400,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh", "")
	c.Set(middleware.SessionKey, &domain.SessionRecord{UserID: "u-1", Email: "alice@example.com"})
	c.Set(middleware.CredentialKey, "Bearer_old_suffix")

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "Bearer_new_suffix" {
		t.Fatalf("refresh did not return the new credential: %+v", resp)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(_ context.Context, rec *domain.SessionRecord) (*domain.User, error) {
			return &domain.User{ID: rec.UserID, Email: rec.Email, Role: rec.Role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set(middleware.SessionKey, &domain.SessionRecord{UserID: "u-1", Email: "alice@example.com", Role: domain.RoleCustomer})

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")
	err := handler.Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_UploadAvatar(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(_ context.Context, rec *domain.SessionRecord, input ports.ProfileInput) (*domain.User, error) {
			if input.Avatar != "/uploads/avatars/u-1.png" {
				t.Fatalf("unexpected avatar %q", input.Avatar)
			}
			return &domain.User{ID: rec.UserID, Email: rec.Email, Avatar: input.Avatar}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/profile/avatar",
		`{"avatar":"/uploads/avatars/u-1.png"}`)
	c.Set(middleware.SessionKey, &domain.SessionRecord{UserID: "u-1", Email: "alice@example.com"})

	if err := handler.UploadAvatar(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["avatar"] != "/uploads/avatars/u-1.png" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_UploadAvatar_MissingValue(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/profile/avatar", `{}`)
	c.Set(middleware.SessionKey, &domain.SessionRecord{UserID: "u-1"})

	err := handler.UploadAvatar(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}
