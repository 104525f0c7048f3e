package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(u)
	created.ID = "u-" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(context.Context, ports.UserFilter) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *stubUserRepo) RecordLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r *stubUserRepo) CountActive(context.Context) (int64, error) { return 0, nil }

// recordingAudit captures events synchronously for assertions.
type recordingAudit struct {
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}

func newAuthFixture() (*AuthService, *stubUserRepo, *recordingAudit) {
	repo := newStubUserRepo()
	audit := &recordingAudit{}
	tokens := NewTokenAuthenticator(newMemSessionStore(), time.Hour, zerolog.Nop())
	return NewAuthService(repo, tokens, audit, zerolog.Nop()), repo, audit
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, audit := newAuthFixture()

	session, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    "  Alice@Example.COM ",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if session.User.Email != "alice@example.com" {
		t.Fatalf("email not normalised: %q", session.User.Email)
	}
	if session.User.Role != domain.RoleCustomer {
		t.Fatalf("expected default customer role, got %q", session.User.Role)
	}
	if session.User.PasswordHash == "s3cretpass" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(session.User.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if session.Token == "" || session.TokenType != domain.TokenType {
		t.Fatalf("registration did not open a session: %+v", session)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditRegister {
		t.Fatalf("expected a register audit event, got %+v", audit.events)
	}
}

func TestAuthService_Register_LegacyRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	session, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "s3cretpass",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if session.User.Role != domain.RoleCustomer {
		t.Fatalf("legacy role not folded into customer: %q", session.User.Role)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "s3cretpass",
		Role:     "root",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	session, err := svc.Login(context.Background(), "carol@example.com", "s3cretpass", "203.0.113.9")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.User.ID != reg.User.ID {
		t.Fatalf("login resolved a different user")
	}
	if session.ExpiresIn != 3600 {
		t.Fatalf("expected 3600 seconds lifetime, got %d", session.ExpiresIn)
	}

	stored, _ := repo.FindByID(context.Background(), reg.User.ID)
	if stored.LastLoginAt == nil {
		t.Fatalf("last login not recorded")
	}
}

// Wrong password and unknown email produce the same error so the login
// form cannot be used to enumerate accounts.
func TestAuthService_Login_Indistinguishable(t *testing.T) {
	svc, _, audit := newAuthFixture()

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Dan",
		Email:    "dan@example.com",
		Password: "s3cretpass",
	})

	_, wrongPass := svc.Login(context.Background(), "dan@example.com", "nope", "")
	_, unknown := svc.Login(context.Background(), "ghost@example.com", "nope", "")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}

	failed := 0
	for _, e := range audit.events {
		if e.Action == domain.AuditLoginFailed {
			failed++
		}
	}
	if failed != 2 {
		t.Fatalf("expected 2 failed-login audit events, got %d", failed)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := repo.SetActive(context.Background(), reg.User.ID, false); err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "eve@example.com", "s3cretpass", ""); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Frank",
		Email:    "frank@example.com",
		Password: "oldpassword",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	rec := &domain.SessionRecord{UserID: reg.User.ID, Email: reg.User.Email, Role: reg.User.Role}

	if err := svc.ChangePassword(context.Background(), rec, "wrong", "newpassword1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), rec, "oldpassword", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "frank@example.com", "newpassword1", ""); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "frank@example.com", "oldpassword", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestAuthService_Refresh_DisabledAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Grace",
		Email:    "grace@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := repo.SetActive(context.Background(), reg.User.ID, false); err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}

	rec := &domain.SessionRecord{UserID: reg.User.ID, Email: reg.User.Email, Role: reg.User.Role}
	if _, err := svc.Refresh(context.Background(), reg.Token, rec); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthService_UpdateProfile_Avatar(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	user, _ := repo.Create(context.Background(), &domain.User{
		Name:         "Heidi",
		Email:        "heidi@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		IsActive:     true,
	})

	rec := &domain.SessionRecord{UserID: user.ID, Email: user.Email, Role: user.Role}
	updated, err := svc.UpdateProfile(context.Background(), rec, ports.ProfileInput{
		Avatar: "/uploads/avatars/heidi.png",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Avatar != "/uploads/avatars/heidi.png" {
		t.Fatalf("avatar not applied: %q", updated.Avatar)
	}
	if updated.Name != "Heidi" {
		t.Fatalf("unrelated field changed: %q", updated.Name)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.Avatar != "/uploads/avatars/heidi.png" {
		t.Fatalf("avatar not persisted: %q", stored.Avatar)
	}
}
