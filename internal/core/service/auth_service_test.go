package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forohub/forum-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
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

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password, role string, enabled, locked bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = repo.Create(context.Background(), &domain.User{
		Email:        email,
		Username:     "seeded",
		PasswordHash: string(hash),
		Role:         role,
		Enabled:      enabled,
		Locked:       locked,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func newAuthService(t *testing.T, repo *stubUserRepo) *AuthService {
	t.Helper()
	tokens, err := NewTokenService(testSecret, "HS256", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAuthService(repo, tokens)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin@mail.com", "admin123", domain.RoleAdmin, true, false)
	svc := newAuthService(t, repo)

	token, user, err := svc.Login(context.Background(), "admin@mail.com", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "admin@mail.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// The token subject must be the email, per the stateless contract.
	tokens, _ := NewTokenService(testSecret, "HS256", time.Hour)
	sub, err := tokens.SubjectOf(token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if sub != "admin@mail.com" {
		t.Fatalf("expected subject admin@mail.com, got %q", sub)
	}
	role, _ := tokens.RoleOf(token)
	if role != domain.RoleAdmin {
		t.Fatalf("expected role claim %s, got %q", domain.RoleAdmin, role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "user@mail.com", "user123", domain.RoleUser, true, false)
	svc := newAuthService(t, repo)

	if _, _, err := svc.Login(context.Background(), "user@mail.com", "wrong"); err != domain.ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(t, repo)

	// Unknown identity maps to the same error as a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@mail.com", "pass"); err != domain.ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestAuthService_Login_RestrictedAccount(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "disabled@mail.com", "pass1234", domain.RoleUser, false, false)
	seedUser(t, repo, "locked@mail.com", "pass1234", domain.RoleUser, true, true)
	svc := newAuthService(t, repo)

	if _, _, err := svc.Login(context.Background(), "disabled@mail.com", "pass1234"); err != domain.ErrAccountRestricted {
		t.Fatalf("expected ErrAccountRestricted for disabled account, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "locked@mail.com", "pass1234"); err != domain.ErrAccountRestricted {
		t.Fatalf("expected ErrAccountRestricted for locked account, got %v", err)
	}
}

func TestAuthService_Login_BlankInput(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(t, repo)

	if _, _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidLogin {
		t.Fatalf("expected ErrInvalidLogin for blank email, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "user@mail.com", ""); err != domain.ErrInvalidLogin {
		t.Fatalf("expected ErrInvalidLogin for blank password, got %v", err)
	}
}
