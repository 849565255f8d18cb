package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

// AuthService validates credentials against the user store and issues tokens.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Login looks up the user by email and verifies the password against the
// stored bcrypt hash. An unknown email and a wrong password both surface as
// ErrBadCredentials; a correct password against a disabled or locked account
// surfaces as ErrAccountRestricted.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidLogin
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrBadCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrBadCredentials
	}

	if !domain.CanLogin(user) {
		return "", nil, domain.ErrAccountRestricted
	}

	token, err := s.tokens.IssueWithRole(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
