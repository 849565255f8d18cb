package ports

import (
	"context"

	"github.com/forohub/forum-api/internal/core/domain"
)

// AuthService authenticates credentials and mints tokens.
type AuthService interface {
	// Login verifies the password for the user identified by email and returns
	// a signed token on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenService builds and verifies signed, time-bounded login tokens.
type TokenService interface {
	// Issue mints a token whose subject is the given principal.
	Issue(subject string) (string, error)
	// IssueWithRole mints a token carrying the subject plus a role claim.
	IssueWithRole(subject, role string) (string, error)
	// SubjectOf parses and verifies the token, returning its subject.
	SubjectOf(token string) (string, error)
	// RoleOf parses and verifies the token, returning its role claim.
	RoleOf(token string) (string, error)
	// IsValid reports whether the token verifies, matches the expected subject
	// exactly, and has not expired.
	IsValid(token, expectedSubject string) bool
}
