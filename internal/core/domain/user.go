package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	// ErrBadCredentials covers both an unknown email and a wrong password so
	// responses do not reveal which part failed.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrAccountRestricted is returned when the password is correct but the
	// account is disabled or locked.
	ErrAccountRestricted = errors.New("account restricted")
	ErrInvalidLogin      = errors.New("invalid login request")
	// ErrInsufficientRole is returned when an authenticated caller's role does
	// not grant access to the requested operation.
	ErrInsufficientRole = errors.New("insufficient role")
)

// User models a forum account. Email is the login identity and the token
// subject; Username is display-only.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Enabled      bool      `json:"enabled"`
	Locked       bool      `json:"locked"`
	CreatedAt    time.Time `json:"created_at"`
}

// Authorities returns the granted authority set for the user's role.
func Authorities(u *User) []string {
	role := u.Role
	if role == "" {
		role = RoleUser
	}
	return []string{"ROLE_" + role}
}

// CanLogin reports whether the account is in a state that permits
// authentication, independent of the password check.
func CanLogin(u *User) bool {
	return u.Enabled && !u.Locked
}
