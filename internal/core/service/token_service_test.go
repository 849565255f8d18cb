package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forohub/forum-api/internal/core/domain"
)

// Not base64 (contains '-' and '!'), so the raw bytes are used: 40 of them.
const testSecret = "una-clave-muy-segura-de-mas-de-32-bytes!"

func TestNewTokenService_KeyTooShort(t *testing.T) {
	if _, err := NewTokenService("short", "HS256", time.Hour); !errors.Is(err, domain.ErrTokenKeyTooShort) {
		t.Fatalf("expected ErrTokenKeyTooShort, got %v", err)
	}
}

func TestNewTokenService_Base64Key(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(testSecret))
	svc, err := NewTokenService(encoded, "HS256", time.Hour)
	if err != nil {
		t.Fatalf("base64 key rejected: %v", err)
	}

	// A token minted with the base64 form must verify against the raw form.
	raw, err := NewTokenService(testSecret, "HS256", time.Hour)
	if err != nil {
		t.Fatalf("raw key rejected: %v", err)
	}
	token, err := svc.Issue("user@mail.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !raw.IsValid(token, "user@mail.com") {
		t.Fatalf("token signed with decoded key did not verify against raw key")
	}
}

func TestNewTokenService_RawKeyFallback(t *testing.T) {
	// Not valid base64; the raw bytes must be used, and 32 chars is enough.
	secret := strings.Repeat("á", 16) // 32 bytes of UTF-8
	if _, err := NewTokenService(secret, "HS256", time.Hour); err != nil {
		t.Fatalf("raw fallback rejected: %v", err)
	}
}

func TestNewTokenService_UnknownAlgorithm(t *testing.T) {
	if _, err := NewTokenService(testSecret, "RS256", time.Hour); err == nil {
		t.Fatalf("expected error for non-HMAC algorithm")
	}
	if _, err := NewTokenService(testSecret, "bogus", time.Hour); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}

func TestTokenService_IssueAndSubjectOf(t *testing.T) {
	svc, err := NewTokenService(testSecret, "HS256", time.Hour)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	token, err := svc.Issue("user@mail.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	sub, err := svc.SubjectOf(token)
	if err != nil {
		t.Fatalf("subjectOf: %v", err)
	}
	if sub != "user@mail.com" {
		t.Fatalf("expected subject user@mail.com, got %q", sub)
	}
}

func TestTokenService_SubjectOf_InvalidToken(t *testing.T) {
	svc, _ := NewTokenService(testSecret, "HS256", time.Hour)

	if _, err := svc.SubjectOf("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// Token signed with a different key must not verify.
	other, _ := NewTokenService("otra-clave-distinta-de-mas-de-32-bytes!!", "HS256", time.Hour)
	token, _ := other.Issue("user@mail.com")
	if _, err := svc.SubjectOf(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong signature, got %v", err)
	}
}

func TestTokenService_IsValid_SubjectMismatch(t *testing.T) {
	svc, _ := NewTokenService(testSecret, "HS256", time.Hour)
	token, _ := svc.Issue("user@mail.com")

	if !svc.IsValid(token, "user@mail.com") {
		t.Fatalf("expected token valid for its own subject")
	}
	if svc.IsValid(token, "admin@mail.com") {
		t.Fatalf("expected token invalid for a different subject")
	}
}

func TestTokenService_IsValid_Expired(t *testing.T) {
	// Negative TTL mints an already-expired token.
	svc := &TokenService{key: []byte(testSecret), method: jwt.SigningMethodHS256, ttl: -time.Minute}
	token, err := svc.Issue("user@mail.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if svc.IsValid(token, "user@mail.com") {
		t.Fatalf("expected expired token to be invalid")
	}
}

func TestTokenService_RoleClaim(t *testing.T) {
	svc, _ := NewTokenService(testSecret, "HS256", time.Hour)
	token, err := svc.IssueWithRole("admin@mail.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	role, err := svc.RoleOf(token)
	if err != nil {
		t.Fatalf("roleOf: %v", err)
	}
	if role != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %q", domain.RoleAdmin, role)
	}
}
