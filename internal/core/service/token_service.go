package service

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forohub/forum-api/internal/core/domain"
)

const minKeyBytes = 32 // 256 bits

// TokenService mints and verifies HMAC-signed JWTs. Stateless: a token is
// valid iff its signature verifies and its expiry has not passed.
type TokenService struct {
	key    []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenService builds a TokenService from key material, an algorithm name
// (HS256, HS384 or HS512) and a token lifetime. The key is accepted either as
// base64 or raw text; when base64 decoding fails or yields nothing, the raw
// UTF-8 bytes are used. Fails when the effective key is shorter than 256 bits
// or the algorithm is unknown.
func NewTokenService(secretOrBase64, alg string, ttl time.Duration) (*TokenService, error) {
	key := keyBytes(secretOrBase64)
	if len(key) < minKeyBytes {
		return nil, domain.ErrTokenKeyTooShort
	}

	method := jwt.GetSigningMethod(alg)
	if alg == "" {
		method = jwt.SigningMethodHS256
	}
	switch method {
	case jwt.SigningMethodHS256, jwt.SigningMethodHS384, jwt.SigningMethodHS512:
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm %q", alg)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{key: key, method: method, ttl: ttl}, nil
}

// Issue mints a token for the given subject with the default TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	return s.IssueWithRole(subject, "")
}

// IssueWithRole mints a token carrying the subject and, when non-empty, a role
// claim alongside it.
func (s *TokenService) IssueWithRole(subject, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.key)
}

// SubjectOf parses and verifies the token, returning its subject claim.
func (s *TokenService) SubjectOf(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}

// RoleOf parses and verifies the token, returning its role claim.
func (s *TokenService) RoleOf(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	return role, nil
}

// IsValid reports whether the token verifies, its subject matches exactly, and
// the current time is before its expiry.
func (s *TokenService) IsValid(token, expectedSubject string) bool {
	sub, err := s.SubjectOf(token)
	return err == nil && sub == expectedSubject
}

func (s *TokenService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// keyBytes decodes base64 key material, falling back to the raw UTF-8 bytes
// when the input is not base64 or decodes to nothing.
func keyBytes(secretOrBase64 string) []byte {
	decoded, err := base64.StdEncoding.DecodeString(secretOrBase64)
	if err != nil || len(decoded) == 0 {
		return []byte(secretOrBase64)
	}
	return decoded
}
