package domain

import "errors"

// ErrInvalidToken marks a token whose structure or signature does not verify.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenKeyTooShort is returned at construction time when the configured
// signing key is shorter than 256 bits; misconfiguration fails at startup,
// not per call.
var ErrTokenKeyTooShort = errors.New("jwt secret too short: at least 32 bytes (256 bits) required")
