package auth

import "github.com/pkg/errors"

// Sentinels wrapped inside *transport.AuthenticationError so callers can test
// with errors.Is and still catch every auth failure with errors.As.
var (
	ErrLoginRequired           = errors.New("no user token available, login first")
	ErrNoRefreshToken          = errors.New("no refresh token available")
	ErrInvalidVerificationCode = errors.New("verification code incorrect")
	ErrNotAuthenticated        = errors.New("not authenticated")
)
