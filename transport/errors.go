package transport

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrClient is matched (errors.Is) by every typed error this package returns,
// so callers can catch client failures broadly and narrow with errors.As.
var ErrClient = errors.New("eero client error")

// AuthenticationError is returned for HTTP 401 responses and by the auth
// package for precondition failures. Err carries a more specific cause such as
// an invalid verification code.
type AuthenticationError struct {
	Message string // Server or caller supplied message
	Body    string // Raw response body, empty for local precondition failures
	URL     string // Request URL, empty for local precondition failures
	Err     error  // Optional cause
}

// NewAuthenticationError builds an AuthenticationError wrapping cause.
func NewAuthenticationError(message string, cause error) *AuthenticationError {
	return &AuthenticationError{Message: message, Err: cause}
}

func (e *AuthenticationError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("authentication failed: %s: %s", e.Err, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("authentication failed: %s", e.Err)
	case e.Message != "":
		return fmt.Sprintf("authentication failed: %s", e.Message)
	}
	return "authentication failed"
}

func (e *AuthenticationError) Unwrap() error        { return e.Err }
func (e *AuthenticationError) Is(target error) bool { return target == ErrClient }

// APIError is any non-200 response that is not a 401 or 429, and a 200
// response whose body is not JSON.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusNotFound {
		return fmt.Sprintf("API error %d: resource not found: %s. URL: %s", e.StatusCode, e.Body, e.URL)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool { return target == ErrClient }

// RateLimitError is returned for HTTP 429.
type RateLimitError struct {
	Body string
	URL  string
}

func (e *RateLimitError) Error() string        { return "rate limit exceeded" }
func (e *RateLimitError) Is(target error) bool { return target == ErrClient }

// TimeoutError is returned when the request deadline passes before a response arrives.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string        { return fmt.Sprintf("request to %s timed out", e.URL) }
func (e *TimeoutError) Unwrap() error        { return e.Err }
func (e *TimeoutError) Is(target error) bool { return target == ErrClient }

// NetworkError covers connection, DNS and TLS failures.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string        { return fmt.Sprintf("network error: %s", e.Err) }
func (e *NetworkError) Unwrap() error        { return e.Err }
func (e *NetworkError) Is(target error) bool { return target == ErrClient }

// IsNotFound reports whether err is an APIError for HTTP 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAPIError reports whether err is an APIError of any status.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsAuthentication reports whether err is an AuthenticationError.
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsRateLimited reports whether err is a RateLimitError.
func IsRateLimited(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
