package cli

import (
	"context"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/auth"
	"github.com/jrsteele09/eero-client/client"
	"github.com/jrsteele09/eero-client/transport"
	"github.com/pkg/errors"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errLoginAttempts ends an interactive login after too many wrong codes.
var errLoginAttempts = errors.New("too many invalid verification codes")

// exitCode reports err on stderr with a hint for the errors a user can act on.
func (a *App) exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		a.status.Fail("%s", usageErr.Message)
		if usageErr.Command != nil {
			a.status.Hint("Run '%s --help' for usage.", usageErr.Command.fullName())
		}
		return exitUsage
	}

	switch {
	case errors.Is(err, context.Canceled):
		a.status.Fail("Interrupted")
	case errors.Is(err, auth.ErrInvalidVerificationCode):
		a.status.Fail("Invalid verification code")
		a.status.Hint("Run '%s login <email-or-phone>' to get a new code.", appName)
	case errors.Is(err, errLoginAttempts):
		a.status.Fail("Login failed: %s", err)
	case transport.IsAuthentication(err):
		a.status.Fail("Authentication error: %s", err)
		a.status.Hint("Please login: run '%s login <email-or-phone>'.", appName)
	case transport.IsRateLimited(err):
		a.status.Fail("Rate limited by the eero API")
		a.status.Hint("Wait a minute and retry.")
	case transport.IsTimeout(err):
		a.status.Fail("Request timed out: %s", err)
	case transport.IsNetwork(err):
		a.status.Fail("Network error: %s", err)
		a.status.Hint("Check your internet connection.")
	case errors.Is(err, client.ErrNoNetworkID):
		a.status.Fail("No network available")
		a.status.Hint("Run '%s networks' to list networks, then '%s set-network <id>'.", appName, appName)
	case errors.Is(err, api.ErrMissingID):
		a.status.Fail("%s", err)
	case transport.IsNotFound(err):
		a.status.Fail("Not found: %s", err)
	default:
		a.status.Fail("%s", err)
	}
	return exitError
}
