package cli

import (
	"context"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/eero-client/auth"
	"github.com/jrsteele09/eero-client/sessions"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const maxCodeAttempts = 3

func (a *App) loginCommand() *Command {
	var force bool
	var code string
	return &Command{
		Name:    "login",
		Summary: "Log in with an email address or phone number",
		Usage:   "<email-or-phone> [--force] [--code <code>]",
		MinArgs: 1,
		Flags: a.flagSet("login", func(fs *pflag.FlagSet) {
			fs.BoolVar(&force, "force", false, "start a new login even when a session is active")
			fs.StringVar(&code, "code", "", "verification code, skips the prompt")
		}),
		Run: func(ctx context.Context, args []string) error {
			return a.login(ctx, args[0], force, code)
		},
	}
}

func (a *App) login(ctx context.Context, identifier string, force bool, code string) error {
	c, err := a.connect(ctx)
	if err != nil {
		return err
	}

	if c.IsAuthenticated() && !force {
		reuse := true
		if a.prompt.Interactive() {
			if reuse, err = a.prompt.Confirm("Already logged in. Keep the current session?", true); err != nil {
				return err
			}
		}
		if reuse {
			a.status.Success("Already logged in (session valid until %s)", c.Session().SessionExpiry.Local().Format(time.RFC1123))
			return nil
		}
	}

	if a.prompt.Interactive() {
		a.banner()
	}

	ok, err := c.Login(ctx, identifier)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("login was not accepted, no verification code was sent")
	}
	a.status.Info("Verification code sent to %s", auth.NormalizeIdentifier(identifier))

	if code != "" {
		return a.verify(ctx, code)
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		entered, err := a.prompt.Ask("Verification code: ")
		if err != nil {
			return err
		}

		err = a.verify(ctx, entered)
		if err == nil {
			return nil
		}
		if !errors.Is(err, auth.ErrInvalidVerificationCode) {
			return err
		}

		a.status.Warn("Invalid verification code (attempt %d of %d)", attempt, maxCodeAttempts)
		if attempt == maxCodeAttempts {
			break
		}
		resend, err := a.prompt.Confirm("Send a new code?", false)
		if err != nil {
			return err
		}
		if resend {
			if err := a.resend(ctx); err != nil {
				return err
			}
		}
	}
	return errLoginAttempts
}

func (a *App) verify(ctx context.Context, code string) error {
	ok, err := a.client.Verify(ctx, code)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("verification was not accepted")
	}
	a.status.Success("Logged in")
	if networkID := a.client.PreferredNetworkID(); networkID != "" {
		a.status.Info("Preferred network: %s", networkID)
	}
	return nil
}

func (a *App) resendCommand() *Command {
	return &Command{
		Name:    "resend-code",
		Summary: "Send the verification code of a pending login again",
		Flags:   a.flagSet("resend-code", nil),
		Run: func(ctx context.Context, _ []string) error {
			if _, err := a.connect(ctx); err != nil {
				return err
			}
			return a.resend(ctx)
		},
	}
}

func (a *App) resend(ctx context.Context) error {
	ok, err := a.client.ResendVerificationCode(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.status.Warn("The verification code could not be resent")
		return nil
	}
	a.status.Success("Verification code resent")
	return nil
}

func (a *App) logoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "End the session on the server and locally",
		Flags:   a.flagSet("logout", nil),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			if !c.IsAuthenticated() {
				a.status.Info("Not logged in")
				return nil
			}
			ok, err := c.Logout(ctx)
			if err != nil {
				return err
			}
			if !ok {
				a.status.Warn("The server rejected the logout, the local session was kept")
				a.status.Hint("Run '%s clear-auth' to remove it anyway.", appName)
				return nil
			}
			a.status.Success("Logged out")
			return nil
		},
	}
}

func (a *App) clearAuthCommand() *Command {
	var purge bool
	return &Command{
		Name:    "clear-auth",
		Summary: "Remove the stored session without contacting the server",
		Flags: a.flagSet("clear-auth", func(fs *pflag.FlagSet) {
			fs.BoolVar(&purge, "purge", false, "also delete the credential store entry")
		}),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			if err := c.ClearAuthData(ctx); err != nil {
				return err
			}
			if purge && a.repo != nil {
				if err := a.repo.Delete(ctx); err != nil {
					return err
				}
			}
			a.status.Success("Authentication data cleared")
			return nil
		},
	}
}

type sessionStatus struct {
	State              string    `json:"state" yaml:"state"`
	Authenticated      bool      `json:"authenticated" yaml:"authenticated"`
	SessionExpiry      time.Time `json:"session_expiry,omitzero" yaml:"session_expiry,omitempty"`
	PreferredNetworkID string    `json:"preferred_network_id,omitempty" yaml:"preferred_network_id,omitempty"`
	HasRefreshToken    bool      `json:"has_refresh_token" yaml:"has_refresh_token"`
}

func newSessionStatus(state auth.State, s sessions.Session, authenticated bool) sessionStatus {
	return sessionStatus{
		State:              state.String(),
		Authenticated:      authenticated,
		SessionExpiry:      s.SessionExpiry,
		PreferredNetworkID: s.PreferredNetworkID,
		HasRefreshToken:    s.RefreshToken != "",
	}
}

func (a *App) statusCommand() *Command {
	return &Command{
		Name:    "status",
		Summary: "Show the login state",
		Flags:   a.flagSet("status", nil),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			st := newSessionStatus(c.State(), c.Session(), c.IsAuthenticated())
			return a.print(st, func() table {
				t := table{header: []string{"State", "Expires", "Preferred network", "Refresh token"}}
				expiry := ""
				if !st.SessionExpiry.IsZero() {
					expiry = st.SessionExpiry.Local().Format(time.RFC1123)
				}
				t.add(st.State, expiry, st.PreferredNetworkID, yesNo(st.HasRefreshToken))
				return t
			})
		},
	}
}

func (a *App) banner() {
	name := appName
	if a.cfg != nil {
		name = a.cfg.GetAppName()
	}
	figure.Write(a.errOut, figure.NewFigure(name, "cybermedium", true))
}
