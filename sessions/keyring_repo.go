package sessions

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
)

const (
	KeyringService = "eero-client"
	KeyringAccount = "auth-tokens"
)

var _ Repo = (*KeyringRepo)(nil)

// KeyringRepo stores the session as one JSON secret in the OS keyring
// (macOS Keychain, Windows Credential Manager, Secret Service on Linux).
type KeyringRepo struct {
	service string
	account string
	logger  zerolog.Logger
}

// KeyringRepoOption defines a function type to modify the KeyringRepo instance.
type KeyringRepoOption func(*KeyringRepo)

// WithKeyringLogger sets the logger.
func WithKeyringLogger(logger zerolog.Logger) KeyringRepoOption {
	return func(r *KeyringRepo) {
		r.logger = logger
	}
}

// WithKeyringEntry overrides the service/account pair the secret is stored under.
func WithKeyringEntry(service, account string) KeyringRepoOption {
	return func(r *KeyringRepo) {
		r.service = service
		r.account = account
	}
}

// NewKeyringRepo creates a keyring backed repo.
func NewKeyringRepo(options ...KeyringRepoOption) *KeyringRepo {
	r := &KeyringRepo{
		service: KeyringService,
		account: KeyringAccount,
		logger:  log.Logger,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Load implements Repo.
func (r *KeyringRepo) Load(_ context.Context) (*Session, error) {
	secret, err := keyring.Get(r.service, r.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			r.logger.Debug().Msg("No session in keyring")
		} else {
			r.logger.Warn().Err(err).Msg("Keyring unavailable, treating session as absent")
		}
		return nil, nil
	}

	if secret == "" {
		return nil, nil
	}

	s, err := Decode([]byte(secret))
	if err != nil {
		r.logger.Warn().Err(err).Msg("Keyring session is malformed, ignoring")
		return nil, nil
	}
	return s, nil
}

// Save implements Repo.
func (r *KeyringRepo) Save(_ context.Context, s *Session) error {
	data, err := Encode(s)
	if err != nil {
		return errors.Wrap(err, "[KeyringRepo.Save] encode")
	}
	if err := keyring.Set(r.service, r.account, string(data)); err != nil {
		return errors.Wrap(err, "[KeyringRepo.Save] keyring.Set")
	}
	r.logger.Debug().Msg("Saved session to keyring")
	return nil
}

// Delete implements Repo.
func (r *KeyringRepo) Delete(_ context.Context) error {
	if err := keyring.Delete(r.service, r.account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errors.Wrap(err, "[KeyringRepo.Delete] keyring.Delete")
	}
	return nil
}
