package sessions

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appDirName      = "eero-client"
	sessionFileName = "cookies.json"
)

var _ Repo = (*FileRepo)(nil)

// FileRepo stores the session as a JSON file. Writes go to a temporary file in
// the same directory which is then renamed over the target, so a concurrent
// reader sees either the old or the new blob.
type FileRepo struct {
	path   string
	logger zerolog.Logger
}

// FileRepoOption defines a function type to modify the FileRepo instance.
type FileRepoOption func(*FileRepo)

// WithFileLogger sets the logger.
func WithFileLogger(logger zerolog.Logger) FileRepoOption {
	return func(r *FileRepo) {
		r.logger = logger
	}
}

// NewFileRepo creates a file backed repo at path. An empty path uses DefaultFilePath.
func NewFileRepo(path string, options ...FileRepoOption) (*FileRepo, error) {
	if path == "" {
		defaultPath, err := DefaultFilePath()
		if err != nil {
			return nil, errors.Wrap(err, "[NewFileRepo] default path")
		}
		path = defaultPath
	}

	r := &FileRepo{path: path, logger: log.Logger}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// DefaultFilePath returns %APPDATA%\eero-client\cookies.json on Windows and
// $XDG_CONFIG_HOME/eero-client/cookies.json (falling back to ~/.config) elsewhere.
func DefaultFilePath() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName, sessionFileName), nil
		}
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "[DefaultFilePath] home directory")
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appDirName, sessionFileName), nil
}

// Path returns the file the session is stored in.
func (r *FileRepo) Path() string {
	return r.path
}

// Load implements Repo.
func (r *FileRepo) Load(_ context.Context) (*Session, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug().Str("path", r.path).Msg("No session file found")
		} else {
			r.logger.Warn().Err(err).Str("path", r.path).Msg("Session file unreadable")
		}
		return nil, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		r.logger.Debug().Str("path", r.path).Msg("Session file is empty")
		return nil, nil
	}

	s, err := Decode(data)
	if err != nil {
		r.logger.Warn().Err(err).Str("path", r.path).Msg("Session file is malformed, ignoring")
		return nil, nil
	}
	return s, nil
}

// Save implements Repo.
func (r *FileRepo) Save(_ context.Context, s *Session) error {
	data, err := Encode(s)
	if err != nil {
		return errors.Wrap(err, "[FileRepo.Save] encode")
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] create directory")
	}

	tmp, err := os.CreateTemp(dir, "."+sessionFileName+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "[FileRepo.Save] create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileRepo.Save] write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileRepo.Save] sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] close temp file")
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] chmod temp file")
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] rename")
	}

	r.logger.Debug().Str("path", r.path).Msg("Saved session file")
	return nil
}

// Delete implements Repo.
func (r *FileRepo) Delete(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileRepo.Delete] remove")
	}
	return nil
}
