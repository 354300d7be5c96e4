package config

import "github.com/spf13/viper"

const (
	useKeyringKey      = "use_keyring"
	credentialsFileKey = "credentials_file"
)

type StorageConfig interface {
	UseKeyring() bool
	GetCredentialsFile() string
}

type Storage struct {
	v *viper.Viper
}

var _ StorageConfig = Storage{}

// UseKeyring reports whether the session goes to the OS keyring rather than a file.
func (s Storage) UseKeyring() bool {
	return s.v.GetBool(useKeyringKey)
}

// GetCredentialsFile returns the session file path, empty for the platform default.
func (s Storage) GetCredentialsFile() string {
	return s.v.GetString(credentialsFileKey)
}
