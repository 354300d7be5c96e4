// Package config resolves settings from flags, EERO_* environment variables,
// an optional YAML config file and defaults, in that order.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "EERO"

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	CacheConfig
}

type EnvConfig interface {
	GetAppName() string
	IsDebug() bool
	GetOutput() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Cache
}

type settings struct {
	configFile string
	envFile    string
	flags      *pflag.FlagSet
}

// Option defines a function type to modify how the Config is loaded.
type Option func(*settings)

// WithConfigFile reads a YAML config file. A missing file is an error, an empty path is ignored.
func WithConfigFile(path string) Option {
	return func(s *settings) {
		s.configFile = path
	}
}

// WithEnvFile loads variables from path instead of ./.env.
func WithEnvFile(path string) Option {
	return func(s *settings) {
		s.envFile = path
	}
}

// WithFlags binds the CLI's global flags. Only flags the user set override other sources.
func WithFlags(flags *pflag.FlagSet) Option {
	return func(s *settings) {
		s.flags = flags
	}
}

// New loads the configuration.
func New(options ...Option) (Config, error) {
	s := &settings{envFile: ".env"}
	for _, opt := range options {
		opt(s)
	}

	if err := loadEnvFile(s.envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if s.configFile != "" {
		v.SetConfigFile(s.configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "[config.New] read %s", s.configFile)
		}
	}

	if s.flags != nil {
		if err := bindFlags(v, s.flags); err != nil {
			return nil, err
		}
	}

	return mainConfig{
		EnvVars: EnvVars{v: v},
		API:     API{v: v},
		Storage: Storage{v: v},
		Cache:   Cache{v: v},
	}, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "[config.loadEnvFile] %s", path)
	}
	return nil
}

// flagKeys maps global flag names onto config keys.
var flagKeys = map[string]string{
	"debug":  debugKey,
	"output": outputKey,
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if flag := flags.Lookup(name); flag != nil && flag.Changed {
			if err := v.BindPFlag(key, flag); err != nil {
				return errors.Wrapf(err, "[config.bindFlags] %s", name)
			}
		}
	}
	if flag := flags.Lookup("no-keyring"); flag != nil && flag.Changed {
		noKeyring, err := flags.GetBool("no-keyring")
		if err != nil {
			return errors.Wrap(err, "[config.bindFlags] no-keyring")
		}
		v.Set(useKeyringKey, !noKeyring)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(appNameKey, defaultAppName)
	v.SetDefault(debugKey, false)
	v.SetDefault(outputKey, defaultOutput)
	v.SetDefault(baseURLKey, defaultBaseURL)
	v.SetDefault(requestTimeoutKey, defaultRequestTimeout)
	v.SetDefault(useKeyringKey, true)
	v.SetDefault(credentialsFileKey, "")
	v.SetDefault(cacheTTLKey, defaultCacheTTL)
}
