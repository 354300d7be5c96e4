package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/eero-client/transport"
	"github.com/spf13/viper"
)

const (
	baseURLKey        = "base_url"
	requestTimeoutKey = "request_timeout"

	defaultBaseURL        = transport.DefaultBaseURL
	defaultRequestTimeout = transport.DefaultTimeout
)

type APIConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
}

type API struct {
	v *viper.Viper
}

var _ APIConfig = API{}

func (a API) GetBaseURL() string {
	return a.v.GetString(baseURLKey)
}

// GetRequestTimeout accepts durations ("45s") or whole seconds ("45").
func (a API) GetRequestTimeout() time.Duration {
	return durationOrSeconds(a.v, requestTimeoutKey, defaultRequestTimeout)
}

func durationOrSeconds(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if seconds, err := strconv.Atoi(strings.TrimSpace(v.GetString(key))); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
