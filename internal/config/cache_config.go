package config

import (
	"time"

	"github.com/jrsteele09/eero-client/cache"
	"github.com/spf13/viper"
)

const (
	cacheTTLKey     = "cache_ttl"
	defaultCacheTTL = cache.DefaultTTL
)

type CacheConfig interface {
	GetCacheTTL() time.Duration
}

type Cache struct {
	v *viper.Viper
}

var _ CacheConfig = Cache{}

func (c Cache) GetCacheTTL() time.Duration {
	return durationOrSeconds(c.v, cacheTTLKey, defaultCacheTTL)
}
