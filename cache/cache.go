package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long an entry stays fresh unless the cache is built with another TTL.
const DefaultTTL = 60 * time.Second

// Store is a read-through cache of API results keyed by resource kind, network and id.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(keys ...string)
	DeletePrefix(prefix string)
	Clear()
	Cleanup() // Remove expired entries
	Len() int
}

type entry struct {
	value   any
	expires time.Time
}

// TTLCache is an in-memory Store whose entries expire a fixed time after they are written.
type TTLCache struct {
	entries map[string]entry
	ttl     time.Duration
	nowTime func() time.Time
	mu      sync.RWMutex
}

type Option func(*TTLCache)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *TTLCache) {
		c.nowTime = nowFunc
	}
}

// New creates a TTLCache. A ttl of zero or less uses DefaultTTL.
func New(ttl time.Duration, options ...Option) *TTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &TTLCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Key joins the parts of a cache key: Key("devices", networkID) or Key("device", networkID, deviceID).
func Key(kind string, parts ...string) string {
	return strings.Join(append([]string{kind}, parts...), ":")
}

// TTL returns how long entries stay fresh.
func (c *TTLCache) TTL() time.Duration {
	return c.ttl
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[key]
	if !exists || !c.nowTime().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

// Set stores value and sweeps expired entries.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.nowTime()
	c.cleanup(now)
	c.entries[key] = entry{value: value, expires: now.Add(c.ttl)}
}

func (c *TTLCache) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// DeletePrefix removes every key starting with prefix.
func (c *TTLCache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *TTLCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanup(c.nowTime())
}

// Len counts entries, expired or not.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TTLCache) cleanup(now time.Time) {
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
		}
	}
}
