package cache_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/eero-client/cache"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func setupTestFixture(t *testing.T) (*cache.TTLCache, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)}
	return cache.New(time.Minute, cache.WithNowTime(c.Now)), c
}

// TestTTLCache_Expiry tests that entries expire after the TTL
func TestTTLCache_Expiry(t *testing.T) {
	store, clock := setupTestFixture(t)

	store.Set("devices:N1", []string{"a"})
	v, ok := store.Get("devices:N1")
	require.True(t, ok)
	require.Equal(t, []string{"a"}, v)

	clock.now = clock.now.Add(59 * time.Second)
	_, ok = store.Get("devices:N1")
	require.True(t, ok)

	clock.now = clock.now.Add(time.Second)
	_, ok = store.Get("devices:N1")
	require.False(t, ok)
	require.Equal(t, 1, store.Len())

	store.Cleanup()
	require.Zero(t, store.Len())
}

// TestTTLCache_SetSweepsExpired tests that writes remove stale entries
func TestTTLCache_SetSweepsExpired(t *testing.T) {
	store, clock := setupTestFixture(t)

	store.Set("a", 1)
	clock.now = clock.now.Add(2 * time.Minute)
	store.Set("b", 2)

	require.Equal(t, 1, store.Len())
	_, ok := store.Get("a")
	require.False(t, ok)
}

// TestTTLCache_Invalidation tests delete, prefix delete and clear
func TestTTLCache_Invalidation(t *testing.T) {
	store, _ := setupTestFixture(t)

	store.Set(cache.Key("device", "N1", "D1"), 1)
	store.Set(cache.Key("device", "N1", "D2"), 2)
	store.Set(cache.Key("devices", "N1"), 3)
	store.Set(cache.Key("eeros", "N1"), 4)
	require.Equal(t, "device:N1:D1", cache.Key("device", "N1", "D1"))

	store.Delete(cache.Key("devices", "N1"), "missing")
	require.Equal(t, 3, store.Len())

	store.DeletePrefix(cache.Key("device", "N1") + ":")
	require.Equal(t, 1, store.Len())

	store.Clear()
	require.Zero(t, store.Len())
}

// TestNew_DefaultTTL tests the default TTL
func TestNew_DefaultTTL(t *testing.T) {
	require.Equal(t, cache.DefaultTTL, cache.New(0).TTL())
	require.Equal(t, 5*time.Second, cache.New(5*time.Second).TTL())
}
