// Package client is the high level entry point: it resolves which network a
// call is about, decodes responses into models and caches reads.
package client

import (
	"context"
	"encoding/json"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/auth"
	"github.com/jrsteele09/eero-client/cache"
	"github.com/jrsteele09/eero-client/models"
	"github.com/jrsteele09/eero-client/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoNetworkID is returned when no network was named, none is preferred and the account has none.
	ErrNoNetworkID = errors.New("no network ID available")
	// ErrNotFound is returned when a lookup by name or id matches nothing.
	ErrNotFound = errors.New("not found")
)

// Cache kinds.
const (
	kindAccount  = "account"
	kindNetworks = "networks"
	kindNetwork  = "network"
	kindEeros    = "eeros"
	kindDevices  = "devices"
	kindDevice   = "device"
	kindProfiles = "profiles"
	kindProfile  = "profile"
)

// Client combines the session, the resource client and a read cache.
type Client struct {
	auth   *auth.Manager
	api    *api.Client
	cache  cache.Store
	logger zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithCache replaces the default 60 second TTL cache.
func WithCache(store cache.Store) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client.
func New(manager *auth.Manager, apiClient *api.Client, options ...Option) (*Client, error) {
	if manager == nil {
		return nil, errors.New("[client.New] auth manager is required")
	}
	if apiClient == nil {
		return nil, errors.New("[client.New] api client is required")
	}

	c := &Client{
		auth:   manager,
		api:    apiClient,
		cache:  cache.New(cache.DefaultTTL),
		logger: log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Auth returns the session manager.
func (c *Client) Auth() *auth.Manager {
	return c.auth
}

func (c *Client) IsAuthenticated() bool {
	return c.auth.IsAuthenticated()
}

func (c *Client) State() auth.State {
	return c.auth.State()
}

func (c *Client) Session() sessions.Session {
	return c.auth.Session()
}

func (c *Client) Login(ctx context.Context, identifier string) (bool, error) {
	return c.auth.Login(ctx, identifier)
}

// Verify completes a login. Cached data from any earlier session is dropped.
func (c *Client) Verify(ctx context.Context, code string) (bool, error) {
	ok, err := c.auth.Verify(ctx, code)
	if ok {
		c.ClearCache()
	}
	return ok, err
}

func (c *Client) ResendVerificationCode(ctx context.Context) (bool, error) {
	return c.auth.ResendVerificationCode(ctx)
}

// Logout ends the session and drops cached data when the server accepted it.
func (c *Client) Logout(ctx context.Context) (bool, error) {
	ok, err := c.auth.Logout(ctx)
	if ok {
		c.ClearCache()
	}
	return ok, err
}

// ClearAuthData wipes the stored session and the cache.
func (c *Client) ClearAuthData(ctx context.Context) error {
	c.ClearCache()
	return c.auth.ClearAuthData(ctx)
}

func (c *Client) PreferredNetworkID() string {
	return c.auth.PreferredNetworkID()
}

func (c *Client) SetPreferredNetworkID(ctx context.Context, networkID string) error {
	return c.auth.SetPreferredNetworkID(ctx, networkID)
}

func (c *Client) ClearCache() {
	c.cache.Clear()
}

// ResolveNetworkID picks the network for a call: the one given, else the
// preferred one, else the first network on the account, which then becomes
// the preferred network.
func (c *Client) ResolveNetworkID(ctx context.Context, networkID string) (string, error) {
	if networkID != "" {
		return networkID, nil
	}
	if preferred := c.auth.PreferredNetworkID(); preferred != "" {
		return preferred, nil
	}

	networks, err := c.GetNetworks(ctx, false)
	if err != nil {
		return "", errors.Wrap(err, "[Client.ResolveNetworkID] GetNetworks")
	}
	for _, network := range networks {
		if id := network.NetworkID(); id != "" {
			return id, nil
		}
	}
	return "", ErrNoNetworkID
}

// cached returns the value under key unless refresh is set or it has expired, in which case fetch fills it.
func cached[T any](c *Client, key string, refresh bool, fetch func() (T, error)) (T, error) {
	if !refresh {
		if v, ok := c.cache.Get(key); ok {
			if typed, ok := v.(T); ok {
				c.logger.Debug().Str("key", key).Msg("Cache hit")
				return typed, nil
			}
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.cache.Set(key, v)
	return v, nil
}

// decodeObject turns a loose data member into an Object. Non object data is kept under "data".
func decodeObject(raw json.RawMessage) (models.Object, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrap(err, "[client.decodeObject] unmarshal")
	}
	switch value := v.(type) {
	case nil:
		return models.Object{}, nil
	case map[string]any:
		return models.Object(value), nil
	default:
		return models.Object{"data": value}, nil
	}
}

func decodeObjects(items []json.RawMessage) ([]models.Object, error) {
	return models.DecodeList[models.Object](items)
}
