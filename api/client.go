// Package api wraps the vendor's REST resources. Every call fetches the
// session token first, sends it as the session cookie and unwraps the
// response envelope. Reads return raw JSON for the caller to decode;
// mutations report whether the API answered with meta.code 200.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/eero-client/auth"
	"github.com/jrsteele09/eero-client/envelope"
	"github.com/jrsteele09/eero-client/transport"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// ErrMissingID is returned when a call needs a network or resource id and got an empty one.
var ErrMissingID = errors.New("id is required")

// TokenProvider hands out the session token for each call. *auth.Manager satisfies it.
type TokenProvider interface {
	TokenSource(ctx context.Context) oauth2.TokenSource
}

// Doer executes a request. *transport.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, r transport.Request) (json.RawMessage, error)
}

// Client is the resource client for the vendor API.
type Client struct {
	tokens    TokenProvider
	transport Doer
	logger    zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a resource client.
func New(tokens TokenProvider, transport Doer, options ...ClientOption) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("[api.New] token provider is required")
	}
	if transport == nil {
		return nil, errors.New("[api.New] transport is required")
	}

	c := &Client{
		tokens:    tokens,
		transport: transport,
		logger:    log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

func (c *Client) authToken(ctx context.Context) (string, error) {
	token, err := c.tokens.TokenSource(ctx).Token()
	if err != nil {
		return "", err
	}
	if token == nil || token.AccessToken == "" {
		return "", transport.NewAuthenticationError("not authenticated", auth.ErrNotAuthenticated)
	}
	return token.AccessToken, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any) (*envelope.Envelope, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := c.transport.Do(ctx, transport.Request{Method: method, Path: path, AuthToken: token, Body: body})
	if err != nil {
		return nil, err
	}

	response, err := envelope.Decode(raw)
	if err != nil {
		return nil, &transport.APIError{StatusCode: http.StatusOK, Body: "Invalid response envelope: " + string(raw), URL: path}
	}
	return response, nil
}

// getData returns the data member of a GET, JSON null when absent.
func (c *Client) getData(ctx context.Context, path string) (json.RawMessage, error) {
	response, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !response.HasData() {
		return json.RawMessage("null"), nil
	}
	return response.Data, nil
}

// getList returns the list found in the data member of a GET. A response with
// no recognisable list gives an empty result.
func (c *Client) getList(ctx context.Context, path string, strategies ...envelope.Strategy) ([]json.RawMessage, error) {
	response, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	items, ok := response.List(strategies...)
	if !ok {
		c.logger.Debug().Str("path", path).Msg("No list found in response")
		return []json.RawMessage{}, nil
	}
	return items, nil
}

// mutate sends a change and reports whether meta.code was 200.
func (c *Client) mutate(ctx context.Context, method, path string, body any) (bool, error) {
	response, err := c.call(ctx, method, path, body)
	if err != nil {
		return false, err
	}
	if !response.OK() {
		c.logger.Debug().Str("path", path).Int("code", response.Meta.Code).Str("error", response.Meta.Error).Msg("Mutation not accepted")
	}
	return response.OK(), nil
}

// send issues a change and returns its data member.
func (c *Client) send(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	response, err := c.call(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if !response.HasData() {
		return json.RawMessage("null"), nil
	}
	return response.Data, nil
}

// networkPath builds networks/{id}/parts... with escaped ids.
func networkPath(networkID string, parts ...string) (string, error) {
	if networkID == "" {
		return "", errors.Wrap(ErrMissingID, "network")
	}
	segments := []string{"networks", url.PathEscape(networkID)}
	for _, part := range parts {
		if part == "" {
			return "", errors.Wrapf(ErrMissingID, "path %s", strings.Join(segments, "/"))
		}
		segments = append(segments, part)
	}
	return strings.Join(segments, "/"), nil
}

func escape(id string) string {
	if id == "" {
		return ""
	}
	return url.PathEscape(id)
}
