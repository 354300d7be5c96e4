package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL   = "https://api-user.e2ro.com/2.2"
	DefaultUserAgent = "eero-client/1.0.0"
	DefaultTimeout   = 30 * time.Second

	// SessionCookie is the cookie name the vendor API reads the user or session token from.
	SessionCookie = "s"
)

// Request describes a single call to the vendor API.
type Request struct {
	Method    string            // HTTP method
	Path      string            // Path relative to the base URL, or an absolute URL
	AuthToken string            // Sent as the session cookie when set
	Headers   map[string]string // Merged over the default headers, caller wins
	Body      any               // JSON encoded when non-nil
	Timeout   time.Duration     // Zero uses the client timeout
}

// Client executes requests against the vendor API and classifies the outcome
// into the typed errors of this package. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	timeout    time.Duration
	logger     zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithBaseURL overrides the vendor API base URL (tests point this at httptest servers).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the default per request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHeader adds or replaces a default header.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// New creates a transport Client with the default base URL, headers and timeout.
func New(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		headers: map[string]string{
			"User-Agent":   DefaultUserAgent,
			"Content-Type": "application/json",
		},
		timeout: DefaultTimeout,
		logger:  log.Logger,
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// BaseURL returns the base URL relative paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveURL joins a relative path onto the base URL. Absolute URLs are returned unchanged.
func (c *Client) ResolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(pathOrURL, "/")
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path, authToken string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, AuthToken: authToken})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path, authToken string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, AuthToken: authToken, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path, authToken string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, AuthToken: authToken, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path, authToken string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, AuthToken: authToken})
}

// Do executes the request and returns the JSON response body. An empty 200
// body is returned as JSON null.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	requestURL := c.ResolveURL(r.Path)
	logger := c.logger.With().
		Str("request_id", uuid.New().String()).
		Str("method", r.Method).
		Str("url", requestURL).
		Logger()

	var bodyReader io.Reader
	if r.Body != nil {
		encoded, err := json.Marshal(r.Body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.Do] encode request body")
		}
		bodyReader = bytes.NewReader(encoded)
		logger.Debug().RawJSON("payload", encoded).Msg("Request payload")
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, r.Method, requestURL, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Do] create request")
	}

	for key, value := range c.headers {
		request.Header.Set(key, value)
	}
	for key, value := range r.Headers {
		request.Header.Set(key, value)
	}
	if r.AuthToken != "" {
		request.AddCookie(&http.Cookie{Name: SessionCookie, Value: r.AuthToken})
		logger.Debug().Str("cookie", SessionCookie+"="+r.AuthToken).Msg("Added auth cookie")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, classifyTransportError(logger, requestURL, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, classifyTransportError(logger, requestURL, err)
	}

	logger.Debug().
		Int("status", response.StatusCode).
		Str("body", string(responseBody)).
		Msg("Response received")

	return classifyResponse(logger, requestURL, response.StatusCode, responseBody)
}

func classifyResponse(logger zerolog.Logger, requestURL string, status int, body []byte) (json.RawMessage, error) {
	switch status {
	case http.StatusOK:
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 {
			return json.RawMessage("null"), nil
		}
		if !json.Valid(trimmed) {
			logger.Error().Msg("Invalid JSON in successful response")
			return nil, &APIError{StatusCode: status, Body: "Invalid JSON response: " + string(body), URL: requestURL}
		}
		return json.RawMessage(trimmed), nil
	case http.StatusUnauthorized:
		logger.Debug().Msg("Authentication failed")
		return nil, &AuthenticationError{Message: serverMessage(body), Body: string(body), URL: requestURL}
	case http.StatusNotFound:
		logger.Debug().Msg("Resource not found")
		return nil, &APIError{StatusCode: status, Body: string(body), URL: requestURL}
	case http.StatusTooManyRequests:
		logger.Warn().Msg("Rate limit exceeded")
		return nil, &RateLimitError{Body: string(body), URL: requestURL}
	default:
		logger.Warn().Int("status", status).Msg("API error")
		return nil, &APIError{StatusCode: status, Body: string(body), URL: requestURL}
	}
}

func classifyTransportError(logger zerolog.Logger, requestURL string, err error) error {
	if errors.Is(err, context.Canceled) {
		logger.Debug().Msg("Request cancelled")
		return errors.Wrapf(context.Canceled, "request to %s", requestURL)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		logger.Warn().Msg("Request timed out")
		return &TimeoutError{URL: requestURL, Err: err}
	}
	logger.Warn().Err(err).Msg("Network error")
	return &NetworkError{URL: requestURL, Err: err}
}

// serverMessage pulls meta.error out of an error body, falling back to the raw text.
func serverMessage(body []byte) string {
	var envelope struct {
		Meta struct {
			Error string `json:"error"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Meta.Error != "" {
		return envelope.Meta.Error
	}
	return strings.TrimSpace(string(body))
}
