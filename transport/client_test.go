package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/eero-client/transport"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*transport.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return transport.New(transport.WithBaseURL(server.URL)), server
}

// TestClient_ResolveURL tests relative path joining and absolute passthrough
func TestClient_ResolveURL(t *testing.T) {
	c := transport.New()

	require.Equal(t, "https://api-user.e2ro.com/2.2/login", c.ResolveURL("login"))
	require.Equal(t, "https://api-user.e2ro.com/2.2/login/verify", c.ResolveURL("/login/verify"))
	require.Equal(t, "https://example.com/other", c.ResolveURL("https://example.com/other"))
	require.Equal(t, "http://localhost:1234/x", c.ResolveURL("http://localhost:1234/x"))
}

// TestClient_Do_HeadersAndCookie tests default headers, caller overrides and the session cookie
func TestClient_Do_HeadersAndCookie(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "eero-client/1.0.0", r.Header.Get("User-Agent"))
		require.Equal(t, "application/x-test", r.Header.Get("Content-Type"))

		cookie, err := r.Cookie(transport.SessionCookie)
		require.NoError(t, err)
		require.Equal(t, "token-1", cookie.Value)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "123456", body["code"])

		_, _ = w.Write([]byte(`{"meta":{"code":200},"data":{}}`))
	})

	body, err := c.Do(context.Background(), transport.Request{
		Method:    http.MethodPost,
		Path:      "login/verify",
		AuthToken: "token-1",
		Headers:   map[string]string{"Content-Type": "application/x-test"},
		Body:      map[string]string{"code": "123456"},
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"meta":{"code":200},"data":{}}`, string(body))
}

// TestClient_Do_NoCookieWithoutToken tests that unauthenticated calls carry no session cookie
func TestClient_Do_NoCookieWithoutToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(transport.SessionCookie)
		require.ErrorIs(t, err, http.ErrNoCookie)
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Post(context.Background(), "login", "", map[string]string{"login": "user@example.com"})
	require.NoError(t, err)
}

// TestClient_Do_StatusMapping tests classification of HTTP statuses into typed errors
func TestClient_Do_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, body json.RawMessage, err error)
	}{
		{
			name:   "200 with JSON",
			status: http.StatusOK,
			body:   `{"data":{"user_token":"T1"}}`,
			check: func(t *testing.T, body json.RawMessage, err error) {
				require.NoError(t, err)
				require.JSONEq(t, `{"data":{"user_token":"T1"}}`, string(body))
			},
		},
		{
			name:   "200 with empty body",
			status: http.StatusOK,
			body:   "",
			check: func(t *testing.T, body json.RawMessage, err error) {
				require.NoError(t, err)
				require.Equal(t, "null", string(body))
			},
		},
		{
			name:   "200 with invalid JSON",
			status: http.StatusOK,
			body:   "<html>oops</html>",
			check: func(t *testing.T, _ json.RawMessage, err error) {
				var apiErr *transport.APIError
				require.True(t, errors.As(err, &apiErr))
				require.Equal(t, http.StatusOK, apiErr.StatusCode)
				require.Contains(t, apiErr.Body, "<html>oops</html>")
			},
		},
		{
			name:   "401",
			status: http.StatusUnauthorized,
			body:   `{"meta":{"code":401,"error":"error.session.invalid"}}`,
			check: func(t *testing.T, _ json.RawMessage, err error) {
				var authErr *transport.AuthenticationError
				require.True(t, errors.As(err, &authErr))
				require.Equal(t, "error.session.invalid", authErr.Message)
				require.Contains(t, authErr.Body, "error.session.invalid")
			},
		},
		{
			name:   "404",
			status: http.StatusNotFound,
			body:   "missing",
			check: func(t *testing.T, _ json.RawMessage, err error) {
				require.True(t, transport.IsNotFound(err))
				require.Contains(t, err.Error(), "resource not found")
			},
		},
		{
			name:   "429",
			status: http.StatusTooManyRequests,
			body:   "slow down",
			check: func(t *testing.T, _ json.RawMessage, err error) {
				require.True(t, transport.IsRateLimited(err))
			},
		},
		{
			name:   "500",
			status: http.StatusInternalServerError,
			body:   "boom",
			check: func(t *testing.T, _ json.RawMessage, err error) {
				var apiErr *transport.APIError
				require.True(t, errors.As(err, &apiErr))
				require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
				require.Equal(t, "boom", apiErr.Body)
				require.Contains(t, apiErr.URL, "/networks")
				require.False(t, transport.IsNotFound(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			body, err := c.Get(context.Background(), "networks", "token")
			tt.check(t, body, err)
			if err != nil {
				require.ErrorIs(t, err, transport.ErrClient)
			}
		})
	}
}

// TestClient_Do_Timeout tests that a request exceeding its timeout yields a TimeoutError
func TestClient_Do_Timeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})

	_, err := c.Do(context.Background(), transport.Request{
		Method:  http.MethodGet,
		Path:    "networks",
		Timeout: 20 * time.Millisecond,
	})
	require.Error(t, err)
	require.True(t, transport.IsTimeout(err))
	require.False(t, transport.IsNetwork(err))
	require.ErrorIs(t, err, transport.ErrClient)
}

// TestClient_Do_NetworkError tests that connection failures yield a NetworkError
func TestClient_Do_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := transport.New(transport.WithBaseURL(url))
	_, err := c.Get(context.Background(), "networks", "")
	require.Error(t, err)
	require.True(t, transport.IsNetwork(err))
	require.False(t, transport.IsTimeout(err))
	require.ErrorIs(t, err, transport.ErrClient)
}

// TestClient_Do_Cancelled tests that a cancelled caller context is returned as context.Canceled and not as a client error
func TestClient_Do_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := transport.New(transport.WithBaseURL(server.URL))
	_, err := c.Get(ctx, "networks", "")
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, transport.IsNetwork(err))
	require.False(t, transport.IsTimeout(err))
	require.False(t, errors.Is(err, transport.ErrClient))
}
