package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/auth"
	"github.com/jrsteele09/eero-client/transport"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testToken     = "S1"
	testNetworkID = "N1"
)

type staticTokens struct {
	token string
}

func (s staticTokens) TokenSource(_ context.Context) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.token})
}

type failingTokens struct{}

func (failingTokens) TokenSource(_ context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, tokenSourceFunc(func() (*oauth2.Token, error) {
		return nil, transport.NewAuthenticationError("please login", auth.ErrNotAuthenticated)
	}))
}

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) { return f() }

// recordedRequest is what the fake API saw
type recordedRequest struct {
	Method string
	Path   string
	Cookie string
	Body   map[string]any
}

// testFixture holds all test dependencies
type testFixture struct {
	server   *httptest.Server
	client   *api.Client
	lock     sync.Mutex
	requests []recordedRequest
	status   int
	response string
}

// setupTestFixture creates an api.Client against a fake API answering every call with the configured response
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{status: http.StatusOK, response: `{"meta":{"code":200},"data":{}}`}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body := map[string]any{}
		_ = json.Unmarshal(raw, &body)

		recorded := recordedRequest{Method: r.Method, Path: strings.TrimPrefix(r.URL.EscapedPath(), "/2.2/"), Body: body}
		if cookie, err := r.Cookie(transport.SessionCookie); err == nil {
			recorded.Cookie = cookie.Value
		}

		f.lock.Lock()
		f.requests = append(f.requests, recorded)
		status, response := f.status, f.response
		f.lock.Unlock()

		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(f.server.Close)

	client, err := api.New(staticTokens{token: testToken}, transport.New(transport.WithBaseURL(f.server.URL+"/2.2")))
	require.NoError(t, err)
	f.client = client
	return f
}

func (f *testFixture) respond(status int, body string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.status = status
	f.response = body
}

func (f *testFixture) last(t *testing.T) recordedRequest {
	t.Helper()
	f.lock.Lock()
	defer f.lock.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func (f *testFixture) count() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.requests)
}

// TestNew_RequiresDependencies tests the constructor guards
func TestNew_RequiresDependencies(t *testing.T) {
	_, err := api.New(nil, transport.New())
	require.Error(t, err)

	_, err = api.New(staticTokens{token: testToken}, nil)
	require.Error(t, err)
}

// TestClient_NotAuthenticated tests that no request is sent without a token
func TestClient_NotAuthenticated(t *testing.T) {
	f := setupTestFixture(t)

	for _, tokens := range []api.TokenProvider{staticTokens{}, failingTokens{}} {
		client, err := api.New(tokens, transport.New(transport.WithBaseURL(f.server.URL+"/2.2")))
		require.NoError(t, err)

		_, err = client.GetAccount(context.Background())
		require.ErrorIs(t, err, auth.ErrNotAuthenticated)
		require.True(t, transport.IsAuthentication(err))
	}
	require.Zero(t, f.count())
}

// TestClient_Reads tests paths, cookies and data unwrapping for reads
func TestClient_Reads(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.respond(http.StatusOK, `{"meta":{"code":200},"data":{"name":"value"}}`)

	tests := []struct {
		name string
		call func() (json.RawMessage, error)
		path string
	}{
		{"account", func() (json.RawMessage, error) { return f.client.GetAccount(ctx) }, "account"},
		{"network", func() (json.RawMessage, error) { return f.client.GetNetwork(ctx, testNetworkID) }, "networks/N1"},
		{"eero", func() (json.RawMessage, error) { return f.client.GetEero(ctx, testNetworkID, "E1") }, "networks/N1/eeros/E1"},
		{"device", func() (json.RawMessage, error) { return f.client.GetDevice(ctx, testNetworkID, "D1") }, "networks/N1/devices/D1"},
		{"profile", func() (json.RawMessage, error) { return f.client.GetProfile(ctx, testNetworkID, "P1") }, "networks/N1/profiles/P1"},
		{"diagnostics", func() (json.RawMessage, error) { return f.client.GetDiagnostics(ctx, testNetworkID) }, "networks/N1/diagnostics"},
		{"settings", func() (json.RawMessage, error) { return f.client.GetSettings(ctx, testNetworkID) }, "networks/N1/settings"},
		{"insight", func() (json.RawMessage, error) { return f.client.GetInsight(ctx, testNetworkID, "I1") }, "networks/N1/insights/I1"},
		{"routing", func() (json.RawMessage, error) { return f.client.GetRouting(ctx, testNetworkID) }, "networks/N1/routing"},
		{"thread", func() (json.RawMessage, error) { return f.client.GetThread(ctx, testNetworkID) }, "networks/N1/thread"},
		{"support", func() (json.RawMessage, error) { return f.client.GetSupport(ctx, testNetworkID) }, "networks/N1/support"},
		{"updates", func() (json.RawMessage, error) { return f.client.GetUpdates(ctx, testNetworkID) }, "networks/N1/updates"},
		{"transfer", func() (json.RawMessage, error) { return f.client.GetTransfer(ctx, testNetworkID, "") }, "networks/N1/transfer"},
		{"device transfer", func() (json.RawMessage, error) { return f.client.GetTransfer(ctx, testNetworkID, "D1") }, "networks/N1/transfer/D1"},
		{"ac compat", func() (json.RawMessage, error) { return f.client.GetACCompat(ctx, testNetworkID) }, "networks/N1/ac_compat"},
		{"ouicheck", func() (json.RawMessage, error) { return f.client.GetOUICheck(ctx, testNetworkID) }, "networks/N1/ouicheck"},
		{"password", func() (json.RawMessage, error) { return f.client.GetPassword(ctx, testNetworkID) }, "networks/N1/password"},
		{"burst reporter", func() (json.RawMessage, error) { return f.client.GetBurstReporter(ctx, testNetworkID, "B1") }, "networks/N1/burst_reporters/B1"},
		{"escaped id", func() (json.RawMessage, error) { return f.client.GetDevice(ctx, testNetworkID, "a/b") }, "networks/N1/devices/a%2Fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.call()
			require.NoError(t, err)
			require.JSONEq(t, `{"name":"value"}`, string(data))

			last := f.last(t)
			require.Equal(t, http.MethodGet, last.Method)
			require.Equal(t, tt.path, last.Path)
			require.Equal(t, testToken, last.Cookie)
		})
	}
}

// TestClient_Lists tests the list extraction shapes
func TestClient_Lists(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		response string
		call     func() ([]json.RawMessage, error)
		want     int
	}{
		{"bare list", `{"meta":{"code":200},"data":[{"url":"/2.2/eeros/1"},{"url":"/2.2/eeros/2"}]}`, func() ([]json.RawMessage, error) { return f.client.GetEeros(ctx, testNetworkID) }, 2},
		{"legacy data.data", `{"meta":{"code":200},"data":{"data":[{"url":"d1"}]}}`, func() ([]json.RawMessage, error) { return f.client.GetDevices(ctx, testNetworkID) }, 1},
		{"no list", `{"meta":{"code":200},"data":{"count":0}}`, func() ([]json.RawMessage, error) { return f.client.GetProfiles(ctx, testNetworkID) }, 0},
		{"no data", `{"meta":{"code":200}}`, func() ([]json.RawMessage, error) { return f.client.GetBlacklist(ctx, testNetworkID) }, 0},
		{"networks.data", `{"meta":{"code":200},"data":{"count":1,"networks":{"data":[{"url":"/2.2/networks/N1"}]}}}`, func() ([]json.RawMessage, error) { return f.client.GetNetworks(ctx) }, 1},
		{"networks list", `{"meta":{"code":200},"data":{"networks":[{"url":"/2.2/networks/N1"},{"url":"/2.2/networks/N2"}]}}`, func() ([]json.RawMessage, error) { return f.client.GetNetworks(ctx) }, 2},
		{"networks legacy", `{"meta":{"code":200},"data":{"data":[{"url":"/2.2/networks/N1"}]}}`, func() ([]json.RawMessage, error) { return f.client.GetNetworks(ctx) }, 1},
		{"networks bare", `{"meta":{"code":200},"data":[{"url":"/2.2/networks/N1"}]}`, func() ([]json.RawMessage, error) { return f.client.GetNetworks(ctx) }, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.respond(http.StatusOK, tt.response)
			items, err := tt.call()
			require.NoError(t, err)
			require.NotNil(t, items)
			require.Len(t, items, tt.want)
		})
	}
}

// TestClient_Mutations tests methods, paths and bodies of changes, and the meta code check
func TestClient_Mutations(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	name := "guests"

	tests := []struct {
		name   string
		call   func() (bool, error)
		method string
		path   string
		body   map[string]any
	}{
		{"guest network", func() (bool, error) {
			return f.client.SetGuestNetwork(ctx, testNetworkID, api.GuestNetworkUpdate{Enabled: true, Name: &name})
		}, http.MethodPut, "networks/N1/guest_network", map[string]any{"enabled": true, "name": "guests"}},
		{"reboot network", func() (bool, error) { return f.client.RebootNetwork(ctx, testNetworkID) }, http.MethodPost, "networks/N1/reboot", map[string]any{}},
		{"reboot eero", func() (bool, error) { return f.client.RebootEero(ctx, testNetworkID, "E1") }, http.MethodPost, "networks/N1/eeros/E1/reboot", map[string]any{}},
		{"nickname", func() (bool, error) { return f.client.SetDeviceNickname(ctx, testNetworkID, "D1", "tv") }, http.MethodPut, "networks/N1/devices/D1", map[string]any{"nickname": "tv"}},
		{"block", func() (bool, error) { return f.client.BlockDevice(ctx, testNetworkID, "D1", true) }, http.MethodPut, "networks/N1/devices/D1", map[string]any{"blocked": true}},
		{"pause", func() (bool, error) { return f.client.PauseProfile(ctx, testNetworkID, "P1", false) }, http.MethodPut, "networks/N1/profiles/P1", map[string]any{"paused": false}},
		{"content filter", func() (bool, error) {
			return f.client.UpdateProfileContentFilter(ctx, testNetworkID, "P1", map[string]bool{"adblock": true, "bogus": true})
		}, http.MethodPut, "networks/N1/profiles/P1", map[string]any{"content_filter": map[string]any{"adblock": true}}},
		{"allow list", func() (bool, error) {
			return f.client.UpdateProfileBlockList(ctx, testNetworkID, "P1", []string{"example.com"}, false)
		}, http.MethodPut, "networks/N1/profiles/P1", map[string]any{"custom_allow_list": []any{"example.com"}}},
		{"settings", func() (bool, error) {
			return f.client.UpdateSettings(ctx, testNetworkID, map[string]any{"upnp": true})
		}, http.MethodPut, "networks/N1/settings", map[string]any{"upnp": true}},
		{"install updates", func() (bool, error) { return f.client.InstallUpdates(ctx, testNetworkID) }, http.MethodPost, "networks/N1/updates", map[string]any{}},
		{"password", func() (bool, error) { return f.client.UpdatePassword(ctx, testNetworkID, "hunter22") }, http.MethodPut, "networks/N1/password", map[string]any{"password": "hunter22"}},
		{"blacklist add", func() (bool, error) { return f.client.AddToBlacklist(ctx, testNetworkID, "D1") }, http.MethodPost, "networks/N1/blacklist", map[string]any{"device_id": "D1"}},
		{"blacklist remove", func() (bool, error) { return f.client.RemoveFromBlacklist(ctx, testNetworkID, "D1") }, http.MethodDelete, "networks/N1/blacklist/D1", map[string]any{}},
		{"update forward", func() (bool, error) {
			return f.client.UpdateForward(ctx, testNetworkID, "F1", map[string]any{"port": float64(80)})
		}, http.MethodPut, "networks/N1/forwards/F1", map[string]any{"port": float64(80)}},
		{"delete reservation", func() (bool, error) { return f.client.DeleteReservation(ctx, testNetworkID, "R1") }, http.MethodDelete, "networks/N1/reservations/R1", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.respond(http.StatusOK, `{"meta":{"code":200}}`)
			ok, err := tt.call()
			require.NoError(t, err)
			require.True(t, ok)

			last := f.last(t)
			require.Equal(t, tt.method, last.Method)
			require.Equal(t, tt.path, last.Path)
			require.Equal(t, tt.body, last.Body)
			require.Equal(t, testToken, last.Cookie)

			f.respond(http.StatusOK, `{"meta":{"code":202}}`)
			ok, err = tt.call()
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

// TestClient_Creates tests calls returning the created data
func TestClient_Creates(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.respond(http.StatusOK, `{"meta":{"code":200},"data":{"id":"X1"}}`)

	data, err := f.client.CreateReservation(ctx, testNetworkID, map[string]any{"ip": "192.168.4.20"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"X1"}`, string(data))
	require.Equal(t, "networks/N1/reservations", f.last(t).Path)
	require.Equal(t, http.MethodPost, f.last(t).Method)

	_, err = f.client.CreateForward(ctx, testNetworkID, map[string]any{"port": float64(22)})
	require.NoError(t, err)
	require.Equal(t, "networks/N1/forwards", f.last(t).Path)

	_, err = f.client.CheckOUI(ctx, testNetworkID, "44:07:0b:35:c7:b2")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"mac_address": "44:07:0b:35:c7:b2"}, f.last(t).Body)

	_, err = f.client.RunSpeedTest(ctx, testNetworkID)
	require.NoError(t, err)
	require.Equal(t, "networks/N1/speedtest", f.last(t).Path)

	_, err = f.client.RunDiagnostics(ctx, testNetworkID)
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, f.last(t).Method)
	require.Equal(t, "networks/N1/diagnostics", f.last(t).Path)

	_, err = f.client.CreateSupportTicket(ctx, testNetworkID, map[string]any{"subject": "help"})
	require.NoError(t, err)
	require.Equal(t, "networks/N1/support", f.last(t).Path)
}

// TestClient_Errors tests missing ids and transport errors
func TestClient_Errors(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.client.GetDevices(ctx, "")
	require.ErrorIs(t, err, api.ErrMissingID)
	_, err = f.client.GetDevice(ctx, testNetworkID, "")
	require.ErrorIs(t, err, api.ErrMissingID)
	_, err = f.client.AddToBlacklist(ctx, testNetworkID, "")
	require.ErrorIs(t, err, api.ErrMissingID)
	require.Zero(t, f.count())

	f.respond(http.StatusNotFound, `{"meta":{"code":404}}`)
	_, err = f.client.GetEero(ctx, testNetworkID, "E9")
	require.True(t, transport.IsNotFound(err))

	f.respond(http.StatusTooManyRequests, `{}`)
	_, err = f.client.RebootNetwork(ctx, testNetworkID)
	require.True(t, transport.IsRateLimited(err))

	f.respond(http.StatusOK, `[1,2,3]`)
	_, err = f.client.GetAccount(ctx)
	require.True(t, transport.IsAPIError(err))
}
