package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/auth"
	"github.com/jrsteele09/eero-client/cli"
	"github.com/jrsteele09/eero-client/client"
	"github.com/jrsteele09/eero-client/sessions"
	fakesessionrepo "github.com/jrsteele09/eero-client/sessions/repofakes"
	"github.com/jrsteele09/eero-client/transport"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	apiPrefix     = "/2.2/"
	testNetworkID = "N1"
	ok200         = `{"meta":{"code":200},"data":{}}`
	invalidCode   = `{"meta":{"code":401,"error":"error.verification.invalid"}}`
)

// testFixture holds all test dependencies
type testFixture struct {
	server    *httptest.Server
	repo      *fakesessionrepo.FakeSessionRepo
	client    *client.Client
	responses map[string][]response
	calls     map[string]int
	lock      sync.Mutex
}

type response struct {
	status int
	body   string
}

// setupTestFixture builds a client over an httptest server. A non nil session is stored before the client loads.
func setupTestFixture(t *testing.T, session *sessions.Session) *testFixture {
	t.Helper()

	f := &testFixture{
		repo:      fakesessionrepo.NewFakeSessionRepo(),
		responses: map[string][]response{},
		calls:     map[string]int{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)

	if session != nil {
		require.NoError(t, f.repo.Seed(session))
	}

	httpClient := transport.New(transport.WithBaseURL(f.server.URL + "/2.2"))
	manager, err := auth.NewManager(f.repo, httpClient)
	require.NoError(t, err)
	require.NoError(t, manager.Load(context.Background()))

	apiClient, err := api.New(manager, httpClient)
	require.NoError(t, err)
	f.client, err = client.New(manager, apiClient)
	require.NoError(t, err)
	return f
}

func authenticated() *sessions.Session {
	return &sessions.Session{
		UserToken:          "S1",
		SessionToken:       "S1",
		PreferredNetworkID: testNetworkID,
		SessionExpiry:      time.Now().Add(24 * time.Hour).Truncate(time.Second),
	}
}

func (f *testFixture) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, apiPrefix)

	f.lock.Lock()
	f.calls[key]++
	queue := f.responses[key]
	var res response
	found := len(queue) > 0
	if found {
		res = queue[0]
		if len(queue) > 1 {
			f.responses[key] = queue[1:]
		}
	}
	f.lock.Unlock()

	if !found {
		res = response{status: http.StatusNotFound, body: `{"meta":{"code":404,"error":"not found"}}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.status)
	_, _ = w.Write([]byte(res.body))
}

// respond queues responses for a route. The last one repeats.
func (f *testFixture) respond(method, path string, responses ...response) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.responses[method+" "+path] = responses
}

func (f *testFixture) callCount(method, path string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.calls[method+" "+path]
}

type result struct {
	code   int
	stdout string
	stderr string
}

// run executes the CLI with stdin as the answers to its prompts
func (f *testFixture) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	return f.runContext(t, context.Background(), stdin, args...)
}

func (f *testFixture) runContext(t *testing.T, ctx context.Context, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := cli.NewApp(cli.WithClient(f.client), cli.WithIO(strings.NewReader(stdin), &stdout, &stderr), cli.WithVersion("1.2.3"))
	code := app.Run(ctx, args)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestLogin_InvalidCodeThenRetry(t *testing.T) {
	f := setupTestFixture(t, nil)
	f.respond(http.MethodPost, "login", response{http.StatusOK, `{"meta":{"code":200},"data":{"user_token":"T1"}}`})
	f.respond(http.MethodPost, "login/verify",
		response{http.StatusUnauthorized, invalidCode},
		response{http.StatusOK, `{"meta":{"code":200},"data":{"networks":{"data":[{"url":"/2.2/networks/N1"}]}}}`},
	)
	f.respond(http.MethodPost, "login/resend", response{http.StatusOK, ok200})

	res := f.run(t, "000000\ny\n123456\n", "login", "555-123-4567")

	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stderr, "Verification code sent to +15551234567")
	require.Contains(t, res.stderr, "Invalid verification code (attempt 1 of 3)")
	require.Contains(t, res.stderr, "Verification code resent")
	require.Contains(t, res.stderr, "Logged in")
	require.Equal(t, 2, f.callCount(http.MethodPost, "login/verify"))
	require.True(t, f.client.IsAuthenticated())
	require.Equal(t, testNetworkID, f.repo.Stored().PreferredNetworkID)
}

func TestLogin_TooManyAttempts(t *testing.T) {
	f := setupTestFixture(t, nil)
	f.respond(http.MethodPost, "login", response{http.StatusOK, `{"meta":{"code":200},"data":{"user_token":"T1"}}`})
	f.respond(http.MethodPost, "login/verify", response{http.StatusUnauthorized, invalidCode})

	res := f.run(t, "1\nn\n2\nn\n3\n", "login", "user@example.com")

	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "too many invalid verification codes")
	require.Equal(t, 3, f.callCount(http.MethodPost, "login/verify"))
	require.False(t, f.client.IsAuthenticated())
}

func TestLogin_CodeFlag(t *testing.T) {
	f := setupTestFixture(t, nil)
	f.respond(http.MethodPost, "login", response{http.StatusOK, `{"meta":{"code":200},"data":{"user_token":"T1"}}`})
	f.respond(http.MethodPost, "login/verify", response{http.StatusUnauthorized, invalidCode})

	res := f.run(t, "", "login", "user@example.com", "--code", "000000")

	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "Invalid verification code")
	require.Equal(t, 1, f.callCount(http.MethodPost, "login/verify"))
}

func TestLogin_AlreadyAuthenticated(t *testing.T) {
	f := setupTestFixture(t, authenticated())

	res := f.run(t, "", "login", "user@example.com")

	require.Equal(t, 0, res.code)
	require.Contains(t, res.stderr, "Already logged in")
	require.Equal(t, 0, f.callCount(http.MethodPost, "login"))
}

func TestLogin_MissingIdentifier(t *testing.T) {
	f := setupTestFixture(t, nil)

	res := f.run(t, "", "login")
	require.Equal(t, 2, res.code)
	require.Contains(t, res.stderr, "eero login --help")
}

func TestLogout(t *testing.T) {
	t.Run("server accepts", func(t *testing.T) {
		f := setupTestFixture(t, authenticated())
		f.respond(http.MethodPost, "logout", response{http.StatusOK, ok200})

		res := f.run(t, "", "logout")
		require.Equal(t, 0, res.code)
		require.Contains(t, res.stderr, "Logged out")
		require.Empty(t, f.repo.Stored().SessionToken)
	})

	t.Run("server rejects", func(t *testing.T) {
		f := setupTestFixture(t, authenticated())
		f.respond(http.MethodPost, "logout", response{http.StatusInternalServerError, `{"meta":{"code":500}}`})

		res := f.run(t, "", "logout")
		require.Equal(t, 0, res.code)
		require.Contains(t, res.stderr, "local session was kept")
		require.Equal(t, "S1", f.repo.Stored().SessionToken)
	})
}

func TestClearAuth(t *testing.T) {
	f := setupTestFixture(t, authenticated())

	res := f.run(t, "", "clear-auth")
	require.Equal(t, 0, res.code)
	require.Equal(t, sessions.Session{}, *f.repo.Stored())
}

func TestStatus_YAML(t *testing.T) {
	f := setupTestFixture(t, authenticated())

	res := f.run(t, "", "status", "-o", "yaml")
	require.Equal(t, 0, res.code, res.stderr)

	var status map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &status))
	require.Equal(t, "authenticated", status["state"])
	require.Equal(t, true, status["authenticated"])
	require.Equal(t, testNetworkID, status["preferred_network_id"])
}

func TestDevices_JSON(t *testing.T) {
	f := setupTestFixture(t, authenticated())
	f.respond(http.MethodGet, "networks/N1/devices", response{http.StatusOK, `{"meta":{"code":200},"data":[
		{"url":"/2.2/networks/N1/devices/d1","nickname":"tv","connected":true},
		{"url":"/2.2/networks/N1/devices/d2","hostname":"laptop"}]}`})

	res := f.run(t, "", "--output", "json", "devices")
	require.Equal(t, 0, res.code, res.stderr)

	var devices []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &devices))
	require.Len(t, devices, 2)
	require.Equal(t, "tv", devices[0]["nickname"])
}

func TestNetworks_Brief(t *testing.T) {
	f := setupTestFixture(t, authenticated())
	f.respond(http.MethodGet, "networks", response{http.StatusOK, `{"meta":{"code":200},"data":{"data":[{"url":"/2.2/networks/N1","name":"Home","status":"connected"}]}}`})

	res := f.run(t, "", "networks")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Home")
	require.Contains(t, res.stdout, "online")
}

func TestNetworkFlag(t *testing.T) {
	f := setupTestFixture(t, authenticated())
	f.respond(http.MethodGet, "networks/N2/eeros", response{http.StatusOK, `{"meta":{"code":200},"data":[{"url":"/2.2/eeros/7","location":"Hall"}]}`})

	res := f.run(t, "", "eeros", "--network", "N2")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Hall")
	require.Equal(t, 1, f.callCount(http.MethodGet, "networks/N2/eeros"))
}

func TestRebootNetwork(t *testing.T) {
	f := setupTestFixture(t, authenticated())
	f.respond(http.MethodPost, "networks/N1/reboot", response{http.StatusOK, ok200})

	res := f.run(t, "", "reboot-network")
	require.Equal(t, 2, res.code)
	require.Contains(t, res.stderr, "pass --yes")
	require.Equal(t, 0, f.callCount(http.MethodPost, "networks/N1/reboot"))

	res = f.run(t, "", "reboot-network", "--yes")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, 1, f.callCount(http.MethodPost, "networks/N1/reboot"))
}

func TestGuestNetwork(t *testing.T) {
	f := setupTestFixture(t, authenticated())
	f.respond(http.MethodPut, "networks/N1/guest_network", response{http.StatusOK, ok200})

	res := f.run(t, "", "guest-network")
	require.Equal(t, 2, res.code)

	res = f.run(t, "", "guest-network", "--enable", "--name", "Visitors")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stderr, "Guest network enabled")
}

func TestRejectedMutation(t *testing.T) {
	f := setupTestFixture(t, authenticated())
	f.respond(http.MethodPut, "networks/N1/profiles/p1", response{http.StatusOK, `{"meta":{"code":202}}`})

	res := f.run(t, "", "pause-profile", "p1")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "not accepted")
}

func TestBlacklist(t *testing.T) {
	f := setupTestFixture(t, authenticated())
	f.respond(http.MethodGet, "networks/N1/blacklist", response{http.StatusOK, `{"meta":{"code":200},"data":[{"mac":"aa:bb","nickname":"guest phone"}]}`})
	f.respond(http.MethodPost, "networks/N1/blacklist", response{http.StatusOK, ok200})

	res := f.run(t, "", "blacklist")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "guest phone")

	res = f.run(t, "", "blacklist", "add", "d1")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stderr, "added to the blacklist")
}

func TestResourceCommand_Extensive(t *testing.T) {
	f := setupTestFixture(t, authenticated())
	f.respond(http.MethodGet, "networks/N1/settings", response{http.StatusOK, `{"meta":{"code":200},"data":{"dns":{"mode":"auto"},"upnp":true}}`})

	res := f.run(t, "", "settings", "--output", "extensive")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "dns.mode")
	require.Contains(t, res.stdout, "auto")
}

func TestErrorPresentation(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		f := setupTestFixture(t, nil)
		res := f.run(t, "", "account")
		require.Equal(t, 1, res.code)
		require.Contains(t, res.stderr, "Please login")
	})

	t.Run("rate limited", func(t *testing.T) {
		f := setupTestFixture(t, authenticated())
		f.respond(http.MethodGet, "account", response{http.StatusTooManyRequests, `{"meta":{"code":429}}`})
		res := f.run(t, "", "account")
		require.Equal(t, 1, res.code)
		require.Contains(t, res.stderr, "Wait a minute and retry")
	})

	t.Run("network failure", func(t *testing.T) {
		f := setupTestFixture(t, authenticated())
		f.server.Close()
		res := f.run(t, "", "account")
		require.Equal(t, 1, res.code)
		require.Contains(t, res.stderr, "Network error")
	})

	t.Run("interrupted", func(t *testing.T) {
		f := setupTestFixture(t, authenticated())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res := f.runContext(t, ctx, "", "account")
		require.Equal(t, 1, res.code)
		require.Contains(t, res.stderr, "Interrupted")
		require.NotContains(t, res.stderr, "Network error")
	})

	t.Run("unknown command", func(t *testing.T) {
		f := setupTestFixture(t, nil)
		res := f.run(t, "", "frobnicate")
		require.Equal(t, 2, res.code)
		require.Contains(t, res.stderr, `unknown command "frobnicate"`)
	})

	t.Run("unknown output format", func(t *testing.T) {
		f := setupTestFixture(t, authenticated())
		res := f.run(t, "", "status", "--output", "xml")
		require.Equal(t, 2, res.code)
	})
}

func TestHelp(t *testing.T) {
	f := setupTestFixture(t, nil)

	res := f.run(t, "", "--help")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "Commands:")
	require.Contains(t, res.stdout, "reboot-eero")

	res = f.run(t, "", "devices", "--help")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "--network")
}

func TestVersion(t *testing.T) {
	f := setupTestFixture(t, nil)

	res := f.run(t, "", "version", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, `"version": "1.2.3"`)
}
