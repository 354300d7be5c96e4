package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/eero-client/envelope"
	"github.com/jrsteele09/eero-client/internal/utils"
	"github.com/jrsteele09/eero-client/sessions"
	"github.com/jrsteele09/eero-client/transport"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	loginPath   = "login"
	verifyPath  = "login/verify"
	resendPath  = "login/resend"
	logoutPath  = "logout"
	refreshPath = "account/refresh"

	// LoginWindow is how long a started login waits for its verification code.
	LoginWindow = 5 * time.Minute
	// SessionLifetime is the assumed lifetime of a verified or refreshed session.
	SessionLifetime = 30 * 24 * time.Hour

	invalidCodeMarker = "verification.invalid"
)

// State is the position of the session in the login lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateLoginPending
	StateAuthenticated
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateLoginPending:
		return "login pending"
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Manager owns the client session: it drives login, code verification,
// refresh and logout against the vendor API and persists every change
// through a sessions.Repo.
type Manager struct {
	repo      sessions.Repo
	transport Transport
	session   sessions.Session
	nowTime   func() time.Time // nowTime function (injectable for testing)
	logger    zerolog.Logger
	lock      sync.RWMutex
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager with an empty session. Call Load to restore a persisted one.
func NewManager(repo sessions.Repo, transport Transport, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] session repo is required")
	}
	if transport == nil {
		return nil, errors.New("[NewManager] transport is required")
	}

	m := &Manager{
		repo:      repo,
		transport: transport,
		nowTime:   time.Now,
		logger:    log.Logger,
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// Load replaces the in memory session with the persisted one. Nothing stored
// leaves an empty session. An expired session is kept so it can be refreshed.
func (m *Manager) Load(ctx context.Context) error {
	stored, err := m.repo.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "[Manager.Load] repo.Load")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if stored == nil {
		m.session = sessions.Session{}
		return nil
	}

	m.session = *stored
	m.session.LoginInProgress = false
	if m.session.SessionToken != "" && !m.session.IsAuthenticated(m.nowTime()) {
		m.logger.Debug().Msg("Stored session expired, will need to refresh")
	}
	return nil
}

// Session returns a copy of the current session.
func (m *Manager) Session() sessions.Session {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.session
}

// IsAuthenticated reports whether a session token is held and has not expired.
func (m *Manager) IsAuthenticated() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.session.IsAuthenticated(m.nowTime())
}

// LoginInProgress reports whether a login was started and not yet verified.
func (m *Manager) LoginInProgress() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.session.LoginInProgress
}

// SessionExpiry returns the current expiry, zero when unset.
func (m *Manager) SessionExpiry() time.Time {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.session.SessionExpiry
}

// State reports where the session is in the login lifecycle.
func (m *Manager) State() State {
	m.lock.RLock()
	defer m.lock.RUnlock()

	now := m.nowTime()
	switch {
	case m.session.IsAuthenticated(now):
		return StateAuthenticated
	case m.session.UserToken != "" && m.session.SessionToken == "" && now.Before(m.session.SessionExpiry):
		return StateLoginPending
	case m.session.SessionToken != "" || m.session.RefreshToken != "":
		return StateExpired
	default:
		return StateUnauthenticated
	}
}

// PreferredNetworkID returns the network used when a caller does not name one.
func (m *Manager) PreferredNetworkID() string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.session.PreferredNetworkID
}

// SetPreferredNetworkID stores the preferred network and persists it.
func (m *Manager) SetPreferredNetworkID(ctx context.Context, networkID string) error {
	m.update(func(s *sessions.Session) {
		s.PreferredNetworkID = networkID
	})
	if err := m.persist(ctx); err != nil {
		return errors.Wrap(err, "[Manager.SetPreferredNetworkID] persist")
	}
	return nil
}

// Login starts a login for an email address or phone number, asking the
// vendor to send a verification code. Any earlier session is discarded first.
// It returns false, without an error, when the API accepted the request but
// issued no user token.
func (m *Manager) Login(ctx context.Context, identifier string) (bool, error) {
	login := NormalizeIdentifier(identifier)

	m.update(func(s *sessions.Session) {
		s.UserToken = ""
		s.SessionToken = ""
		s.RefreshToken = ""
		s.SessionExpiry = time.Time{}
		s.LoginInProgress = false
	})
	if err := m.persist(ctx); err != nil {
		return false, errors.Wrap(err, "[Manager.Login] persist reset")
	}

	m.logger.Debug().Str("login", login).Msg("Starting login")

	body, err := m.transport.Post(ctx, loginPath, "", map[string]string{"login": login})
	if err != nil {
		var apiErr *transport.APIError
		if errors.As(err, &apiErr) {
			return false, &transport.AuthenticationError{Message: "login failed", Body: apiErr.Body, URL: apiErr.URL, Err: apiErr}
		}
		return false, errors.Wrap(err, "[Manager.Login] post")
	}

	response, err := envelope.Decode(body)
	if err != nil {
		return false, errors.Wrap(err, "[Manager.Login] decode")
	}

	userToken := response.String("user_token")
	if userToken == "" {
		m.logger.Warn().Msg("Login accepted but no user token was issued")
		return false, nil
	}
	m.logger.Debug().Str("user_token", userToken).Msg("Received user token")

	m.update(func(s *sessions.Session) {
		s.UserToken = userToken
		s.SessionExpiry = m.nowTime().Add(LoginWindow)
		s.LoginInProgress = true
	})
	if err := m.persist(ctx); err != nil {
		return false, errors.Wrap(err, "[Manager.Login] persist")
	}
	return true, nil
}

// Verify completes a login with the code the vendor sent. The user token is
// promoted to the session token. A wrong code returns an AuthenticationError
// wrapping ErrInvalidVerificationCode and leaves the pending login intact so
// the caller can ask again.
func (m *Manager) Verify(ctx context.Context, code string) (bool, error) {
	userToken := m.Session().UserToken
	if userToken == "" {
		return false, transport.NewAuthenticationError("verify called before login", ErrLoginRequired)
	}

	m.logger.Debug().Str("user_token", userToken).Str("code", code).Msg("Verifying login")

	body, err := m.transport.Post(ctx, verifyPath, userToken, map[string]string{"code": code})
	if err != nil {
		err = m.verifyError(err)
		if transport.IsAuthentication(err) && !errors.Is(err, ErrInvalidVerificationCode) {
			m.update(func(s *sessions.Session) { s.LoginInProgress = false })
		}
		return false, err
	}

	networkID := discoverNetworkID(body)
	if networkID == "" {
		m.logger.Debug().Msg("No network found in verification response")
	}

	m.update(func(s *sessions.Session) {
		s.SessionToken = s.UserToken
		s.SessionExpiry = m.nowTime().Truncate(time.Second).Add(SessionLifetime)
		s.LoginInProgress = false
		if networkID != "" {
			s.PreferredNetworkID = networkID
		}
	})
	if err := m.persist(ctx); err != nil {
		return false, errors.Wrap(err, "[Manager.Verify] persist")
	}

	m.logger.Info().Str("network_id", networkID).Msg("Login verified")
	return true, nil
}

func (m *Manager) verifyError(err error) error {
	var authErr *transport.AuthenticationError
	if errors.As(err, &authErr) {
		if isInvalidCode(authErr) {
			return &transport.AuthenticationError{Message: authErr.Message, Body: authErr.Body, URL: authErr.URL, Err: ErrInvalidVerificationCode}
		}
		return err
	}

	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		return &transport.AuthenticationError{Message: "verification failed", Body: apiErr.Body, URL: apiErr.URL, Err: apiErr}
	}
	return errors.Wrap(err, "[Manager.Verify] post")
}

// isInvalidCode reports whether a verify rejection is about the code itself,
// either by the vendor marker in the body or by a meta error like "Invalid code".
func isInvalidCode(authErr *transport.AuthenticationError) bool {
	if strings.Contains(strings.ToLower(authErr.Body), invalidCodeMarker) {
		return true
	}
	message := strings.ToLower(authErr.Message)
	return strings.Contains(message, "invalid") && strings.Contains(message, "code")
}

// discoverNetworkID finds the first network in a verification response, from
// data.networks.data or else data.data, using its id or the last segment of its url.
func discoverNetworkID(body []byte) string {
	response, err := envelope.Decode(body)
	if err != nil {
		return ""
	}

	networks, ok := envelope.ExtractNonEmptyList(response.Data, envelope.Nested("networks", "data"), envelope.Nested("data"))
	if !ok {
		return ""
	}

	first := &envelope.Envelope{Data: networks[0]}
	if id := first.String("id"); id != "" {
		return id
	}
	if url := first.String("url"); url != "" {
		return utils.LastPathSegment(url)
	}
	return ""
}

// ResendVerificationCode asks the vendor to send the code again. API failures
// return false; network failures are returned as errors.
func (m *Manager) ResendVerificationCode(ctx context.Context) (bool, error) {
	userToken := m.Session().UserToken
	if userToken == "" {
		return false, transport.NewAuthenticationError("resend called before login", ErrLoginRequired)
	}

	if _, err := m.transport.Post(ctx, resendPath, userToken, map[string]any{}); err != nil {
		if isAPIFailure(err) {
			m.logger.Warn().Err(err).Msg("Failed to resend verification code")
			return false, nil
		}
		return false, errors.Wrap(err, "[Manager.ResendVerificationCode] post")
	}

	m.logger.Info().Msg("Verification code resent")
	return true, nil
}

// Logout ends the session on the server and then locally. When not
// authenticated it returns false without calling the server. When the server
// rejects the call it returns false and keeps the local session, so the
// caller can try again.
func (m *Manager) Logout(ctx context.Context) (bool, error) {
	s := m.Session()
	if !s.IsAuthenticated(m.nowTime()) {
		m.logger.Debug().Msg("Logout requested while not authenticated")
		return false, nil
	}

	if _, err := m.transport.Post(ctx, logoutPath, s.SessionToken, map[string]any{}); err != nil {
		if isAPIFailure(err) {
			m.logger.Warn().Err(err).Msg("Logout failed")
			return false, nil
		}
		return false, errors.Wrap(err, "[Manager.Logout] post")
	}

	m.update(clearTokens)
	if err := m.persist(ctx); err != nil {
		return false, errors.Wrap(err, "[Manager.Logout] persist")
	}
	return true, nil
}

// RefreshSession exchanges the refresh token for a new session. A rejected
// refresh clears every token (the session is logged out) and returns false.
// Network failures are returned as errors and leave the session as it was.
func (m *Manager) RefreshSession(ctx context.Context) (bool, error) {
	refreshToken := m.Session().RefreshToken
	if refreshToken == "" {
		return false, transport.NewAuthenticationError("refresh requested", ErrNoRefreshToken)
	}

	m.logger.Debug().Msg("Refreshing session")

	body, err := m.transport.Post(ctx, refreshPath, "", map[string]string{"refresh_token": refreshToken})
	if err != nil {
		if isAPIFailure(err) {
			m.logger.Warn().Err(err).Msg("Session refresh rejected, clearing session")
			return false, m.clearAfterFailedRefresh(ctx)
		}
		return false, errors.Wrap(err, "[Manager.RefreshSession] post")
	}

	response, err := envelope.Decode(body)
	if err != nil {
		m.logger.Warn().Err(err).Msg("Unreadable refresh response, clearing session")
		return false, m.clearAfterFailedRefresh(ctx)
	}

	sessionToken := response.String("session_token")
	if sessionToken == "" {
		m.logger.Warn().Msg("Refresh response carried no session token, clearing session")
		return false, m.clearAfterFailedRefresh(ctx)
	}
	newRefreshToken := response.String("refresh_token")

	m.update(func(s *sessions.Session) {
		s.SessionToken = sessionToken
		if newRefreshToken != "" {
			s.RefreshToken = newRefreshToken
		}
		s.SessionExpiry = m.nowTime().Truncate(time.Second).Add(SessionLifetime)
		s.LoginInProgress = false
	})
	if err := m.persist(ctx); err != nil {
		return false, errors.Wrap(err, "[Manager.RefreshSession] persist")
	}
	return true, nil
}

func (m *Manager) clearAfterFailedRefresh(ctx context.Context) error {
	m.update(clearTokens)
	if err := m.persist(ctx); err != nil {
		return errors.Wrap(err, "[Manager.RefreshSession] persist cleared session")
	}
	return nil
}

// EnsureAuthenticated reports whether the session can be used, refreshing it
// once when it is expired or missing and a refresh token is held.
func (m *Manager) EnsureAuthenticated(ctx context.Context) (bool, error) {
	s := m.Session()
	now := m.nowTime()

	if s.IsAuthenticated(now) {
		return true, nil
	}

	if s.RefreshToken == "" {
		return false, nil
	}

	m.logger.Debug().Msg("Session expired or missing, attempting refresh")
	ok, err := m.RefreshSession(ctx)
	if err != nil {
		return false, errors.Wrap(err, "[Manager.EnsureAuthenticated] refresh")
	}
	return ok, nil
}

// AuthToken returns the session token once EnsureAuthenticated succeeds.
// Otherwise the error wraps ErrNotAuthenticated.
func (m *Manager) AuthToken(ctx context.Context) (string, error) {
	ok, err := m.EnsureAuthenticated(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", transport.NewAuthenticationError("please login", ErrNotAuthenticated)
	}
	return m.Session().SessionToken, nil
}

// ClearAuthData wipes the whole session, including the preferred network, and persists the empty session.
func (m *Manager) ClearAuthData(ctx context.Context) error {
	m.update(func(s *sessions.Session) {
		*s = sessions.Session{}
	})
	if err := m.persist(ctx); err != nil {
		return errors.Wrap(err, "[Manager.ClearAuthData] persist")
	}
	m.logger.Debug().Msg("Cleared all authentication data")
	return nil
}

func (m *Manager) update(change func(s *sessions.Session)) {
	m.lock.Lock()
	defer m.lock.Unlock()
	change(&m.session)
}

func (m *Manager) persist(ctx context.Context) error {
	s := m.Session()
	return m.repo.Save(ctx, &s)
}

func clearTokens(s *sessions.Session) {
	s.UserToken = ""
	s.SessionToken = ""
	s.RefreshToken = ""
	s.SessionExpiry = time.Time{}
	s.LoginInProgress = false
}

// isAPIFailure reports whether the server answered and refused, as opposed to
// the request never completing.
func isAPIFailure(err error) bool {
	return errors.Is(err, transport.ErrClient) && !transport.IsNetwork(err) && !transport.IsTimeout(err)
}
