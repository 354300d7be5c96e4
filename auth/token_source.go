package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// CookieTokenType is the oauth2.Token type of a session token, which the vendor API reads from a cookie.
const CookieTokenType = "cookie"

// TokenSource adapts the Manager to oauth2.TokenSource. Each Token call runs
// EnsureAuthenticated, so an expired session is refreshed on demand.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &managerTokenSource{ctx: ctx, manager: m}
}

type managerTokenSource struct {
	ctx     context.Context
	manager *Manager
}

func (ts *managerTokenSource) Token() (*oauth2.Token, error) {
	accessToken, err := ts.manager.AuthToken(ts.ctx)
	if err != nil {
		return nil, err
	}

	s := ts.manager.Session()
	return &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    CookieTokenType,
		RefreshToken: s.RefreshToken,
		Expiry:       s.SessionExpiry,
	}, nil
}
