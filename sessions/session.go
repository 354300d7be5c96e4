package sessions

import (
	"encoding/json"
	"time"

	"github.com/jrsteele09/eero-client/internal/utils"
	"github.com/pkg/errors"
)

// legacyExpiryLayout is the naive local timestamp older credential files carry.
const legacyExpiryLayout = "2006-01-02T15:04:05.999999"

// Session is the authentication material kept between runs.
// Two tokens are in play:
// 1. UserToken is issued when a login starts and is only good for verifying the emailed/texted code
// 2. SessionToken is the long lived credential once the code is verified (the vendor reuses the user token string)
type Session struct {
	UserToken          string    // Issued at login start, used as the cookie while verifying
	SessionToken       string    // Long lived credential after verification or refresh
	RefreshToken       string    // Optional, mints a new session without re-verifying
	UserID             string    // Passthrough, kept for layout compatibility
	PreferredNetworkID string    // Network used when a command does not name one
	SessionExpiry      time.Time // Zero when unset
	LoginInProgress    bool      // Between login start and verification, never persisted
}

// IsAuthenticated reports whether the session token is set and has not expired at now.
func (s *Session) IsAuthenticated(now time.Time) bool {
	if s == nil || s.SessionToken == "" || s.SessionExpiry.IsZero() {
		return false
	}
	return now.Before(s.SessionExpiry)
}

// record is the persisted JSON layout shared by every backend.
// The session token lives under "session_id", the name existing credential files use.
type record struct {
	UserToken          *string `json:"user_token"`
	RefreshToken       *string `json:"refresh_token"`
	SessionID          *string `json:"session_id"`
	UserID             *string `json:"user_id"`
	PreferredNetworkID *string `json:"preferred_network_id"`
	SessionExpiry      *string `json:"session_expiry"`
}

// Encode serialises the session into the persisted JSON layout. Empty fields are written as null.
func Encode(s *Session) ([]byte, error) {
	if s == nil {
		s = &Session{}
	}

	r := record{
		UserToken:          nullable(s.UserToken),
		RefreshToken:       nullable(s.RefreshToken),
		SessionID:          nullable(s.SessionToken),
		UserID:             nullable(s.UserID),
		PreferredNetworkID: nullable(s.PreferredNetworkID),
	}
	if !s.SessionExpiry.IsZero() {
		r.SessionExpiry = utils.Ptr(s.SessionExpiry.Format(time.RFC3339Nano))
	}

	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "[sessions.Encode] marshal")
	}
	return data, nil
}

// Decode parses the persisted JSON layout.
func Decode(data []byte) (*Session, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "[sessions.Decode] unmarshal")
	}

	s := &Session{
		UserToken:          utils.Value(r.UserToken),
		RefreshToken:       utils.Value(r.RefreshToken),
		SessionToken:       utils.Value(r.SessionID),
		UserID:             utils.Value(r.UserID),
		PreferredNetworkID: utils.Value(r.PreferredNetworkID),
	}

	if expiry := utils.Value(r.SessionExpiry); expiry != "" {
		parsed, err := parseExpiry(expiry)
		if err != nil {
			return nil, errors.Wrap(err, "[sessions.Decode] session_expiry")
		}
		s.SessionExpiry = parsed
	}

	return s, nil
}

func parseExpiry(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(legacyExpiryLayout, value, time.Local)
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return utils.Ptr(value)
}
