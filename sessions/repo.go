package sessions

import "context"

// Repo defines the interface for persisting the single client session.
// Loads soft fail: a missing, unreadable or malformed blob is reported as (nil, nil).
type Repo interface {
	// Load retrieves the stored session, nil when nothing usable is stored
	Load(ctx context.Context) (*Session, error)

	// Save replaces the stored session with the whole of s
	Save(ctx context.Context, s *Session) error

	// Delete removes the stored session
	Delete(ctx context.Context) error
}
