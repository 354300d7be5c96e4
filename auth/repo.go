package auth

import (
	"context"
	"encoding/json"
)

// Transport is the part of the HTTP transport the Manager talks to the vendor API through.
type Transport interface {
	// Post sends body as JSON, with authToken as the session cookie when set
	Post(ctx context.Context, path, authToken string, body any) (json.RawMessage, error)
}
