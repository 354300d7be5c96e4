package api

import (
	"context"
	"encoding/json"
	"net/http"
)

func (c *Client) GetDiagnostics(ctx context.Context, networkID string) (json.RawMessage, error) {
	path, err := networkPath(networkID, "diagnostics")
	if err != nil {
		return nil, err
	}
	return c.getData(ctx, path)
}

// RunDiagnostics starts a diagnostics run.
func (c *Client) RunDiagnostics(ctx context.Context, networkID string) (json.RawMessage, error) {
	path, err := networkPath(networkID, "diagnostics")
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("network_id", networkID).Msg("Running diagnostics")
	return c.send(ctx, http.MethodPost, path, map[string]any{})
}
