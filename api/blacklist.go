package api

import (
	"context"
	"encoding/json"
	"net/http"
)

const blacklistResource = "blacklist"

// GetBlacklist lists the blocked devices of a network.
func (c *Client) GetBlacklist(ctx context.Context, networkID string) ([]json.RawMessage, error) {
	path, err := networkPath(networkID, blacklistResource)
	if err != nil {
		return nil, err
	}
	return c.getList(ctx, path)
}

func (c *Client) AddToBlacklist(ctx context.Context, networkID, deviceID string) (bool, error) {
	if deviceID == "" {
		return false, ErrMissingID
	}
	path, err := networkPath(networkID, blacklistResource)
	if err != nil {
		return false, err
	}
	return c.mutate(ctx, http.MethodPost, path, map[string]any{"device_id": deviceID})
}

func (c *Client) RemoveFromBlacklist(ctx context.Context, networkID, deviceID string) (bool, error) {
	path, err := networkPath(networkID, blacklistResource, escape(deviceID))
	if err != nil {
		return false, err
	}
	return c.mutate(ctx, http.MethodDelete, path, nil)
}
