package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// GetDevices lists the client devices seen on a network.
func (c *Client) GetDevices(ctx context.Context, networkID string) ([]json.RawMessage, error) {
	path, err := networkPath(networkID, "devices")
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("network_id", networkID).Msg("Getting devices")
	return c.getList(ctx, path)
}

func (c *Client) GetDevice(ctx context.Context, networkID, deviceID string) (json.RawMessage, error) {
	path, err := networkPath(networkID, "devices", escape(deviceID))
	if err != nil {
		return nil, err
	}
	return c.getData(ctx, path)
}

// SetDeviceNickname renames a device.
func (c *Client) SetDeviceNickname(ctx context.Context, networkID, deviceID, nickname string) (bool, error) {
	path, err := networkPath(networkID, "devices", escape(deviceID))
	if err != nil {
		return false, err
	}
	return c.mutate(ctx, http.MethodPut, path, map[string]any{"nickname": nickname})
}

// BlockDevice blocks or unblocks a device.
func (c *Client) BlockDevice(ctx context.Context, networkID, deviceID string, blocked bool) (bool, error) {
	path, err := networkPath(networkID, "devices", escape(deviceID))
	if err != nil {
		return false, err
	}
	c.logger.Debug().Str("device_id", deviceID).Bool("blocked", blocked).Msg("Updating device block state")
	return c.mutate(ctx, http.MethodPut, path, map[string]any{"blocked": blocked})
}
