package client

import (
	"context"

	"github.com/jrsteele09/eero-client/cache"
	"github.com/jrsteele09/eero-client/models"
)

func (c *Client) GetDevices(ctx context.Context, networkID string, refresh bool) ([]models.Device, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	return cached(c, cache.Key(kindDevices, networkID), refresh, func() ([]models.Device, error) {
		raw, err := c.api.GetDevices(ctx, networkID)
		if err != nil {
			return nil, err
		}
		return models.DecodeList[models.Device](raw)
	})
}

func (c *Client) GetDevice(ctx context.Context, networkID, deviceID string, refresh bool) (*models.Device, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	return cached(c, cache.Key(kindDevice, networkID, deviceID), refresh, func() (*models.Device, error) {
		raw, err := c.api.GetDevice(ctx, networkID, deviceID)
		if err != nil {
			return nil, err
		}
		return models.Decode[models.Device](raw)
	})
}

func (c *Client) SetDeviceNickname(ctx context.Context, networkID, deviceID, nickname string) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.SetDeviceNickname(ctx, networkID, deviceID, nickname)
	if ok {
		c.invalidateDevice(networkID, deviceID)
	}
	return ok, err
}

func (c *Client) BlockDevice(ctx context.Context, networkID, deviceID string, blocked bool) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.BlockDevice(ctx, networkID, deviceID, blocked)
	if ok {
		c.invalidateDevice(networkID, deviceID)
	}
	return ok, err
}

func (c *Client) invalidateDevice(networkID, deviceID string) {
	c.cache.Delete(cache.Key(kindDevice, networkID, deviceID), cache.Key(kindDevices, networkID))
}
