package client

import (
	"context"

	"github.com/jrsteele09/eero-client/cache"
	"github.com/jrsteele09/eero-client/models"
)

func (c *Client) GetProfiles(ctx context.Context, networkID string, refresh bool) ([]models.Profile, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	return cached(c, cache.Key(kindProfiles, networkID), refresh, func() ([]models.Profile, error) {
		raw, err := c.api.GetProfiles(ctx, networkID)
		if err != nil {
			return nil, err
		}
		return models.DecodeList[models.Profile](raw)
	})
}

func (c *Client) GetProfile(ctx context.Context, networkID, profileID string, refresh bool) (*models.Profile, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	return cached(c, cache.Key(kindProfile, networkID, profileID), refresh, func() (*models.Profile, error) {
		raw, err := c.api.GetProfile(ctx, networkID, profileID)
		if err != nil {
			return nil, err
		}
		return models.Decode[models.Profile](raw)
	})
}

func (c *Client) PauseProfile(ctx context.Context, networkID, profileID string, paused bool) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.PauseProfile(ctx, networkID, profileID, paused)
	if ok {
		c.invalidateProfile(networkID, profileID)
	}
	return ok, err
}

func (c *Client) UpdateProfileContentFilter(ctx context.Context, networkID, profileID string, filters map[string]bool) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.UpdateProfileContentFilter(ctx, networkID, profileID, filters)
	if ok {
		c.invalidateProfile(networkID, profileID)
	}
	return ok, err
}

func (c *Client) UpdateProfileBlockList(ctx context.Context, networkID, profileID string, domains []string, block bool) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.UpdateProfileBlockList(ctx, networkID, profileID, domains, block)
	if ok {
		c.invalidateProfile(networkID, profileID)
	}
	return ok, err
}

func (c *Client) invalidateProfile(networkID, profileID string) {
	c.cache.Delete(cache.Key(kindProfile, networkID, profileID), cache.Key(kindProfiles, networkID))
}
