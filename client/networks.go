package client

import (
	"context"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/cache"
	"github.com/jrsteele09/eero-client/models"
	"github.com/jrsteele09/eero-client/transport"
	"github.com/pkg/errors"
)

const defaultNetworkName = "Eero Network"

func (c *Client) GetAccount(ctx context.Context, refresh bool) (*models.Account, error) {
	return cached(c, cache.Key(kindAccount), refresh, func() (*models.Account, error) {
		raw, err := c.api.GetAccount(ctx)
		if err != nil {
			return nil, err
		}
		return models.Decode[models.Account](raw)
	})
}

// GetNetworks lists the account's networks. The first network becomes the
// preferred one when none is set. An empty list with a preferred network set
// falls back to that network's detail.
func (c *Client) GetNetworks(ctx context.Context, refresh bool) ([]models.Network, error) {
	networks, err := cached(c, cache.Key(kindNetworks), refresh, func() ([]models.Network, error) {
		raw, err := c.api.GetNetworks(ctx)
		if err != nil {
			return nil, err
		}
		return models.DecodeList[models.Network](raw)
	})
	if err != nil {
		return nil, err
	}

	preferred := c.auth.PreferredNetworkID()
	if len(networks) == 0 && preferred != "" {
		c.logger.Debug().Str("network_id", preferred).Msg("No networks listed, using preferred network")
		network, err := c.GetNetwork(ctx, preferred, refresh)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to get details for preferred network")
			return networks, nil
		}
		return []models.Network{*network}, nil
	}

	if preferred == "" && len(networks) > 0 {
		if id := networks[0].NetworkID(); id != "" {
			if err := c.auth.SetPreferredNetworkID(ctx, id); err != nil {
				return nil, errors.Wrap(err, "[Client.GetNetworks] SetPreferredNetworkID")
			}
		}
	}
	return networks, nil
}

// GetNetwork returns a network's detail. A network the API no longer knows
// comes back as a placeholder with status unknown.
func (c *Client) GetNetwork(ctx context.Context, networkID string, refresh bool) (*models.Network, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}

	return cached(c, cache.Key(kindNetwork, networkID), refresh, func() (*models.Network, error) {
		raw, err := c.api.GetNetwork(ctx, networkID)
		if transport.IsNotFound(err) {
			c.logger.Warn().Str("network_id", networkID).Msg("Network not found, returning placeholder")
			return placeholderNetwork(networkID, string(models.NetworkUnknown)), nil
		}
		if err != nil {
			return nil, err
		}

		network, err := models.Decode[models.Network](raw)
		if err != nil {
			return nil, err
		}
		if network.ID == "" {
			network.ID = networkID
		}
		if network.Name == "" && network.DisplayName == "" {
			network.Name = defaultNetworkName
		}
		if network.Status == "" {
			network.Status = "connected"
		}
		return network, nil
	})
}

func placeholderNetwork(networkID, status string) *models.Network {
	return &models.Network{
		ID:     networkID,
		URL:    "/2.2/networks/" + networkID,
		Name:   defaultNetworkName,
		Status: status,
	}
}

// SetGuestNetwork turns the guest network on or off, optionally renaming it or changing its password.
func (c *Client) SetGuestNetwork(ctx context.Context, networkID string, update api.GuestNetworkUpdate) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.SetGuestNetwork(ctx, networkID, update)
	if ok {
		c.cache.Delete(cache.Key(kindNetwork, networkID))
	}
	return ok, err
}

func (c *Client) RunSpeedTest(ctx context.Context, networkID string) (models.Object, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	raw, err := c.api.RunSpeedTest(ctx, networkID)
	if err != nil {
		return nil, err
	}
	c.cache.Delete(cache.Key(kindNetwork, networkID))
	return decodeObject(raw)
}

func (c *Client) RebootNetwork(ctx context.Context, networkID string) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.RebootNetwork(ctx, networkID)
	if ok {
		c.cache.Delete(cache.Key(kindNetwork, networkID), cache.Key(kindEeros, networkID))
	}
	return ok, err
}
