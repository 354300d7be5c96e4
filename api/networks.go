package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/eero-client/envelope"
)

const networksPath = "networks"

// NetworkListStrategies locate the network list: data.networks.data on the
// account style response, then the legacy data.data, then a bare list.
var NetworkListStrategies = []envelope.Strategy{
	envelope.Nested("networks", "data"),
	envelope.Nested("networks"),
	envelope.Nested("data"),
	envelope.List(),
}

// GuestNetworkUpdate changes the guest network. Nil fields are left as they are.
type GuestNetworkUpdate struct {
	Enabled  bool    `json:"enabled"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// GetNetworks lists the networks on the account.
func (c *Client) GetNetworks(ctx context.Context) ([]json.RawMessage, error) {
	networks, err := c.getList(ctx, networksPath, NetworkListStrategies...)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Int("count", len(networks)).Msg("Found networks")
	return networks, nil
}

// GetNetwork returns a network's detail.
func (c *Client) GetNetwork(ctx context.Context, networkID string) (json.RawMessage, error) {
	path, err := networkPath(networkID)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("network_id", networkID).Msg("Getting network")
	return c.getData(ctx, path)
}

// SetGuestNetwork enables or disables the guest network.
func (c *Client) SetGuestNetwork(ctx context.Context, networkID string, update GuestNetworkUpdate) (bool, error) {
	path, err := networkPath(networkID, "guest_network")
	if err != nil {
		return false, err
	}
	return c.mutate(ctx, http.MethodPut, path, update)
}

// RunSpeedTest starts a speed test and returns what the API reports.
func (c *Client) RunSpeedTest(ctx context.Context, networkID string) (json.RawMessage, error) {
	path, err := networkPath(networkID, "speedtest")
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("network_id", networkID).Msg("Running speed test")
	return c.send(ctx, http.MethodPost, path, map[string]any{})
}

// RebootNetwork reboots every eero on the network.
func (c *Client) RebootNetwork(ctx context.Context, networkID string) (bool, error) {
	path, err := networkPath(networkID, "reboot")
	if err != nil {
		return false, err
	}
	c.logger.Debug().Str("network_id", networkID).Msg("Rebooting network")
	return c.mutate(ctx, http.MethodPost, path, map[string]any{})
}
