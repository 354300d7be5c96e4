package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// GetEeros lists the eero nodes of a network.
func (c *Client) GetEeros(ctx context.Context, networkID string) ([]json.RawMessage, error) {
	path, err := networkPath(networkID, "eeros")
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("network_id", networkID).Msg("Getting eeros")
	return c.getList(ctx, path)
}

func (c *Client) GetEero(ctx context.Context, networkID, eeroID string) (json.RawMessage, error) {
	path, err := networkPath(networkID, "eeros", escape(eeroID))
	if err != nil {
		return nil, err
	}
	return c.getData(ctx, path)
}

// RebootEero reboots a single eero.
func (c *Client) RebootEero(ctx context.Context, networkID, eeroID string) (bool, error) {
	path, err := networkPath(networkID, "eeros", escape(eeroID), "reboot")
	if err != nil {
		return false, err
	}
	c.logger.Debug().Str("network_id", networkID).Str("eero_id", eeroID).Msg("Rebooting eero")
	return c.mutate(ctx, http.MethodPost, path, map[string]any{})
}
