package client

import (
	"context"
	"strings"

	"github.com/jrsteele09/eero-client/cache"
	"github.com/jrsteele09/eero-client/models"
	"github.com/pkg/errors"
)

func (c *Client) GetEeros(ctx context.Context, networkID string, refresh bool) ([]models.Eero, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	return cached(c, cache.Key(kindEeros, networkID), refresh, func() ([]models.Eero, error) {
		raw, err := c.api.GetEeros(ctx, networkID)
		if err != nil {
			return nil, err
		}
		return models.DecodeList[models.Eero](raw)
	})
}

// GetEero finds an eero by id, serial, location or MAC address.
func (c *Client) GetEero(ctx context.Context, networkID, eeroID string, refresh bool) (*models.Eero, error) {
	eeros, err := c.GetEeros(ctx, networkID, refresh)
	if err != nil {
		return nil, err
	}
	for i := range eeros {
		e := &eeros[i]
		if e.EeroID() == eeroID || e.Serial == eeroID || e.MACAddress == eeroID || strings.EqualFold(e.LocationName(), eeroID) {
			return e, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "eero %q", eeroID)
}

func (c *Client) RebootEero(ctx context.Context, networkID, eeroID string) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.RebootEero(ctx, networkID, eeroID)
	if ok {
		c.cache.Delete(cache.Key(kindEeros, networkID))
	}
	return ok, err
}
