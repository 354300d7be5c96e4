package client

import (
	"context"
	"encoding/json"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/cache"
	"github.com/jrsteele09/eero-client/models"
)

// Loose resources are not cached: they are read once per command.

func (c *Client) GetDiagnostics(ctx context.Context, networkID string) (*models.Diagnostics, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	raw, err := c.api.GetDiagnostics(ctx, networkID)
	if err != nil {
		return nil, err
	}
	return decodeDiagnostics(raw)
}

func (c *Client) RunDiagnostics(ctx context.Context, networkID string) (*models.Diagnostics, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	raw, err := c.api.RunDiagnostics(ctx, networkID)
	if err != nil {
		return nil, err
	}
	return decodeDiagnostics(raw)
}

// decodeDiagnostics keeps the whole payload in Results when it does not look like a report.
func decodeDiagnostics(raw json.RawMessage) (*models.Diagnostics, error) {
	object, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	diagnostics, err := models.Decode[models.Diagnostics](raw)
	if err != nil || diagnostics.Status == "" {
		return &models.Diagnostics{Status: models.DiagnosticsNotStarted, Results: object}, nil
	}
	if diagnostics.Results == nil {
		diagnostics.Results = object
	}
	return diagnostics, nil
}

func (c *Client) getObject(ctx context.Context, networkID string, get func(networkID string) (json.RawMessage, error)) (models.Object, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	raw, err := get(networkID)
	if err != nil {
		return nil, err
	}
	return decodeObject(raw)
}

func (c *Client) getObjects(ctx context.Context, networkID string, list func(networkID string) ([]json.RawMessage, error)) ([]models.Object, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return nil, err
	}
	items, err := list(networkID)
	if err != nil {
		return nil, err
	}
	return decodeObjects(items)
}

// GetResource reads one of the loose network resources named in the api package (api.SettingsResource, ...).
func (c *Client) GetResource(ctx context.Context, networkID, resource string, ids ...string) (models.Object, error) {
	return c.getObject(ctx, networkID, func(networkID string) (json.RawMessage, error) {
		return c.api.GetResource(ctx, networkID, resource, ids...)
	})
}

func (c *Client) GetSettings(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.SettingsResource)
}

func (c *Client) UpdateSettings(ctx context.Context, networkID string, settings map[string]any) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.UpdateSettings(ctx, networkID, settings)
	if ok {
		c.cache.Delete(cache.Key(kindNetwork, networkID))
	}
	return ok, err
}

func (c *Client) GetInsights(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.InsightsResource)
}

func (c *Client) GetRouting(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.RoutingResource)
}

func (c *Client) GetThread(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.ThreadResource)
}

func (c *Client) GetSupport(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.SupportResource)
}

func (c *Client) GetUpdates(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.UpdatesResource)
}

// GetTransfer returns transfer statistics for the network, or for one device when deviceID is set.
func (c *Client) GetTransfer(ctx context.Context, networkID, deviceID string) (models.Object, error) {
	return c.getObject(ctx, networkID, func(networkID string) (json.RawMessage, error) {
		return c.api.GetTransfer(ctx, networkID, deviceID)
	})
}

func (c *Client) GetACCompat(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.ACCompatResource)
}

func (c *Client) GetOUICheck(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.OUICheckResource)
}

func (c *Client) CheckOUI(ctx context.Context, networkID, macAddress string) (models.Object, error) {
	return c.getObject(ctx, networkID, func(networkID string) (json.RawMessage, error) {
		return c.api.CheckOUI(ctx, networkID, macAddress)
	})
}

func (c *Client) GetPassword(ctx context.Context, networkID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.PasswordResource)
}

func (c *Client) GetBurstReporters(ctx context.Context, networkID string) ([]models.Object, error) {
	return c.getObjects(ctx, networkID, func(networkID string) ([]json.RawMessage, error) {
		return c.api.GetBurstReporters(ctx, networkID)
	})
}

func (c *Client) GetBlacklist(ctx context.Context, networkID string) ([]models.Object, error) {
	return c.getObjects(ctx, networkID, func(networkID string) ([]json.RawMessage, error) {
		return c.api.GetBlacklist(ctx, networkID)
	})
}

// AddToBlacklist blocks a device through the blacklist.
func (c *Client) AddToBlacklist(ctx context.Context, networkID, deviceID string) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.AddToBlacklist(ctx, networkID, deviceID)
	if ok {
		c.invalidateDevice(networkID, deviceID)
	}
	return ok, err
}

func (c *Client) RemoveFromBlacklist(ctx context.Context, networkID, deviceID string) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.RemoveFromBlacklist(ctx, networkID, deviceID)
	if ok {
		c.invalidateDevice(networkID, deviceID)
	}
	return ok, err
}

func (c *Client) GetReservations(ctx context.Context, networkID string) ([]models.Object, error) {
	return c.getObjects(ctx, networkID, func(networkID string) ([]json.RawMessage, error) {
		return c.api.GetReservations(ctx, networkID)
	})
}

func (c *Client) GetForwards(ctx context.Context, networkID string) ([]models.Object, error) {
	return c.getObjects(ctx, networkID, func(networkID string) ([]json.RawMessage, error) {
		return c.api.GetForwards(ctx, networkID)
	})
}

func (c *Client) GetInsight(ctx context.Context, networkID, insightID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.InsightsResource, insightID)
}

func (c *Client) GetBurstReporter(ctx context.Context, networkID, reporterID string) (models.Object, error) {
	return c.GetResource(ctx, networkID, api.BurstReportersResource, reporterID)
}

// update resolves the network and runs a mutation that leaves the read cache untouched.
func (c *Client) update(ctx context.Context, networkID string, mutate func(networkID string) (bool, error)) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	return mutate(networkID)
}

func (c *Client) UpdateRouting(ctx context.Context, networkID string, routing map[string]any) (bool, error) {
	return c.update(ctx, networkID, func(networkID string) (bool, error) {
		return c.api.UpdateRouting(ctx, networkID, routing)
	})
}

func (c *Client) UpdateThread(ctx context.Context, networkID string, thread map[string]any) (bool, error) {
	return c.update(ctx, networkID, func(networkID string) (bool, error) {
		return c.api.UpdateThread(ctx, networkID, thread)
	})
}

func (c *Client) UpdatePassword(ctx context.Context, networkID, password string) (bool, error) {
	return c.update(ctx, networkID, func(networkID string) (bool, error) {
		return c.api.UpdatePassword(ctx, networkID, password)
	})
}

// InstallUpdates starts a firmware update. The eero list is stale afterwards.
func (c *Client) InstallUpdates(ctx context.Context, networkID string) (bool, error) {
	networkID, err := c.ResolveNetworkID(ctx, networkID)
	if err != nil {
		return false, err
	}
	ok, err := c.api.InstallUpdates(ctx, networkID)
	if ok {
		c.cache.Delete(cache.Key(kindEeros, networkID), cache.Key(kindNetwork, networkID))
	}
	return ok, err
}

func (c *Client) CreateSupportTicket(ctx context.Context, networkID string, ticket map[string]any) (models.Object, error) {
	return c.getObject(ctx, networkID, func(networkID string) (json.RawMessage, error) {
		return c.api.CreateSupportTicket(ctx, networkID, ticket)
	})
}

func (c *Client) CreateReservation(ctx context.Context, networkID string, reservation map[string]any) (models.Object, error) {
	return c.getObject(ctx, networkID, func(networkID string) (json.RawMessage, error) {
		return c.api.CreateReservation(ctx, networkID, reservation)
	})
}

func (c *Client) UpdateReservation(ctx context.Context, networkID, reservationID string, reservation map[string]any) (bool, error) {
	return c.update(ctx, networkID, func(networkID string) (bool, error) {
		return c.api.UpdateReservation(ctx, networkID, reservationID, reservation)
	})
}

func (c *Client) DeleteReservation(ctx context.Context, networkID, reservationID string) (bool, error) {
	return c.update(ctx, networkID, func(networkID string) (bool, error) {
		return c.api.DeleteReservation(ctx, networkID, reservationID)
	})
}

func (c *Client) CreateForward(ctx context.Context, networkID string, forward map[string]any) (models.Object, error) {
	return c.getObject(ctx, networkID, func(networkID string) (json.RawMessage, error) {
		return c.api.CreateForward(ctx, networkID, forward)
	})
}

func (c *Client) UpdateForward(ctx context.Context, networkID, forwardID string, forward map[string]any) (bool, error) {
	return c.update(ctx, networkID, func(networkID string) (bool, error) {
		return c.api.UpdateForward(ctx, networkID, forwardID, forward)
	})
}

func (c *Client) DeleteForward(ctx context.Context, networkID, forwardID string) (bool, error) {
	return c.update(ctx, networkID, func(networkID string) (bool, error) {
		return c.api.DeleteForward(ctx, networkID, forwardID)
	})
}
