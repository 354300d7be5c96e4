package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Resources with no fixed shape. Each is read with GET networks/{id}/<resource>
// and, where the API allows it, changed with a PUT or POST of a loose object.
const (
	SettingsResource       = "settings"
	InsightsResource       = "insights"
	RoutingResource        = "routing"
	ThreadResource         = "thread"
	SupportResource        = "support"
	UpdatesResource        = "updates"
	TransferResource       = "transfer"
	ACCompatResource       = "ac_compat"
	OUICheckResource       = "ouicheck"
	PasswordResource       = "password"
	BurstReportersResource = "burst_reporters"
)

// GetResource reads networks/{id}/<resource>[/<id>].
func (c *Client) GetResource(ctx context.Context, networkID, resource string, ids ...string) (json.RawMessage, error) {
	parts := []string{resource}
	for _, id := range ids {
		parts = append(parts, escape(id))
	}
	path, err := networkPath(networkID, parts...)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("network_id", networkID).Str("resource", resource).Msg("Getting network resource")
	return c.getData(ctx, path)
}

func (c *Client) updateResource(ctx context.Context, method, networkID, resource string, body any) (bool, error) {
	path, err := networkPath(networkID, resource)
	if err != nil {
		return false, err
	}
	return c.mutate(ctx, method, path, body)
}

func (c *Client) GetSettings(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, SettingsResource)
}

func (c *Client) UpdateSettings(ctx context.Context, networkID string, settings map[string]any) (bool, error) {
	return c.updateResource(ctx, http.MethodPut, networkID, SettingsResource, settings)
}

func (c *Client) GetInsights(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, InsightsResource)
}

func (c *Client) GetInsight(ctx context.Context, networkID, insightID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, InsightsResource, insightID)
}

func (c *Client) GetRouting(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, RoutingResource)
}

func (c *Client) UpdateRouting(ctx context.Context, networkID string, routing map[string]any) (bool, error) {
	return c.updateResource(ctx, http.MethodPut, networkID, RoutingResource, routing)
}

func (c *Client) GetThread(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, ThreadResource)
}

func (c *Client) UpdateThread(ctx context.Context, networkID string, thread map[string]any) (bool, error) {
	return c.updateResource(ctx, http.MethodPut, networkID, ThreadResource, thread)
}

func (c *Client) GetSupport(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, SupportResource)
}

// CreateSupportTicket opens a support ticket and returns the created ticket.
func (c *Client) CreateSupportTicket(ctx context.Context, networkID string, ticket map[string]any) (json.RawMessage, error) {
	path, err := networkPath(networkID, SupportResource)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPost, path, ticket)
}

func (c *Client) GetUpdates(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, UpdatesResource)
}

// InstallUpdates asks the network to install pending firmware updates.
func (c *Client) InstallUpdates(ctx context.Context, networkID string) (bool, error) {
	return c.updateResource(ctx, http.MethodPost, networkID, UpdatesResource, map[string]any{})
}

// GetTransfer returns transfer statistics for the network, or for one device when deviceID is set.
func (c *Client) GetTransfer(ctx context.Context, networkID, deviceID string) (json.RawMessage, error) {
	if deviceID == "" {
		return c.GetResource(ctx, networkID, TransferResource)
	}
	return c.GetResource(ctx, networkID, TransferResource, deviceID)
}

func (c *Client) GetACCompat(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, ACCompatResource)
}

func (c *Client) GetOUICheck(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, OUICheckResource)
}

// CheckOUI looks up the manufacturer of a MAC address.
func (c *Client) CheckOUI(ctx context.Context, networkID, macAddress string) (json.RawMessage, error) {
	path, err := networkPath(networkID, OUICheckResource)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPost, path, map[string]any{"mac_address": macAddress})
}

func (c *Client) GetPassword(ctx context.Context, networkID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, PasswordResource)
}

// UpdatePassword changes the main network's wifi password.
func (c *Client) UpdatePassword(ctx context.Context, networkID, password string) (bool, error) {
	return c.updateResource(ctx, http.MethodPut, networkID, PasswordResource, map[string]any{"password": password})
}

func (c *Client) GetBurstReporters(ctx context.Context, networkID string) ([]json.RawMessage, error) {
	path, err := networkPath(networkID, BurstReportersResource)
	if err != nil {
		return nil, err
	}
	return c.getList(ctx, path)
}

func (c *Client) GetBurstReporter(ctx context.Context, networkID, reporterID string) (json.RawMessage, error) {
	return c.GetResource(ctx, networkID, BurstReportersResource, reporterID)
}
