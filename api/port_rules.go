package api

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	reservationsResource = "reservations"
	forwardsResource     = "forwards"
)

func (c *Client) listRules(ctx context.Context, networkID, resource string) ([]json.RawMessage, error) {
	path, err := networkPath(networkID, resource)
	if err != nil {
		return nil, err
	}
	return c.getList(ctx, path)
}

func (c *Client) createRule(ctx context.Context, networkID, resource string, rule map[string]any) (json.RawMessage, error) {
	path, err := networkPath(networkID, resource)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPost, path, rule)
}

func (c *Client) updateRule(ctx context.Context, networkID, resource, ruleID string, rule map[string]any) (bool, error) {
	path, err := networkPath(networkID, resource, escape(ruleID))
	if err != nil {
		return false, err
	}
	return c.mutate(ctx, http.MethodPut, path, rule)
}

func (c *Client) deleteRule(ctx context.Context, networkID, resource, ruleID string) (bool, error) {
	path, err := networkPath(networkID, resource, escape(ruleID))
	if err != nil {
		return false, err
	}
	return c.mutate(ctx, http.MethodDelete, path, nil)
}

// GetReservations lists the DHCP reservations of a network.
func (c *Client) GetReservations(ctx context.Context, networkID string) ([]json.RawMessage, error) {
	return c.listRules(ctx, networkID, reservationsResource)
}

// CreateReservation adds a DHCP reservation and returns it.
func (c *Client) CreateReservation(ctx context.Context, networkID string, reservation map[string]any) (json.RawMessage, error) {
	return c.createRule(ctx, networkID, reservationsResource, reservation)
}

func (c *Client) UpdateReservation(ctx context.Context, networkID, reservationID string, reservation map[string]any) (bool, error) {
	return c.updateRule(ctx, networkID, reservationsResource, reservationID, reservation)
}

func (c *Client) DeleteReservation(ctx context.Context, networkID, reservationID string) (bool, error) {
	return c.deleteRule(ctx, networkID, reservationsResource, reservationID)
}

// GetForwards lists the port forwards of a network.
func (c *Client) GetForwards(ctx context.Context, networkID string) ([]json.RawMessage, error) {
	return c.listRules(ctx, networkID, forwardsResource)
}

// CreateForward adds a port forward and returns it.
func (c *Client) CreateForward(ctx context.Context, networkID string, forward map[string]any) (json.RawMessage, error) {
	return c.createRule(ctx, networkID, forwardsResource, forward)
}

func (c *Client) UpdateForward(ctx context.Context, networkID, forwardID string, forward map[string]any) (bool, error) {
	return c.updateRule(ctx, networkID, forwardsResource, forwardID, forward)
}

func (c *Client) DeleteForward(ctx context.Context, networkID, forwardID string) (bool, error) {
	return c.deleteRule(ctx, networkID, forwardsResource, forwardID)
}
