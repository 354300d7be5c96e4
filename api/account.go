package api

import (
	"context"
	"encoding/json"
)

const accountPath = "account"

// GetAccount returns the account of the logged in user.
func (c *Client) GetAccount(ctx context.Context) (json.RawMessage, error) {
	c.logger.Debug().Msg("Getting account")
	return c.getData(ctx, accountPath)
}
