package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// ContentFilterKeys are the content filter settings the API accepts.
var ContentFilterKeys = map[string]struct{}{
	"adblock":            {},
	"adblock_plus":       {},
	"safe_search":        {},
	"block_malware":      {},
	"block_illegal":      {},
	"block_violent":      {},
	"block_adult":        {},
	"youtube_restricted": {},
}

func (c *Client) GetProfiles(ctx context.Context, networkID string) ([]json.RawMessage, error) {
	path, err := networkPath(networkID, "profiles")
	if err != nil {
		return nil, err
	}
	return c.getList(ctx, path)
}

func (c *Client) GetProfile(ctx context.Context, networkID, profileID string) (json.RawMessage, error) {
	path, err := networkPath(networkID, "profiles", escape(profileID))
	if err != nil {
		return nil, err
	}
	return c.getData(ctx, path)
}

// PauseProfile pauses or resumes internet access for every device in a profile.
func (c *Client) PauseProfile(ctx context.Context, networkID, profileID string, paused bool) (bool, error) {
	path, err := networkPath(networkID, "profiles", escape(profileID))
	if err != nil {
		return false, err
	}
	return c.mutate(ctx, http.MethodPut, path, map[string]any{"paused": paused})
}

// UpdateProfileContentFilter changes content filter settings. Unknown keys are dropped.
func (c *Client) UpdateProfileContentFilter(ctx context.Context, networkID, profileID string, filters map[string]bool) (bool, error) {
	path, err := networkPath(networkID, "profiles", escape(profileID))
	if err != nil {
		return false, err
	}

	contentFilter := make(map[string]bool, len(filters))
	for key, value := range filters {
		if _, ok := ContentFilterKeys[key]; !ok {
			c.logger.Warn().Str("setting", key).Msg("Ignoring invalid filter setting")
			continue
		}
		contentFilter[key] = value
	}
	return c.mutate(ctx, http.MethodPut, path, map[string]any{"content_filter": contentFilter})
}

// UpdateProfileBlockList replaces the custom block list, or the allow list when block is false.
func (c *Client) UpdateProfileBlockList(ctx context.Context, networkID, profileID string, domains []string, block bool) (bool, error) {
	path, err := networkPath(networkID, "profiles", escape(profileID))
	if err != nil {
		return false, err
	}

	listType := "custom_allow_list"
	if block {
		listType = "custom_block_list"
	}
	if domains == nil {
		domains = []string{}
	}
	return c.mutate(ctx, http.MethodPut, path, map[string]any{listType: domains})
}
