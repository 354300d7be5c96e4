// Package models holds the payloads the vendor API returns. Fields the API
// sends inconsistently are kept loose (Object or string) so a surprising
// shape never fails a whole decode.
package models

import (
	"encoding/json"

	"github.com/jrsteele09/eero-client/internal/utils"
	"github.com/pkg/errors"
)

// Object is a resource with no fixed shape (settings, insights, routing, ...).
type Object map[string]any

// Decode unmarshals raw into a T.
func Decode[T any](raw json.RawMessage) (*T, error) {
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, errors.Wrapf(err, "[models.Decode] %T", v)
	}
	return v, nil
}

// DecodeList unmarshals each item of a list into a T.
func DecodeList[T any](items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := Decode[T](item)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// idOrURL returns id, or the last segment of url when id is empty.
func idOrURL(id, url string) string {
	if id != "" {
		return id
	}
	if url == "" {
		return ""
	}
	return utils.LastPathSegment(url)
}
