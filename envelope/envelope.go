// Package envelope decodes the {"meta": ..., "data": ...} wrapper every vendor
// API response uses, and locates lists inside "data" whatever shape the
// endpoint happens to return.
package envelope

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// Meta is the status block of a response.
type Meta struct {
	Code       int    `json:"code"`
	Error      string `json:"error,omitempty"`
	ServerTime string `json:"server_time,omitempty"`
}

// Envelope is a decoded response.
type Envelope struct {
	Meta Meta            `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// Decode parses a response body. A null or empty body gives an empty envelope.
func Decode(body json.RawMessage) (*Envelope, error) {
	e := &Envelope{}
	if isNull(body) {
		return e, nil
	}
	if err := json.Unmarshal(body, e); err != nil {
		return nil, errors.Wrap(err, "[envelope.Decode] unmarshal")
	}
	return e, nil
}

// OK reports whether meta.code is 200, the success test for mutations.
func (e *Envelope) OK() bool {
	return e != nil && e.Meta.Code == http.StatusOK
}

// HasData reports whether the envelope carries a non-null data member.
func (e *Envelope) HasData() bool {
	return e != nil && !isNull(e.Data)
}

// DecodeData unmarshals data into v. Missing data leaves v untouched.
func (e *Envelope) DecodeData(v any) error {
	if !e.HasData() {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return errors.Wrap(err, "[Envelope.DecodeData] unmarshal")
	}
	return nil
}

// Field returns the raw value of a key inside data, following nested keys.
func (e *Envelope) Field(keys ...string) (json.RawMessage, bool) {
	if e == nil {
		return nil, false
	}
	return lookup(e.Data, keys...)
}

// String returns a string member of data, empty when absent or not a string.
func (e *Envelope) String(keys ...string) string {
	raw, ok := e.Field(keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func lookup(raw json.RawMessage, keys ...string) (json.RawMessage, bool) {
	current := raw
	for _, key := range keys {
		if isNull(current) {
			return nil, false
		}
		var object map[string]json.RawMessage
		if err := json.Unmarshal(current, &object); err != nil {
			return nil, false
		}
		next, ok := object[key]
		if !ok {
			return nil, false
		}
		current = next
	}
	if isNull(current) {
		return nil, false
	}
	return current, true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
