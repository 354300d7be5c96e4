package envelope_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/eero-client/envelope"
	"github.com/stretchr/testify/require"
)

// TestDecode tests meta and data decoding, including a null body
func TestDecode(t *testing.T) {
	e, err := envelope.Decode(json.RawMessage(`{"meta":{"code":200,"server_time":"now"},"data":{"user_token":"T1"}}`))
	require.NoError(t, err)
	require.True(t, e.OK())
	require.True(t, e.HasData())
	require.Equal(t, "T1", e.String("user_token"))
	require.Equal(t, "", e.String("missing"))

	e, err = envelope.Decode(json.RawMessage(`null`))
	require.NoError(t, err)
	require.False(t, e.OK())
	require.False(t, e.HasData())

	_, err = envelope.Decode(json.RawMessage(`[1,2]`))
	require.Error(t, err)
}

// TestEnvelope_NotOK tests that a non 200 meta code is not a success
func TestEnvelope_NotOK(t *testing.T) {
	e, err := envelope.Decode(json.RawMessage(`{"meta":{"code":400,"error":"bad"}}`))
	require.NoError(t, err)
	require.False(t, e.OK())
	require.Equal(t, "bad", e.Meta.Error)
}

// TestExtractList tests the ordered extraction strategies
func TestExtractList(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		strategies []envelope.Strategy
		wantLen    int
		wantFound  bool
	}{
		{"bare list", `[{"id":"a"},{"id":"b"}]`, nil, 2, true},
		{"legacy data.data", `{"data":[{"id":"a"}]}`, nil, 1, true},
		{"empty list", `[]`, nil, 0, true},
		{"no list", `{"name":"x"}`, nil, 0, false},
		{"null", `null`, nil, 0, false},
		{"networks.data", `{"networks":{"data":[{"id":"N1"}]}}`, []envelope.Strategy{envelope.Nested("networks", "data"), envelope.Nested("data")}, 1, true},
		{"falls through to data.data", `{"networks":{"count":0},"data":[{"id":"N1"},{"id":"N2"}]}`, []envelope.Strategy{envelope.Nested("networks", "data"), envelope.Nested("data")}, 2, true},
		{"first strategy wins", `{"networks":[{"id":"a"}],"data":[{"id":"b"},{"id":"c"}]}`, []envelope.Strategy{envelope.Nested("networks"), envelope.Nested("data")}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, found := envelope.ExtractList(json.RawMessage(tt.data), tt.strategies...)
			require.Equal(t, tt.wantFound, found)
			require.Len(t, items, tt.wantLen)
		})
	}
}

// TestExtractNonEmptyList tests that empty lists fall through to the next strategy
func TestExtractNonEmptyList(t *testing.T) {
	data := json.RawMessage(`{"networks":{"data":[]},"data":[{"id":"N2"}]}`)

	items, found := envelope.ExtractNonEmptyList(data, envelope.Nested("networks", "data"), envelope.Nested("data"))
	require.True(t, found)
	require.Len(t, items, 1)
	require.JSONEq(t, `{"id":"N2"}`, string(items[0]))

	_, found = envelope.ExtractNonEmptyList(json.RawMessage(`{"data":[]}`))
	require.False(t, found)
}
