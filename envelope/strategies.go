package envelope

import "encoding/json"

// Strategy tries to find a list inside a data member. It reports false when
// the shape it looks for is absent.
type Strategy func(data json.RawMessage) ([]json.RawMessage, bool)

// List matches data that is itself a JSON array.
func List() Strategy {
	return func(data json.RawMessage) ([]json.RawMessage, bool) {
		return asList(data)
	}
}

// Nested matches an array found by following keys from data, e.g. Nested("networks", "data").
func Nested(keys ...string) Strategy {
	return func(data json.RawMessage) ([]json.RawMessage, bool) {
		raw, ok := lookup(data, keys...)
		if !ok {
			return nil, false
		}
		return asList(raw)
	}
}

// DefaultListStrategies covers the two list shapes most endpoints return: a bare
// list, or the legacy {"data": [...]} wrapper.
var DefaultListStrategies = []Strategy{List(), Nested("data")}

// ExtractList runs the strategies in order and returns the first list found.
// An empty list still counts as found.
func ExtractList(data json.RawMessage, strategies ...Strategy) ([]json.RawMessage, bool) {
	if len(strategies) == 0 {
		strategies = DefaultListStrategies
	}
	for _, strategy := range strategies {
		if items, ok := strategy(data); ok {
			return items, true
		}
	}
	return nil, false
}

// ExtractNonEmptyList is ExtractList but skips strategies that find an empty list.
func ExtractNonEmptyList(data json.RawMessage, strategies ...Strategy) ([]json.RawMessage, bool) {
	if len(strategies) == 0 {
		strategies = DefaultListStrategies
	}
	for _, strategy := range strategies {
		if items, ok := strategy(data); ok && len(items) > 0 {
			return items, true
		}
	}
	return nil, false
}

// List runs ExtractList over the envelope's data member.
func (e *Envelope) List(strategies ...Strategy) ([]json.RawMessage, bool) {
	if e == nil {
		return nil, false
	}
	return ExtractList(e.Data, strategies...)
}

func asList(raw json.RawMessage) ([]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}
