// Package reducer holds the plumbing shared by the domain reducers: the
// action wire envelope and copy-on-write sequence helpers.
package reducer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Envelope is the wire form of an action: {"type": "...", "payload": ...}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ParseEnvelope decodes the outer action document.
func ParseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode action: %w", err)
	}
	if env.Type == "" {
		return env, fmt.Errorf("decode action: missing type")
	}
	return env, nil
}

// Payload decodes the envelope payload into T.
func Payload[T any](env Envelope) (T, error) {
	var v T
	if len(env.Payload) == 0 || bytes.Equal(bytes.TrimSpace(env.Payload), []byte("null")) {
		return v, fmt.Errorf("%s: missing payload", env.Type)
	}
	if err := json.Unmarshal(env.Payload, &v); err != nil {
		return v, fmt.Errorf("%s: %w", env.Type, err)
	}
	return v, nil
}

// Encode builds the wire form of an action. A nil payload is omitted.
func Encode(typ string, payload any) ([]byte, error) {
	env := Envelope{Type: typ}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", typ, err)
		}
		env.Payload = b
	}
	return json.Marshal(env)
}

// Append returns a new sequence with v at the end. items is not modified.
func Append[T any](items []T, v T) []T {
	return append(slices.Clip(items), v)
}

// Without returns items minus every element whose id matches. When nothing
// matches the input slice is returned as is.
func Without[T any](items []T, id string, idOf func(T) string) []T {
	match := func(v T) bool { return idOf(v) == id }
	if !slices.ContainsFunc(items, match) {
		return items
	}
	return slices.DeleteFunc(slices.Clone(items), match)
}

// Update applies fn to the first element whose id matches, on a copy.
// When nothing matches the input slice is returned as is.
func Update[T any](items []T, id string, idOf func(T) string, fn func(T) T) []T {
	i := slices.IndexFunc(items, func(v T) bool { return idOf(v) == id })
	if i < 0 {
		return items
	}
	out := slices.Clone(items)
	out[i] = fn(out[i])
	return out
}
