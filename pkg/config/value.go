package config

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Value is a raw length as written in a configuration document: a number, a
// numeric string, or absent. It is interpreted later by units.ToCanonical so
// that strict and permissive modes see the original input.
type Value struct {
	raw any
}

// Num returns a Value holding a number.
func Num(f float64) Value { return Value{raw: f} }

// Raw returns a Value holding an arbitrary decoded scalar.
func Raw(v any) Value { return Value{raw: v} }

// Interface returns the underlying decoded scalar (nil when absent).
func (v Value) Interface() any { return v.raw }

// IsSet reports whether the document supplied a value.
func (v Value) IsSet() bool { return v.raw != nil }

// Nums converts a list of numbers to Values.
func Nums(fs ...float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = Num(f)
	}
	return out
}

// MarshalJSON writes the raw scalar back out unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// UnmarshalJSON keeps numbers as json.Number to avoid a lossy float round-trip.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	v.raw = raw
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler. TOML integers arrive as int64.
func (v *Value) UnmarshalTOML(data any) error {
	v.raw = data
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v.raw = raw
	return nil
}

// MarshalYAML writes the raw scalar back out unchanged.
func (v Value) MarshalYAML() (any, error) {
	return v.raw, nil
}
