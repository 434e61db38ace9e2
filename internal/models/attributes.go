// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package models

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// ValueKind discriminates the variants of Value.
type ValueKind uint8

const (
	KindString ValueKind = iota + 1
	KindNumber
	KindBool
	KindMap
)

// String returns the kind name used in error messages.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is one custom attribute value: a string, a number, a boolean or a
// nested map of values. The zero Value is invalid and never stored.
//
// Values are schema-agnostic. Only the per-context policy gives them meaning;
// the clustering engine copies them around without inspecting them.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	m    map[string]Value
}

// String constructs a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Map constructs a nested map value. The map is copied.
func Map(m map[string]Value) Value {
	return Value{kind: KindMap, m: Attributes(m).Clone()}
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether v holds a variant.
func (v Value) IsValid() bool { return v.kind != 0 }

// AsString returns the string variant.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric variant.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean variant.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsMap returns a copy of the nested map variant.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return Attributes(v.m).Clone(), true
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if v.kind == KindMap {
		return Value{kind: KindMap, m: Attributes(v.m).Clone()}
	}
	return v
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindMap:
		return Attributes(v.m).Equal(o.m)
	default:
		return true
	}
}

// Interface converts v to plain Go values (string, float64, bool, map[string]any).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, inner := range v.m {
			out[k] = inner.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromAny converts decoded JSON or YAML data into a Value. Integers are
// widened to float64. Arrays and nulls are rejected.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t.Clone(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return Number(f), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, inner := range t {
			iv, err := FromAny(inner)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = iv
		}
		return Value{kind: KindMap, m: m}, nil
	case map[any]any:
		m := make(map[string]Value, len(t))
		for k, inner := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("map key %v is not a string", k)
			}
			iv, err := FromAny(inner)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", ks, err)
			}
			m[ks] = iv
		}
		return Value{kind: KindMap, m: m}, nil
	case nil:
		return Value{}, fmt.Errorf("null is not a valid attribute value")
	default:
		return Value{}, fmt.Errorf("unsupported attribute value type %T", x)
	}
}

// MarshalJSON encodes v as its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("cannot encode invalid attribute value")
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes any JSON string, number, boolean or object.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Attributes is the open key/value map attached to a timeline event.
type Attributes map[string]Value

// Clone returns a deep copy. A nil map clones to an empty, non-nil map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v.Clone()
	}
	return out
}

// Equal reports deep equality.
func (a Attributes) Equal(o Attributes) bool {
	if len(a) != len(o) {
		return false
	}
	for k, v := range a {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Keys returns the keys in ascending order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SeedDefaults inserts a copy of each default whose key is absent and
// returns the inserted keys. Existing keys are never touched.
func (a Attributes) SeedDefaults(defaults Attributes) []string {
	var added []string
	for _, k := range defaults.Keys() {
		if _, exists := a[k]; exists {
			continue
		}
		a[k] = defaults[k].Clone()
		added = append(added, k)
	}
	return added
}

// AttributesFromAny converts a decoded map into Attributes.
func AttributesFromAny(m map[string]any) (Attributes, error) {
	out := make(Attributes, len(m))
	for k, raw := range m {
		v, err := FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}
