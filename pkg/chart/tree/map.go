// Package tree holds the in-memory option tree that chart builders produce
// and the serializer that turns it into ApexCharts configuration text.
//
// A tree is made of [Map] nodes (insertion-ordered objects), slices, plain
// JSON leaves and [Script] values. A Script is a raw client-side expression
// such as a formatter callback. The serializer writes it verbatim instead
// of quoting it, so the browser evaluates it as code.
//
// # Merging
//
// Option trees compose by deep merge: [Map.Merge] recurses into nested maps
// and overwrites every other value at the same path. Builders rely on this
// to layer base options, per-aspect options and data placeholders without
// dropping fields.
package tree

import (
	"strings"
)

// Map is an insertion-ordered mapping from string keys to tree values.
// The zero value is not usable; create maps with [New]. Read methods are
// safe on a nil *Map and behave as on an empty map.
type Map struct {
	keys []string
	vals map[string]any
}

// New returns an empty map.
func New() *Map {
	return &Map{vals: make(map[string]any)}
}

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position.
func (m *Map) Set(key string, v any) *Map {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Delete removes key from the map.
func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// SetPath stores v at a dot-separated path such as "xaxis.lines.show",
// creating intermediate maps as needed. An intermediate value that is not
// a map is replaced.
func (m *Map) SetPath(path string, v any) *Map {
	parts := strings.Split(path, ".")
	cur := m
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.vals[p].(*Map)
		if !ok {
			next = New()
			cur.Set(p, next)
		}
		cur = next
	}
	cur.Set(parts[len(parts)-1], v)
	return m
}

// GetPath returns the value at a dot-separated path.
func (m *Map) GetPath(path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := m
	for i, p := range parts {
		v, ok := cur.Get(p)
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		if cur, ok = v.(*Map); !ok {
			return nil, false
		}
	}
	return nil, false
}

// Merge deep-merges other into m and returns m. Nested maps present on
// both sides merge recursively; any other value from other replaces the
// value in m. Maps copied from other are cloned so the trees never share
// nodes.
func (m *Map) Merge(other *Map) *Map {
	if other == nil {
		return m
	}
	for _, k := range other.keys {
		ov := other.vals[k]
		om, isMap := ov.(*Map)
		if !isMap {
			m.Set(k, ov)
			continue
		}
		if cur, ok := m.vals[k].(*Map); ok && cur != nil && om != nil {
			cur.Merge(om)
			continue
		}
		m.Set(k, om.Clone())
	}
	return m
}

// Clone returns a deep copy of the map structure. Leaf values and slices
// are shared.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys: make([]string, len(m.keys)),
		vals: make(map[string]any, len(m.vals)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.vals {
		if nested, ok := v.(*Map); ok {
			v = nested.Clone()
		}
		out.vals[k] = v
	}
	return out
}

// MarshalJSON encodes the map with [MarshalStrict] in compact form, so a
// Map nested in a JSON document keeps the document valid.
func (m *Map) MarshalJSON() ([]byte, error) {
	return MarshalStrict(m, false)
}
