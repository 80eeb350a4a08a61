// Package safemap provides an insertion-ordered map that refuses to overwrite
// an existing key. It is used wherever key/value rows from a report are folded
// into a mapping, so that a repeated key surfaces as an error instead of
// silently replacing the earlier value.
package safemap

import (
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/calparse/internal/errs"
)

// Map is an insertion-ordered mapping with insert-or-fail semantics.
// The zero value is ready to use.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// New creates an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{values: make(map[string]V)}
}

// Insert adds key with value. It returns an errs.ErrDuplicateKey error if the
// key is already present, leaving the existing value untouched.
func (m *Map[V]) Insert(key string, value V) error {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; exists {
		return errs.New(errs.KindDuplicateKey, "safemap.Insert", "already have key %q", key)
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return nil
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every entry in insertion order.
func (m *Map[V]) Each(fn func(key string, value V)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// FromPairs builds a Map from key/value pairs, failing on the first
// duplicate key.
func FromPairs[V any](keys []string, values []V) (*Map[V], error) {
	n := len(keys)
	if len(values) < n {
		n = len(values)
	}
	m := New[V]()
	for i := 0; i < n; i++ {
		if err := m.Insert(keys[i], values[i]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MarshalYAML emits the map as a YAML mapping in insertion order.
func (m *Map[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return node, nil
	}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
