package sidebar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed mapping that remembers insertion order.
// Sidebar files are decoded into OrderedMap so that sidebar order and the
// order of shorthand categories survive decoding.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap returns an OrderedMap populated from alternating key/value
// pairs. It panics on an odd argument count or a non-string key.
func NewOrderedMap(kv ...any) *OrderedMap {
	if len(kv)%2 != 0 {
		panic("sidebar: NewOrderedMap needs key/value pairs")
	}
	m := &OrderedMap{}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("sidebar: NewOrderedMap key %v is not a string", kv[i]))
		}
		m.Set(key, kv[i+1])
	}
	return m
}

// FromMap converts a plain map, ordering keys lexically.
func FromMap(in map[string]any) *OrderedMap {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	m := &OrderedMap{}
	for _, k := range keys {
		m.Set(k, in[k])
	}
	return m
}

// Set stores value under key. A new key is appended; an existing key keeps its position.
func (m *OrderedMap) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of keys.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON writes the mapping with keys in insertion order.
func (m OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits a mapping node with keys in insertion order.
func (m OrderedMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node, keeping key order at every depth:
// nested mappings become *OrderedMap, sequences become []any.
func (m *OrderedMap) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeNode(node)
	if err != nil {
		return err
	}
	om, ok := decoded.(*OrderedMap)
	if !ok {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node))
	}
	*m = *om
	return nil
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.MappingNode:
		m := &OrderedMap{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			if _, dup := m.Get(keyNode.Value); dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", keyNode.Line, keyNode.Value)
			}
			v, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return "a scalar"
	default:
		return "an empty document"
	}
}
