package sidebar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMap_DecodeKeepsOrder(t *testing.T) {
	src := `
zeta: [b]
alpha:
  - type: category
    label: Nested
    items: [a]
`
	var m OrderedMap
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))
	assert.Equal(t, []string{"zeta", "alpha"}, m.Keys())

	alpha, _ := m.Get("alpha")
	nested, ok := alpha.([]any)[0].(*OrderedMap)
	require.True(t, ok)
	assert.Equal(t, []string{"type", "label", "items"}, nested.Keys())
}

func TestOrderedMap_DecodeRejectsDuplicateKeys(t *testing.T) {
	var m OrderedMap
	err := yaml.Unmarshal([]byte("a: [x]\na: [y]\n"), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate key "a"`)
}

func TestOrderedMap_DecodeRejectsSequence(t *testing.T) {
	var m OrderedMap
	err := yaml.Unmarshal([]byte("- a\n- b\n"), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a mapping")
}

func TestOrderedMap_MarshalJSONKeepsOrder(t *testing.T) {
	m := NewOrderedMap("type", "category", "label", "Guides", "items", []any{"a", NewOrderedMap("type", "html", "value", "plain")})
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"category","label":"Guides","items":["a",{"type":"html","value":"plain"}]}`, string(out))
}

func TestOrderedMap_MarshalYAMLKeepsOrder(t *testing.T) {
	m := NewOrderedMap("z", 1, "a", NewOrderedMap("y", true, "b", "s"))
	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "z: 1\na:\n    y: true\n    b: s\n", string(out))
}

func TestOrderedMap_SetKeepsPosition(t *testing.T) {
	m := NewOrderedMap("a", 1, "b", 2)
	m.Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, 3, v)
}
