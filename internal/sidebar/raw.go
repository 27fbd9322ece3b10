package sidebar

// Raw returns the tree in the loosely typed input form accepted by
// BuildOrdered. Documents without a label become plain strings; every
// other entry becomes an *OrderedMap with "type" first.
func (t *Tree) Raw() *OrderedMap {
	out := &OrderedMap{}
	for _, name := range t.names {
		out.Set(name, rawEntries(t.sidebars[name]))
	}
	return out
}

func rawEntries(entries []Entry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, RawEntry(e))
	}
	return out
}

// RawEntry converts a single entry to its loosely typed form.
func RawEntry(e Entry) any {
	switch v := e.(type) {
	case DocRef:
		if v.Label == "" {
			return v.ID
		}
		return NewOrderedMap("type", string(KindDoc), "id", v.ID, "label", v.Label)
	case Category:
		m := NewOrderedMap("type", string(KindCategory), "label", v.label, "items", rawEntries(v.items))
		if collapsed, set := v.Collapsed(); set {
			m.Set("collapsed", collapsed)
		}
		if collapsible, set := v.Collapsible(); set {
			m.Set("collapsible", collapsible)
		}
		if v.link != "" {
			m.Set("link", NewOrderedMap("type", string(KindDoc), "id", v.link))
		}
		return m
	case Link:
		return NewOrderedMap("type", string(KindLink), "label", v.Label, "href", v.Href)
	case HTML:
		return NewOrderedMap("type", string(KindHTML), "value", v.Value)
	default:
		return nil
	}
}
