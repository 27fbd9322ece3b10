package sidebar

import (
	"errors"
	"fmt"
	"slices"
)

// Tree is a validated, immutable set of named sidebars.
type Tree struct {
	names    []string
	sidebars map[string][]Entry
	warnings []Issue
}

// Names returns the sidebar names in order.
func (t *Tree) Names() []string { return slices.Clone(t.names) }

// Len returns the number of sidebars.
func (t *Tree) Len() int { return len(t.names) }

// Sidebar returns a copy of the top-level entries of the named sidebar.
func (t *Tree) Sidebar(name string) ([]Entry, bool) {
	entries, ok := t.sidebars[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(entries), true
}

// Warnings returns the non-fatal issues recorded while building.
func (t *Tree) Warnings() []Issue { return slices.Clone(t.warnings) }

// SkipCategory can be returned by a WalkFunc visiting a Category to skip its children.
var SkipCategory = errors.New("skip category")

// WalkFunc is called for every entry in display order. depth is 0 for
// top-level entries.
type WalkFunc func(sidebar, path string, depth int, e Entry) error

// Walk visits every entry depth-first in display order. Paths use the same
// notation as validation issues.
func (t *Tree) Walk(fn WalkFunc) error {
	for _, name := range t.names {
		if err := walkEntries(name, name, 0, t.sidebars[name], fn); err != nil {
			return err
		}
	}
	return nil
}

func walkEntries(sidebar, prefix string, depth int, entries []Entry, fn WalkFunc) error {
	for i, e := range entries {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		err := fn(sidebar, path, depth, e)
		if errors.Is(err, SkipCategory) {
			continue
		}
		if err != nil {
			return err
		}
		if c, ok := e.(Category); ok {
			if err := walkEntries(sidebar, path+".items", depth+1, c.items, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// DocIDs returns every leaf document reference in display order, across
// all sidebars. Category links are not included.
func (t *Tree) DocIDs() []string {
	var ids []string
	_ = t.Walk(func(_, _ string, _ int, e Entry) error {
		if ref, ok := e.(DocRef); ok {
			ids = append(ids, ref.ID)
		}
		return nil
	})
	return ids
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Sidebars   int
	Docs       int
	Categories int
	Links      int
	HTML       int
	// MaxDepth is the deepest nesting level; a flat sidebar has depth 1.
	MaxDepth int
}

// Stats counts entries by kind.
func (t *Tree) Stats() Stats {
	s := Stats{Sidebars: len(t.names)}
	_ = t.Walk(func(_, _ string, depth int, e Entry) error {
		s.MaxDepth = max(s.MaxDepth, depth+1)
		switch e.(type) {
		case DocRef:
			s.Docs++
		case Category:
			s.Categories++
		case Link:
			s.Links++
		case HTML:
			s.HTML++
		}
		return nil
	})
	return s
}
