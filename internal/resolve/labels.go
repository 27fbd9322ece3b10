package resolve

import (
	"git.home.luguber.info/inful/docnav/internal/docs"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Labels maps entry paths to the text displayed for document references.
type Labels map[string]string

// For returns the label recorded for the entry at path, falling back to the
// reference's own label and then its ID.
func (l Labels) For(path string, ref sidebar.DocRef) string {
	if s, ok := l[path]; ok && s != "" {
		return s
	}
	if ref.Label != "" {
		return ref.Label
	}
	return ref.ID
}

// BuildLabels resolves the display label of every document reference in tree:
// the entry's explicit label, else the document's sidebar_label, else its
// title. index may be nil, in which case unlabeled references show their ID.
func BuildLabels(tree *sidebar.Tree, index *docs.Index) Labels {
	labels := make(Labels)
	_ = tree.Walk(func(_, path string, _ int, e sidebar.Entry) error {
		ref, ok := e.(sidebar.DocRef)
		if !ok {
			return nil
		}
		switch {
		case ref.Label != "":
			labels[path] = ref.Label
		case index != nil:
			if doc, found := index.Lookup(ref.ID); found {
				labels[path] = doc.Label()
			}
		}
		if labels[path] == "" {
			labels[path] = ref.ID
		}
		return nil
	})
	return labels
}
