package sidebar

import "slices"

// Kind tags the variant of an Entry.
type Kind string

const (
	KindDoc      Kind = "doc"
	KindCategory Kind = "category"
	KindLink     Kind = "link"
	KindHTML     Kind = "html"
)

// Entry is a single sidebar item. The set of implementations is closed:
// DocRef, Category, Link and HTML.
type Entry interface {
	Kind() Kind
	sealed()
}

// DocRef references a content document by identifier. Label, when set,
// overrides the document's own title in the rendered sidebar.
type DocRef struct {
	ID    string
	Label string
}

func (DocRef) Kind() Kind { return KindDoc }
func (DocRef) sealed()    {}

// Link is a navigation item pointing at a URL rather than a document.
type Link struct {
	Label string
	Href  string
}

func (Link) Kind() Kind { return KindLink }
func (Link) sealed()    {}

// HTML is raw markup placed in the sidebar.
type HTML struct {
	Value string
}

func (HTML) Kind() Kind { return KindHTML }
func (HTML) sealed()    {}

// Category is a labeled, collapsible group of child entries.
type Category struct {
	label       string
	items       []Entry
	collapsed   optionalBool
	collapsible optionalBool
	link        string
}

func (Category) Kind() Kind { return KindCategory }
func (Category) sealed()    {}

// Label returns the category's display label.
func (c Category) Label() string { return c.label }

// Items returns a copy of the category's children in display order.
func (c Category) Items() []Entry { return slices.Clone(c.items) }

// Len returns the number of direct children.
func (c Category) Len() int { return len(c.items) }

// Collapsed reports the collapsed flag and whether it was set explicitly.
// An unset flag leaves the choice to the renderer.
func (c Category) Collapsed() (collapsed, set bool) { return c.collapsed.get() }

// Collapsible reports the collapsible flag and whether it was set explicitly.
func (c Category) Collapsible() (collapsible, set bool) { return c.collapsible.get() }

// LinkedDoc returns the document the category label links to, if any.
func (c Category) LinkedDoc() (string, bool) { return c.link, c.link != "" }

// CategoryOption configures a Category built with NewCategory.
type CategoryOption func(*Category)

// Collapsed sets the collapsed flag.
func Collapsed(v bool) CategoryOption {
	return func(c *Category) { c.collapsed = someBool(v) }
}

// Collapsible sets the collapsible flag.
func Collapsible(v bool) CategoryOption {
	return func(c *Category) { c.collapsible = someBool(v) }
}

// LinkTo makes the category label link to a document.
func LinkTo(docID string) CategoryOption {
	return func(c *Category) { c.link = docID }
}

// NewCategory constructs a Category. It performs no validation; trees
// assembled by hand should be passed through Build(tree.Raw()) to be checked.
func NewCategory(label string, items []Entry, opts ...CategoryOption) Category {
	c := Category{label: label, items: slices.Clone(items)}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

type optionalBool uint8

const (
	boolUnset optionalBool = iota
	boolFalse
	boolTrue
)

func someBool(v bool) optionalBool {
	if v {
		return boolTrue
	}
	return boolFalse
}

func (o optionalBool) get() (value, set bool) {
	return o == boolTrue, o != boolUnset
}
