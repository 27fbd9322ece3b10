package sidebar

import (
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DuplicatePolicy decides what happens when a document is referenced more than once.
type DuplicatePolicy int

const (
	// DuplicateError fails the build. This is the default.
	DuplicateError DuplicatePolicy = iota
	// DuplicateWarn keeps every occurrence and records a warning on the tree.
	DuplicateWarn
)

func (p DuplicatePolicy) String() string {
	if p == DuplicateWarn {
		return "warn"
	}
	return "error"
}

type options struct {
	duplicates DuplicatePolicy
	logger     *slog.Logger
}

// Option configures Build.
type Option func(*options)

// WithDuplicatePolicy sets the duplicate document policy.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) { o.duplicates = p }
}

// WithLogger routes build warnings to logger instead of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Build validates raw and returns the resulting tree. Sidebars are ordered
// by name because a Go map carries no order; use BuildOrdered to keep the
// order of a decoded file.
func Build(raw map[string]any, opts ...Option) (*Tree, error) {
	return BuildOrdered(FromMap(raw), opts...)
}

// BuildOrdered validates raw and returns the resulting tree, keeping
// sidebars in raw's key order. On failure the error wraps a
// *ValidationError with every issue found and no tree is returned.
func BuildOrdered(raw *OrderedMap, opts ...Option) (*Tree, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	b := &builder{opts: o, seen: make(map[string]string)}
	tree := &Tree{sidebars: make(map[string][]Entry, raw.Len())}

	for _, name := range raw.Keys() {
		if strings.TrimSpace(name) == "" {
			b.fail(fmt.Sprintf("%q", name), "sidebar name must not be empty")
			continue
		}
		value, _ := raw.Get(name)
		tree.names = append(tree.names, name)
		tree.sidebars[name] = b.sidebar(name, value)
	}

	if len(b.issues) > 0 {
		return nil, newValidationFailure(b.issues)
	}

	tree.warnings = b.warnings
	for _, w := range b.warnings {
		o.logger.Warn("Sidebar warning", logfields.EntryPath(w.Path), slog.String("message", w.Message))
	}
	stats := tree.Stats()
	o.logger.Debug("Sidebar tree built",
		slog.Int("sidebars", stats.Sidebars),
		slog.Int("docs", stats.Docs),
		slog.Int("categories", stats.Categories),
		slog.Int("warnings", len(b.warnings)))
	return tree, nil
}

type builder struct {
	opts     options
	issues   []Issue
	warnings []Issue
	// seen maps each document ID to the path where it was first listed.
	seen map[string]string
}

func (b *builder) fail(path, msg string) {
	b.issues = append(b.issues, Issue{Path: path, Message: msg})
}

func (b *builder) warn(path, msg string) {
	b.warnings = append(b.warnings, Issue{Path: path, Message: msg})
}

func (b *builder) sidebar(path string, value any) []Entry {
	if seq, ok := asSequence(value); ok {
		return b.sequence(path, seq)
	}
	if obj, ok := asObject(value); ok {
		return b.shorthand(path, obj)
	}
	b.fail(path, fmt.Sprintf("sidebar must be a sequence of entries, got %s", describe(value)))
	return nil
}

func (b *builder) sequence(path string, items []any) []Entry {
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		entries = append(entries, b.entry(fmt.Sprintf("%s[%d]", path, i), item)...)
	}
	return entries
}

// entry returns a slice because a shorthand object expands into several categories.
func (b *builder) entry(path string, value any) []Entry {
	if id, ok := value.(string); ok {
		if ref, ok := b.docRef(path, id, ""); ok {
			return []Entry{ref}
		}
		return nil
	}
	if obj, ok := asObject(value); ok {
		return b.object(path, obj)
	}
	b.fail(path, fmt.Sprintf("entry must be a document identifier or an object, got %s", describe(value)))
	return nil
}

func (b *builder) object(path string, obj *OrderedMap) []Entry {
	rawType, hasType := obj.Get("type")
	if !hasType {
		if _, hasItems := obj.Get("items"); hasItems {
			return b.category(path, obj)
		}
		if isShorthand(obj) {
			return b.shorthand(path, obj)
		}
		b.fail(path, `object is missing "type"`)
		return nil
	}

	typ, ok := rawType.(string)
	if !ok {
		b.fail(path, fmt.Sprintf(`"type" must be a string, got %s`, describe(rawType)))
		return nil
	}

	switch Kind(typ) {
	case KindCategory:
		return b.category(path, obj)
	case KindDoc:
		return b.docObject(path, obj)
	case KindLink:
		return b.link(path, obj)
	case KindHTML:
		return b.html(path, obj)
	default:
		b.fail(path, fmt.Sprintf("unknown entry type %q", typ))
		return nil
	}
}

func (b *builder) docRef(path, id, label string) (DocRef, bool) {
	if strings.TrimSpace(id) == "" {
		b.fail(path, "document identifier must not be empty")
		return DocRef{}, false
	}
	if strings.TrimSpace(id) != id {
		b.fail(path, fmt.Sprintf("document identifier %q has surrounding whitespace", id))
		return DocRef{}, false
	}
	b.claim(path, id)
	return DocRef{ID: id, Label: label}, true
}

// claim records a document reference and applies the duplicate policy.
func (b *builder) claim(path, id string) {
	first, dup := b.seen[id]
	if !dup {
		b.seen[id] = path
		return
	}
	issue := Issue{
		Path:    path,
		Message: fmt.Sprintf("duplicate document reference %q (first listed at %s)", id, first),
		DocID:   id,
	}
	if b.opts.duplicates == DuplicateWarn {
		b.warnings = append(b.warnings, issue)
		return
	}
	b.issues = append(b.issues, issue)
}

func (b *builder) docObject(path string, obj *OrderedMap) []Entry {
	b.checkFields(path, obj, "type", "id", "label")
	id, ok := b.requiredString(path, obj, "id")
	if !ok {
		return nil
	}
	label, _ := b.optionalString(path, obj, "label")
	if ref, ok := b.docRef(path, id, label); ok {
		return []Entry{ref}
	}
	return nil
}

func (b *builder) category(path string, obj *OrderedMap) []Entry {
	b.checkFields(path, obj, "type", "label", "items", "collapsed", "collapsible", "link")

	label, labelOK := b.requiredString(path, obj, "label")
	if labelOK && strings.TrimSpace(label) == "" {
		b.fail(path, "category label must not be empty")
	}

	c := Category{label: label}
	if rawLink, ok := obj.Get("link"); ok {
		c.link = b.categoryLink(path+".link", rawLink)
	}

	rawItems, hasItems := obj.Get("items")
	switch seq, isSeq := asSequence(rawItems); {
	case !hasItems:
		b.fail(path, `category is missing "items"`)
	case !isSeq:
		b.fail(path, fmt.Sprintf(`"items" must be a sequence, got %s`, describe(rawItems)))
	default:
		c.items = b.sequence(path+".items", seq)
		if len(seq) == 0 {
			b.warn(path, fmt.Sprintf("category %q has no items", label))
		}
	}

	c.collapsed = b.optionalBool(path, obj, "collapsed")
	c.collapsible = b.optionalBool(path, obj, "collapsible")
	if c.collapsed == boolTrue && c.collapsible == boolFalse {
		b.fail(path, "a collapsed category must be collapsible")
	}
	return []Entry{c}
}

func (b *builder) categoryLink(path string, value any) string {
	obj, ok := asObject(value)
	if !ok {
		b.fail(path, fmt.Sprintf("category link must be an object, got %s", describe(value)))
		return ""
	}
	b.checkFields(path, obj, "type", "id")
	typ, _ := b.requiredString(path, obj, "type")
	if typ != "" && Kind(typ) != KindDoc {
		b.fail(path, fmt.Sprintf("unsupported category link type %q", typ))
		return ""
	}
	id, ok := b.requiredString(path, obj, "id")
	if !ok {
		return ""
	}
	if ref, ok := b.docRef(path, id, ""); ok {
		return ref.ID
	}
	return ""
}

func (b *builder) link(path string, obj *OrderedMap) []Entry {
	b.checkFields(path, obj, "type", "label", "href")
	label, labelOK := b.requiredString(path, obj, "label")
	href, hrefOK := b.requiredString(path, obj, "href")
	if !labelOK || !hrefOK {
		return nil
	}
	if strings.TrimSpace(label) == "" {
		b.fail(path, "link label must not be empty")
	}
	if strings.TrimSpace(href) == "" {
		b.fail(path, "link href must not be empty")
	} else if _, err := url.Parse(href); err != nil {
		b.fail(path, fmt.Sprintf("link href %q is not a valid URL: %v", href, err))
	}
	return []Entry{Link{Label: label, Href: href}}
}

func (b *builder) html(path string, obj *OrderedMap) []Entry {
	b.checkFields(path, obj, "type", "value")
	value, ok := b.requiredString(path, obj, "value")
	if !ok {
		return nil
	}
	if strings.TrimSpace(value) == "" {
		b.fail(path, "html value must not be empty")
	}
	return []Entry{HTML{Value: value}}
}

// shorthand expands {"Label": [items...], ...} into one category per key.
func (b *builder) shorthand(path string, obj *OrderedMap) []Entry {
	entries := make([]Entry, 0, obj.Len())
	for _, label := range obj.Keys() {
		catPath := fmt.Sprintf("%s[%q]", path, label)
		value, _ := obj.Get(label)
		seq, ok := asSequence(value)
		if !ok {
			b.fail(catPath, fmt.Sprintf("shorthand category must map to a sequence, got %s", describe(value)))
			continue
		}
		if strings.TrimSpace(label) == "" {
			b.fail(catPath, "category label must not be empty")
		}
		children := b.sequence(catPath, seq)
		if len(seq) == 0 {
			b.warn(catPath, fmt.Sprintf("category %q has no items", label))
		}
		entries = append(entries, Category{label: label, items: children})
	}
	return entries
}

func (b *builder) checkFields(path string, obj *OrderedMap, allowed ...string) {
	for _, k := range obj.Keys() {
		if !slices.Contains(allowed, k) {
			b.fail(path, fmt.Sprintf("unknown field %q", k))
		}
	}
}

func (b *builder) requiredString(path string, obj *OrderedMap, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		b.fail(path, fmt.Sprintf("%s is missing %q", objectName(obj), key))
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		b.fail(path, fmt.Sprintf("%q must be a string, got %s", key, describe(v)))
		return "", false
	}
	return s, true
}

func (b *builder) optionalString(path string, obj *OrderedMap, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		b.fail(path, fmt.Sprintf("%q must be a string, got %s", key, describe(v)))
		return "", false
	}
	return s, true
}

func (b *builder) optionalBool(path string, obj *OrderedMap, key string) optionalBool {
	v, ok := obj.Get(key)
	if !ok {
		return boolUnset
	}
	flag, ok := v.(bool)
	if !ok {
		b.fail(path, fmt.Sprintf("%q must be a boolean, got %s", key, describe(v)))
		return boolUnset
	}
	return someBool(flag)
}

func objectName(obj *OrderedMap) string {
	if typ, ok := obj.Get("type"); ok {
		if s, ok := typ.(string); ok && s != "" {
			return s
		}
	}
	return "category"
}

func isShorthand(obj *OrderedMap) bool {
	if obj.Len() == 0 {
		return false
	}
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		if _, ok := asSequence(v); !ok {
			return false
		}
	}
	return true
}

// asSequence accepts any Go slice or array so callers of Build can pass
// typed slices such as []string or []map[string]any.
func asSequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asObject accepts ordered maps and Go maps keyed by strings.
func asObject(v any) (*OrderedMap, bool) {
	switch m := v.(type) {
	case *OrderedMap:
		return m, m != nil
	case OrderedMap:
		return &m, true
	case map[string]any:
		return FromMap(m), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	plain := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		plain[iter.Key().String()] = iter.Value().Interface()
	}
	return FromMap(plain), true
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return fmt.Sprintf("number %v", x)
	case string:
		return fmt.Sprintf("string %q", x)
	default:
		if _, ok := asSequence(v); ok {
			return "sequence"
		}
		if _, ok := asObject(v); ok {
			return "object"
		}
		return fmt.Sprintf("%T", v)
	}
}
