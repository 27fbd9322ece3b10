package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Document is one Markdown page discovered under the docs root.
type Document struct {
	ID           string // Sidebar-facing identifier, e.g. "getting-started/installation"
	Path         string // Absolute path to the source file
	RelativePath string // Slash-separated path relative to the docs root
	Title        string // Frontmatter title, first H1, or humanized file name
	SidebarLabel string // Frontmatter sidebar_label, may be empty
	Slug         string // Frontmatter slug, may be empty
	ContentHash  string // sha256 of the file content
}

// Label returns the text a sidebar shows for this document when the entry
// itself carries no label.
func (d Document) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

// Index is the set of documents found by Scan, ordered by ID.
type Index struct {
	root string
	docs []Document
	byID map[string]int
}

// numberPrefix matches ordering prefixes such as "01-", "2_" or "10.".
var numberPrefix = regexp.MustCompile(`^\d+[-_.]`)

// Scan walks root for .md and .mdx files and builds an Index. Files and
// directories whose names start with "_" or "." are skipped. Two files
// resolving to the same document ID fail the scan with a validation error.
func Scan(root string) (*Index, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve docs directory").
			WithContext("path", root).
			Build()
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "docs directory not found").
				WithContext("path", root).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to stat docs directory").
			WithContext("path", root).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.NewError(errors.CategoryFileSystem, "docs path is not a directory").
			WithContext("path", root).
			Build()
	}

	idx := &Index{root: absRoot, byID: make(map[string]int)}
	var collisions []string

	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == absRoot {
			return nil
		}
		if skipName(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdownFile(d.Name()) {
			return nil
		}

		doc, err := readDocument(absRoot, p)
		if err != nil {
			return err
		}
		if prev, ok := idx.byID[doc.ID]; ok {
			collisions = append(collisions, fmt.Sprintf("document id %q is defined by both %s and %s",
				doc.ID, idx.docs[prev].RelativePath, doc.RelativePath))
			return nil
		}
		idx.byID[doc.ID] = len(idx.docs)
		idx.docs = append(idx.docs, doc)
		slog.Debug("Discovered document", logfields.DocID(doc.ID), logfields.Path(doc.RelativePath))
		return nil
	})
	if walkErr != nil {
		if errors.IsClassified(walkErr) {
			return nil, walkErr
		}
		return nil, errors.WrapError(walkErr, errors.CategoryFileSystem, "docs directory walk failed").
			WithContext("path", root).
			Build()
	}
	if len(collisions) > 0 {
		return nil, errors.ValidationError("duplicate document ids").
			WithCause(fmt.Errorf("%s", strings.Join(collisions, "; "))).
			WithContext("path", root).
			WithContext("collisions", len(collisions)).
			Build()
	}

	idx.sort()
	slog.Info("Documents indexed", logfields.Path(root), logfields.Count(len(idx.docs)))
	return idx, nil
}

func (i *Index) sort() {
	sort.Slice(i.docs, func(a, b int) bool { return i.docs[a].ID < i.docs[b].ID })
	for n, d := range i.docs {
		i.byID[d.ID] = n
	}
}

// Root returns the absolute docs directory.
func (i *Index) Root() string { return i.root }

// Len returns the number of documents.
func (i *Index) Len() int { return len(i.docs) }

// Lookup returns the document with the given ID.
func (i *Index) Lookup(id string) (Document, bool) {
	n, ok := i.byID[id]
	if !ok {
		return Document{}, false
	}
	return i.docs[n], true
}

// Has reports whether id names an indexed document.
func (i *Index) Has(id string) bool {
	_, ok := i.byID[id]
	return ok
}

// Documents returns a copy of all documents ordered by ID.
func (i *Index) Documents() []Document {
	return append([]Document(nil), i.docs...)
}

// IDs returns all document IDs in order.
func (i *Index) IDs() []string {
	ids := make([]string, len(i.docs))
	for n, d := range i.docs {
		ids[n] = d.ID
	}
	return ids
}

func readDocument(root, p string) (Document, error) {
	// #nosec G304 -- p comes from walking the configured docs root.
	content, err := os.ReadFile(p)
	if err != nil {
		return Document{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", p).
			Build()
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return Document{}, errors.WrapError(err, errors.CategoryFileSystem, "invalid relative path").
			WithContext("path", p).
			Build()
	}
	rel = filepath.ToSlash(rel)

	fm, body, err := parseFrontmatter(content)
	if err != nil {
		return Document{}, errors.WrapError(err, errors.CategoryDocs, "invalid frontmatter").
			WithContext("path", rel).
			Build()
	}

	doc := Document{
		ID:           documentID(rel, fm.ID),
		Path:         p,
		RelativePath: rel,
		Title:        fm.Title,
		SidebarLabel: fm.SidebarLabel,
		Slug:         fm.Slug,
		ContentHash:  contentHash(content),
	}
	if doc.Title == "" {
		doc.Title = firstHeading(body)
	}
	if doc.Title == "" {
		doc.Title = humanize(stripNumberPrefix(baseName(rel)))
	}
	return doc, nil
}

// documentID derives the ID from the relative path, dropping the extension
// and ordering prefixes. A frontmatter id replaces the final segment.
func documentID(rel, override string) string {
	dir := path.Dir(rel)
	name := stripNumberPrefix(baseName(rel))
	if override != "" {
		name = override
	}
	if dir == "." {
		return name
	}
	segments := strings.Split(dir, "/")
	for n, s := range segments {
		segments[n] = stripNumberPrefix(s)
	}
	return strings.Join(append(segments, name), "/")
}

func baseName(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

func stripNumberPrefix(name string) string {
	stripped := numberPrefix.ReplaceAllString(name, "")
	if stripped == "" {
		return name
	}
	return stripped
}

func skipName(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

func isMarkdownFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}
