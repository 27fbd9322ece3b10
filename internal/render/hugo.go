package render

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/resolve"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

const weightStep = 10

// HugoMenu flattens tree into Hugo menu entries, one menu per sidebar.
// Siblings are weighted 10, 20, ... in display order and children point at
// their category through Parent. HTML entries have no menu form and are skipped.
func HugoMenu(tree *sidebar.Tree, labels resolve.Labels, docURL func(string) string) []config.MenuEntry {
	if docURL == nil {
		docURL = func(id string) string { return "/" + id }
	}
	var out []config.MenuEntry
	for _, name := range tree.Names() {
		entries, _ := tree.Sidebar(name)
		out = appendMenu(out, name, name, "", entries, labels, docURL)
	}
	return out
}

func appendMenu(out []config.MenuEntry, menu, path, parent string, entries []sidebar.Entry, labels resolve.Labels, docURL func(string) string) []config.MenuEntry {
	weight := 0
	for i, e := range entries {
		entryPath := fmt.Sprintf("%s[%d]", path, i)
		if _, ok := e.(sidebar.HTML); ok {
			slog.Debug("Skipping HTML entry in menu", logfields.Sidebar(menu), logfields.EntryPath(entryPath))
			continue
		}
		weight += weightStep
		item := config.MenuEntry{
			Menu:       menu,
			Identifier: identifier(entryPath),
			Parent:     parent,
			Weight:     weight,
		}
		switch v := e.(type) {
		case sidebar.DocRef:
			item.Name = labels.For(entryPath, v)
			item.URL = docURL(v.ID)
		case sidebar.Link:
			item.Name = v.Label
			item.URL = v.Href
		case sidebar.Category:
			item.Name = v.Label()
			if id, ok := v.LinkedDoc(); ok {
				item.URL = docURL(id)
			}
		}
		out = append(out, item)
		if c, ok := e.(sidebar.Category); ok {
			out = appendMenu(out, menu, entryPath+".items", item.Identifier, c.Items(), labels, docURL)
		}
	}
	return out
}

// identifier turns an entry path such as "docs[2].items[0]" into "docs-2-0".
func identifier(path string) string {
	r := strings.NewReplacer("].items[", "-", "[", "-", "]", "")
	return r.Replace(path)
}

// WriteHugo writes entries as a Hugo "menus" configuration block, menus in
// first-seen order. A non-empty copyright is written as the site-level
// "copyright" key ahead of the menus.
func WriteHugo(w io.Writer, entries []config.MenuEntry, copyright string) error {
	menus := sidebar.NewOrderedMap()
	for _, e := range entries {
		existing, _ := menus.Get(e.Menu)
		list, _ := existing.([]config.MenuEntry)
		menus.Set(e.Menu, append(list, e))
	}
	doc := sidebar.NewOrderedMap()
	if copyright != "" {
		doc.Set("copyright", copyright)
	}
	doc.Set("menus", menus)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to encode Hugo menus").Build()
	}
	if err := enc.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to flush Hugo menus").Build()
	}
	return nil
}
