package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/resolve"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Text writes an indented outline of every sidebar:
//
//	docs
//	  - Introduction [introduction]
//	  + Reference (collapsed) -> reference/overview
//	    - CLI [reference/cli]
//	  > Home <https://acorn.io>
//	  ~ Community
func Text(w io.Writer, tree *sidebar.Tree, labels resolve.Labels) error {
	bw := bufio.NewWriter(w)
	for _, name := range tree.Names() {
		fmt.Fprintln(bw, name)
		entries, _ := tree.Sidebar(name)
		writeOutline(bw, name, 1, entries, labels)
	}
	if err := bw.Flush(); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to write outline").Build()
	}
	return nil
}

func writeOutline(w io.Writer, path string, depth int, entries []sidebar.Entry, labels resolve.Labels) {
	indent := strings.Repeat("  ", depth)
	for i, e := range entries {
		entryPath := fmt.Sprintf("%s[%d]", path, i)
		switch v := e.(type) {
		case sidebar.DocRef:
			fmt.Fprintf(w, "%s- %s [%s]\n", indent, labels.For(entryPath, v), v.ID)
		case sidebar.Category:
			line := indent + "+ " + v.Label()
			if collapsed, _ := v.Collapsed(); collapsed {
				line += " (collapsed)"
			}
			if id, ok := v.LinkedDoc(); ok {
				line += " -> " + id
			}
			fmt.Fprintln(w, line)
			writeOutline(w, entryPath+".items", depth+1, v.Items(), labels)
		case sidebar.Link:
			fmt.Fprintf(w, "%s> %s <%s>\n", indent, v.Label, v.Href)
		case sidebar.HTML:
			fmt.Fprintf(w, "%s~ %s\n", indent, htmlText(v.Value))
		}
	}
}

// htmlText reduces an HTML fragment to its whitespace-collapsed text content.
// Unparseable input is returned unchanged.
func htmlText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var parts []string
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			parts = append(parts, strings.Fields(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(doc)
	return strings.Join(parts, " ")
}
