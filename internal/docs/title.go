package docs

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// firstHeading returns the plain text of the first level-1 heading in body.
func firstHeading(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if h.Level == 1 {
			title = strings.TrimSpace(inlineText(h, body))
			return gmast.WalkStop, nil
		}
		return gmast.WalkSkipChildren, nil
	})
	return title
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// humanize turns a file name such as "getting_started-guide" into "Getting Started Guide".
// Letters after the first of each word keep their case, so "API-v2" becomes "API V2".
// A Caser carries state, so each call builds its own.
func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	return cases.Title(language.English, cases.NoLower).String(strings.Join(words, " "))
}
