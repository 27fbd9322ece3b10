package docs

import (
	"bytes"
	stderrors "errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontMatter holds the fields docnav reads; everything else is ignored.
type frontMatter struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	SidebarLabel string `yaml:"sidebar_label"`
	Slug         string `yaml:"slug"`
}

var errMissingClosingDelimiter = stderrors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// splitFrontmatter separates a leading `---` delimited YAML block from the
// Markdown body. Documents without frontmatter return a nil block.
func splitFrontmatter(content []byte) (block, body []byte, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}
	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// Closing delimiter at end of file without a trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-len(nl+"---")+len(nl)], nil, nil
		}
		return nil, nil, errMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], nil
}

func parseFrontmatter(content []byte) (frontMatter, []byte, error) {
	var fm frontMatter
	block, body, err := splitFrontmatter(content)
	if err != nil {
		return fm, nil, err
	}
	if len(bytes.TrimSpace(block)) == 0 {
		return fm, body, nil
	}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return fm, nil, fmt.Errorf("decode frontmatter: %w", err)
	}
	return fm, body, nil
}
