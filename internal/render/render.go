// Package render writes a validated sidebar tree in the output formats docnav
// supports: ordered JSON or YAML, a plain-text outline, and Hugo menus.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/resolve"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
	FormatHugo Format = "hugo"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatText, FormatHugo}

// ParseFormat returns the canonical format for raw, case-insensitively.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case FormatJSON, FormatYAML, FormatText, FormatHugo:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatJSON, nil
	}
	return "", errors.ValidationError("unsupported output format").
		WithContext("format", raw).
		Build()
}

// Options carries what the label-aware formats need.
type Options struct {
	Labels resolve.Labels
	// DocURL maps a document ID to its site URL; nil yields "/<id>".
	DocURL func(id string) string
	// Copyright is emitted by the Hugo format as the site copyright line.
	Copyright string
}

// Write renders tree in format f.
func Write(w io.Writer, f Format, tree *sidebar.Tree, opts Options) error {
	switch f {
	case FormatJSON:
		return JSON(w, tree)
	case FormatYAML:
		return YAML(w, tree)
	case FormatText:
		return Text(w, tree, opts.Labels)
	case FormatHugo:
		return WriteHugo(w, HugoMenu(tree, opts.Labels, opts.DocURL), opts.Copyright)
	}
	return fmt.Errorf("unsupported format %q", f)
}

// JSON writes the tree as indented JSON, sidebars and keys in input order.
func JSON(w io.Writer, tree *sidebar.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree.Raw()); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to encode JSON").Build()
	}
	return nil
}

// YAML writes the tree as YAML, sidebars and keys in input order.
func YAML(w io.Writer, tree *sidebar.Tree) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree.Raw()); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to encode YAML").Build()
	}
	if err := enc.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to flush YAML").Build()
	}
	return nil
}
