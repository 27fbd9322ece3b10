// Package loader reads sidebar definition files into the ordered raw form
// accepted by sidebar.BuildOrdered.
//
// YAML and JSON files are decoded directly. JavaScript and TypeScript
// modules in the Docusaurus style are supported by extracting the object
// literal bound to the exported sidebars value and decoding it as a YAML
// flow mapping; no JavaScript is evaluated.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Format identifies a sidebar file syntax.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatModule Format = "module"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".js", ".cjs", ".mjs", ".ts":
		return FormatModule, true
	default:
		return "", false
	}
}

// Load reads and decodes the sidebar file at path.
func Load(path string) (*sidebar.OrderedMap, error) {
	format, ok := DetectFormat(path)
	if !ok {
		return nil, errors.ConfigError("unsupported sidebar file extension").
			WithContext("path", path).
			Build()
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "sidebar file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read sidebar file").
			WithContext("path", path).
			Build()
	}

	raw, err := Decode(data, format)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode sidebar file").
			Fatal().
			WithContext("path", path).
			WithContext("format", string(format)).
			Build()
	}
	return raw, nil
}

// Decode parses sidebar data in the given format.
func Decode(data []byte, format Format) (*sidebar.OrderedMap, error) {
	if format == FormatModule {
		literal, err := ExtractModuleLiteral(data)
		if err != nil {
			return nil, err
		}
		data = literal
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("sidebar file is empty")
	}

	var raw sidebar.OrderedMap
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
