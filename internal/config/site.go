package config

import (
	"path"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// RenderCopyright returns the footer copyright with {year} replaced by now's year.
func (f FooterConfig) RenderCopyright(now time.Time) string {
	return strings.ReplaceAll(f.Copyright, "{year}", strconv.Itoa(now.Year()))
}

// EditURLFor joins the edit URL with a document source path relative to the
// docs directory. It returns "" when no edit URL is configured.
func (d DocsConfig) EditURLFor(docPath string) string {
	if d.EditURL == "" {
		return ""
	}
	return strings.TrimSuffix(d.EditURL, "/") + "/" + strings.TrimPrefix(path.Clean("/"+docPath), "/")
}

// DocURL returns the site path serving the document with the given ID.
func (c *Config) DocURL(docID string) string {
	base := c.BaseURL
	if base == "" {
		base = "/"
	}
	route := c.Docs.RouteBasePath
	if route == "/" {
		route = ""
	}
	return path.Join(base, route, docID)
}

// SidebarPolicy maps the configured duplicate handling onto the tree builder's policy.
func (d DocsConfig) SidebarPolicy() sidebar.DuplicatePolicy {
	if d.Duplicates == DuplicatesWarn {
		return sidebar.DuplicateWarn
	}
	return sidebar.DuplicateError
}
