package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

const minimalConfig = `
title: Acorn Docs
url: http://docs.acorn.io
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.BaseURL != "/" {
		t.Fatalf("base_url default: %q", cfg.BaseURL)
	}
	if cfg.OnBrokenLinks != BrokenLinksThrow || cfg.OnBrokenMarkdownLinks != BrokenLinksWarn {
		t.Fatalf("broken link defaults: %q %q", cfg.OnBrokenLinks, cfg.OnBrokenMarkdownLinks)
	}
	if cfg.I18n.DefaultLocale != "en" || len(cfg.I18n.Locales) != 1 || cfg.I18n.Locales[0] != "en" {
		t.Fatalf("i18n defaults: %+v", cfg.I18n)
	}
	if cfg.Docs.Path != "docs" || cfg.Docs.SidebarPath != "sidebars.js" || cfg.Docs.RouteBasePath != "docs" {
		t.Fatalf("docs defaults: %+v", cfg.Docs)
	}
	if cfg.Docs.Duplicates != DuplicatesError {
		t.Fatalf("duplicates default: %q", cfg.Docs.Duplicates)
	}
	if cfg.Navbar.Title != "Acorn Docs" {
		t.Fatalf("navbar title should default to site title, got %q", cfg.Navbar.Title)
	}
	if cfg.Footer.Style != FooterLight {
		t.Fatalf("footer style default: %q", cfg.Footer.Style)
	}
}

func TestParseDefaultsErrorNamesDomain(t *testing.T) {
	data := minimalConfig + "docs:\n  versions:\n    \"\":\n      label: Next\n"
	_, err := Parse([]byte(data))
	if err == nil {
		t.Fatal("expected an error for an empty version name")
	}
	if !strings.Contains(err.Error(), "applying defaults for docs: version name must not be empty") {
		t.Fatalf("error should name the defaults domain, got %v", err)
	}
}

func TestParseExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCNAV_TEST_ALGOLIA_KEY", "secret-key")
	cfg, err := Parse([]byte(minimalConfig + `
algolia:
  app_id: APP
  api_key: ${DOCNAV_TEST_ALGOLIA_KEY}
  index_name: docs
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Algolia == nil || cfg.Algolia.APIKey != "secret-key" {
		t.Fatalf("expected expanded api key, got %+v", cfg.Algolia)
	}
}

func TestNormalizeConfigEnums(t *testing.T) {
	cfg := &Config{
		OnBrokenLinks:         "THROW",
		OnBrokenMarkdownLinks: "Warning",
		I18n:                  I18nConfig{DefaultLocale: "EN-us", Locales: []string{"en-US", "EN-US", "de"}},
		Docs: DocsConfig{
			RouteBasePath: "/reference/",
			Duplicates:    "Warn",
			Versions:      map[string]VersionConfig{"0.3": {Banner: "UNMAINTAINED"}},
		},
		Navbar: NavbarConfig{Items: []NavItem{{Label: " GitHub ", Href: "https://github.com", Position: "Right"}}},
		Footer: FooterConfig{Style: "DARK"},
		Prism:  PrismConfig{AdditionalLanguages: []string{"Go", "go", "rust"}},
	}
	res, err := NormalizeConfig(cfg)
	if err != nil {
		t.Fatalf("NormalizeConfig error: %v", err)
	}
	if cfg.OnBrokenLinks != BrokenLinksThrow || cfg.OnBrokenMarkdownLinks != BrokenLinksWarn {
		t.Fatalf("broken link policies not normalized: %q %q", cfg.OnBrokenLinks, cfg.OnBrokenMarkdownLinks)
	}
	if cfg.I18n.DefaultLocale != "en-US" {
		t.Fatalf("default_locale not canonicalized: %q", cfg.I18n.DefaultLocale)
	}
	if strings.Join(cfg.I18n.Locales, ",") != "en-US,de" {
		t.Fatalf("locales not canonicalized and deduped: %v", cfg.I18n.Locales)
	}
	if cfg.Docs.RouteBasePath != "reference" {
		t.Fatalf("route_base_path not trimmed: %q", cfg.Docs.RouteBasePath)
	}
	if cfg.Docs.Duplicates != DuplicatesWarn {
		t.Fatalf("duplicates not normalized: %q", cfg.Docs.Duplicates)
	}
	if cfg.Docs.Versions["0.3"].Banner != BannerUnmaintained {
		t.Fatalf("banner not normalized: %q", cfg.Docs.Versions["0.3"].Banner)
	}
	if cfg.Navbar.Items[0].Position != PositionRight || cfg.Navbar.Items[0].Label != "GitHub" {
		t.Fatalf("navbar item not normalized: %+v", cfg.Navbar.Items[0])
	}
	if cfg.Footer.Style != FooterDark {
		t.Fatalf("footer style not normalized: %q", cfg.Footer.Style)
	}
	if strings.Join(cfg.Prism.AdditionalLanguages, ",") != "go,rust" {
		t.Fatalf("prism languages not deduped: %v", cfg.Prism.AdditionalLanguages)
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("expected warnings recorded")
	}
}

func TestNormalizeConfigUnknowns(t *testing.T) {
	cfg := &Config{
		OnBrokenLinks: "explode",
		Docs:          DocsConfig{Duplicates: "merge"},
		Footer:        FooterConfig{Style: "neon"},
		Navbar:        NavbarConfig{Items: []NavItem{{Label: "x", To: "/x", Position: "center"}}},
	}
	res, err := NormalizeConfig(cfg)
	if err != nil {
		t.Fatalf("NormalizeConfig error: %v", err)
	}
	if cfg.OnBrokenLinks != BrokenLinksThrow {
		t.Fatalf("on_broken_links fallback failed: %q", cfg.OnBrokenLinks)
	}
	if cfg.Docs.Duplicates != DuplicatesError {
		t.Fatalf("duplicates fallback failed: %q", cfg.Docs.Duplicates)
	}
	if cfg.Footer.Style != FooterLight {
		t.Fatalf("footer style fallback failed: %q", cfg.Footer.Style)
	}
	if cfg.Navbar.Items[0].Position != PositionLeft {
		t.Fatalf("position fallback failed: %q", cfg.Navbar.Items[0].Position)
	}
	if len(res.Warnings) < 4 {
		t.Fatalf("expected >=4 warnings, got %d", len(res.Warnings))
	}
}

func TestNormalizeConfigNil(t *testing.T) {
	if _, err := NormalizeConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestValidateConfigRejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"missing title", "url: https://x.io\n", "title is required"},
		{"missing url", "title: T\n", "url is required"},
		{"relative url", "title: T\nurl: docs.acorn.io\n", "absolute http(s) URL"},
		{"base url slashes", "title: T\nurl: https://x.io\nbase_url: /docs\n", "base_url must start and end"},
		{"bad locale", "title: T\nurl: https://x.io\ni18n:\n  default_locale: en\n  locales: [en, 'not a locale']\n", "not a valid BCP 47 tag"},
		{"default locale missing", "title: T\nurl: https://x.io\ni18n:\n  default_locale: en\n  locales: [de]\n", "must include default_locale"},
		{"nav item without target", "title: T\nurl: https://x.io\nnavbar:\n  items:\n    - label: Home\n", "needs one of href or to"},
		{"nav item with both", "title: T\nurl: https://x.io\nnavbar:\n  items:\n    - label: Home\n      href: https://a.io\n      to: /a\n", "sets both href and to"},
		{"nav item without label", "title: T\nurl: https://x.io\nnavbar:\n  items:\n    - href: https://a.io\n", "label is required"},
		{"footer title", "title: T\nurl: https://x.io\nfooter:\n  links:\n    - items:\n        - label: A\n          to: /a\n", "footer.links[0].title is required"},
		{"partial algolia", "title: T\nurl: https://x.io\nalgolia:\n  app_id: A\n", "algolia requires"},
		{"gtag without id", "title: T\nurl: https://x.io\ngtag:\n  anonymize_ip: true\n", "gtag.tracking_id is required"},
		{"edit url", "title: T\nurl: https://x.io\ndocs:\n  edit_url: github.com/x\n", "docs.edit_url"},
		{"last version", "title: T\nurl: https://x.io\ndocs:\n  last_version: '9.9'\n", "not a configured version"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.HasCategory(err, errors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidateConfigCollectsAllProblems(t *testing.T) {
	_, err := Parse([]byte("base_url: nope\n"))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	ce, ok := errors.AsClassified(err)
	if !ok {
		t.Fatalf("expected classified error, got %T", err)
	}
	if n := ce.Context()["problems"]; n != 3 {
		t.Fatalf("expected 3 problems (title, url, base_url), got %v: %v", n, err)
	}
}

func TestLoadResolvesPathsRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docnav.yaml")
	content := minimalConfig + "docs:\n  path: content\n  sidebar_path: nav/sidebars.yaml\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Docs.Path != filepath.Join(dir, "content") {
		t.Fatalf("docs path not resolved: %s", cfg.Docs.Path)
	}
	if cfg.Docs.SidebarPath != filepath.Join(dir, "nav", "sidebars.yaml") {
		t.Fatalf("sidebar path not resolved: %s", cfg.Docs.SidebarPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.HasCategory(err, errors.CategoryNotFound) {
		t.Fatalf("expected not_found category, got %v", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docnav.yaml")
	if err := os.WriteFile(path, []byte("title: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if !errors.HasCategory(err, errors.CategoryConfig) {
		t.Fatalf("expected config category, got %v", err)
	}
}

func TestInitWritesLoadableFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docnav.yaml")
	if err := Init(path, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Init: %v", err)
	}
	if cfg.Docs.SidebarPath != filepath.Join(dir, "sidebars.yaml") {
		t.Fatalf("unexpected sidebar path %s", cfg.Docs.SidebarPath)
	}
	if _, err := os.Stat(cfg.Docs.SidebarPath); err != nil {
		t.Fatalf("sidebar not written: %v", err)
	}
	if err := Init(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite without force")
	}
	if err := Init(path, true); err != nil {
		t.Fatalf("Init with force: %v", err)
	}
}

func TestFooterRenderCopyright(t *testing.T) {
	f := FooterConfig{Copyright: "Copyright © {year} Acorn Labs, Inc."}
	got := f.RenderCopyright(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if got != "Copyright © 2026 Acorn Labs, Inc." {
		t.Fatalf("unexpected copyright %q", got)
	}
}

func TestDocsEditURLFor(t *testing.T) {
	d := DocsConfig{EditURL: "https://github.com/acorn-io/acorn/tree/main/docs/docs/"}
	if got := d.EditURLFor("architecture/security-considerations.md"); got != "https://github.com/acorn-io/acorn/tree/main/docs/docs/architecture/security-considerations.md" {
		t.Fatalf("unexpected edit url %q", got)
	}
	if got := (DocsConfig{}).EditURLFor("x.md"); got != "" {
		t.Fatalf("expected empty edit url, got %q", got)
	}
}

func TestDocURL(t *testing.T) {
	cfg := &Config{BaseURL: "/", Docs: DocsConfig{RouteBasePath: "/"}}
	if got := cfg.DocURL("getting-started/installation"); got != "/getting-started/installation" {
		t.Fatalf("root route: %q", got)
	}
	cfg = &Config{BaseURL: "/site/", Docs: DocsConfig{RouteBasePath: "docs"}}
	if got := cfg.DocURL("introduction"); got != "/site/docs/introduction" {
		t.Fatalf("nested route: %q", got)
	}
}

func TestSidebarPolicy(t *testing.T) {
	if (DocsConfig{Duplicates: DuplicatesWarn}).SidebarPolicy() != sidebar.DuplicateWarn {
		t.Fatalf("warn policy not mapped")
	}
	if (DocsConfig{}).SidebarPolicy() != sidebar.DuplicateError {
		t.Fatalf("default policy should be error")
	}
}
