package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const exampleSidebarFile = "sidebars.yaml"

const exampleSidebar = `tutorialSidebar:
  - introduction
  - installation
  - type: category
    label: Getting Started
    link:
      type: doc
      id: getting-started/overview
    items:
      - getting-started/quickstart
      - getting-started/first-app
  - type: category
    label: Reference
    collapsed: true
    items:
      - reference/configuration
      - type: link
        label: Project Home
        href: https://example.com
`

// Init writes an example site configuration to configPath and an example
// sidebar next to it. Existing files are kept unless force is set.
func Init(configPath string, force bool) error {
	sidebarPath := filepath.Join(filepath.Dir(configPath), exampleSidebarFile)
	if !force {
		for _, p := range []string{configPath, sidebarPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", p)
			}
		}
	}

	exampleConfig := Config{
		Title:                 "Example Docs",
		Tagline:               "Welcome to Example Docs",
		URL:                   "https://docs.example.com",
		BaseURL:               "/",
		Favicon:               "img/favicon.ico",
		Organization:          "example-org",
		Project:               "example",
		OnBrokenLinks:         BrokenLinksThrow,
		OnBrokenMarkdownLinks: BrokenLinksWarn,
		I18n:                  I18nConfig{DefaultLocale: "en", Locales: []string{"en"}},
		Docs: DocsConfig{
			Path:          "docs",
			RouteBasePath: "/",
			SidebarPath:   exampleSidebarFile,
			EditURL:       "https://github.com/example-org/example/tree/main/docs/docs/",
			Duplicates:    DuplicatesError,
		},
		Navbar: NavbarConfig{
			Title: "Example Docs",
			Logo:  LogoConfig{Src: "img/logo.png", Alt: "Example Logo"},
			Items: []NavItem{
				{Label: "Project Home", Href: "https://example.com", Position: PositionRight, Target: "_self"},
				{Label: "GitHub", Href: "https://github.com/example-org/example", Position: PositionRight},
			},
		},
		Footer: FooterConfig{
			Style: FooterDark,
			Links: []FooterLinkGroup{
				{Title: "Community", Items: []NavItem{{Label: "GitHub", Href: "https://github.com/example-org/example"}}},
			},
			Copyright: "Copyright © {year} Example, Inc.",
		},
		Prism: PrismConfig{Theme: "github", DarkTheme: "dracula"},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.WriteFile(sidebarPath, []byte(exampleSidebar), 0o644); err != nil {
		return fmt.Errorf("failed to write sidebar file: %w", err)
	}
	return nil
}
