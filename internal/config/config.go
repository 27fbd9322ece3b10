package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Config describes a documentation site: identity, routing, navigation chrome
// and the third-party integrations handed through to the renderer.
type Config struct {
	Title                 string           `yaml:"title"`
	Tagline               string           `yaml:"tagline,omitempty"`
	URL                   string           `yaml:"url"`
	BaseURL               string           `yaml:"base_url"`
	Favicon               string           `yaml:"favicon,omitempty"`
	Organization          string           `yaml:"organization,omitempty"`
	Project               string           `yaml:"project,omitempty"`
	OnBrokenLinks         BrokenLinkPolicy `yaml:"on_broken_links,omitempty"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `yaml:"on_broken_markdown_links,omitempty"`
	I18n                  I18nConfig       `yaml:"i18n"`
	Docs                  DocsConfig       `yaml:"docs"`
	Navbar                NavbarConfig     `yaml:"navbar,omitempty"`
	Footer                FooterConfig     `yaml:"footer,omitempty"`
	Prism                 PrismConfig      `yaml:"prism,omitempty"`
	Algolia               *AlgoliaConfig   `yaml:"algolia,omitempty"`
	Gtag                  *GtagConfig      `yaml:"gtag,omitempty"`
}

// I18nConfig lists the site locales.
type I18nConfig struct {
	DefaultLocale string   `yaml:"default_locale"`
	Locales       []string `yaml:"locales"`
}

// DocsConfig covers the documentation section: where docs live, where the
// sidebar is defined and how versions are presented.
type DocsConfig struct {
	Path          string                   `yaml:"path"`
	RouteBasePath string                   `yaml:"route_base_path"`
	SidebarPath   string                   `yaml:"sidebar_path"`
	EditURL       string                   `yaml:"edit_url,omitempty"`
	LastVersion   string                   `yaml:"last_version,omitempty"`
	Versions      map[string]VersionConfig `yaml:"versions,omitempty"`
	Duplicates    DuplicatePolicy          `yaml:"duplicates,omitempty"` // documents listed twice in sidebars: error|warn
}

// VersionConfig customizes how one docs version is labeled and routed.
type VersionConfig struct {
	Label  string        `yaml:"label,omitempty"`
	Banner VersionBanner `yaml:"banner,omitempty"`
	Path   string        `yaml:"path,omitempty"`
}

// NavbarConfig is the top navigation bar.
type NavbarConfig struct {
	Title string     `yaml:"title,omitempty"`
	Logo  LogoConfig `yaml:"logo,omitempty"`
	Items []NavItem  `yaml:"items,omitempty"`
}

// LogoConfig references a logo asset.
type LogoConfig struct {
	Src string `yaml:"src,omitempty"`
	Alt string `yaml:"alt,omitempty"`
}

// NavItem is a navbar or footer link. Exactly one of Href (external URL)
// or To (internal path) is set.
type NavItem struct {
	Label    string      `yaml:"label"`
	Href     string      `yaml:"href,omitempty"`
	To       string      `yaml:"to,omitempty"`
	Position NavPosition `yaml:"position,omitempty"`
	Target   string      `yaml:"target,omitempty"`
}

// FooterConfig is the page footer.
type FooterConfig struct {
	Style     FooterStyle       `yaml:"style,omitempty"`
	Links     []FooterLinkGroup `yaml:"links,omitempty"`
	Copyright string            `yaml:"copyright,omitempty"`
}

// FooterLinkGroup is a titled column of footer links.
type FooterLinkGroup struct {
	Title string    `yaml:"title"`
	Items []NavItem `yaml:"items"`
}

// PrismConfig selects syntax highlighting themes and extra languages.
type PrismConfig struct {
	Theme               string   `yaml:"theme,omitempty"`
	DarkTheme           string   `yaml:"dark_theme,omitempty"`
	AdditionalLanguages []string `yaml:"additional_languages,omitempty"`
}

// AlgoliaConfig holds search service credentials. They are opaque to docnav.
type AlgoliaConfig struct {
	AppID     string `yaml:"app_id"`
	APIKey    string `yaml:"api_key"`
	IndexName string `yaml:"index_name"`
}

// GtagConfig holds analytics settings. They are opaque to docnav.
type GtagConfig struct {
	TrackingID  string `yaml:"tracking_id"`
	AnonymizeIP bool   `yaml:"anonymize_ip"`
}

// Load reads, normalizes, defaults and validates the configuration at configPath.
// Relative docs and sidebar paths are resolved against the config file's directory.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load configuration").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	baseDir := filepath.Dir(configPath)
	cfg.Docs.Path = resolveRelative(baseDir, cfg.Docs.Path)
	cfg.Docs.SidebarPath = resolveRelative(baseDir, cfg.Docs.SidebarPath)
	return cfg, nil
}

// Parse decodes YAML configuration content with ${VAR} expansion and runs
// normalization, defaults and validation. Paths are left as written.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	res, err := NormalizeConfig(&cfg)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", "warning", w)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveRelative(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
