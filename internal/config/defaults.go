package config

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles top-level site defaults.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/"
	}
	if cfg.OnBrokenLinks == "" {
		cfg.OnBrokenLinks = BrokenLinksThrow
	}
	if cfg.OnBrokenMarkdownLinks == "" {
		cfg.OnBrokenMarkdownLinks = BrokenLinksWarn
	}
	if cfg.Navbar.Title == "" {
		cfg.Navbar.Title = cfg.Title
	}
	if cfg.Footer.Style == "" {
		cfg.Footer.Style = FooterLight
	}
	return nil
}

// I18nDefaultApplier handles locale defaults.
type I18nDefaultApplier struct{}

func (i *I18nDefaultApplier) Domain() string { return "i18n" }

func (i *I18nDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.I18n.DefaultLocale == "" {
		cfg.I18n.DefaultLocale = "en"
	}
	if len(cfg.I18n.Locales) == 0 {
		cfg.I18n.Locales = []string{cfg.I18n.DefaultLocale}
	}
	return nil
}

// DocsDefaultApplier handles docs section defaults.
type DocsDefaultApplier struct{}

func (d *DocsDefaultApplier) Domain() string { return "docs" }

func (d *DocsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Docs.Path == "" {
		cfg.Docs.Path = "docs"
	}
	if cfg.Docs.RouteBasePath == "" {
		cfg.Docs.RouteBasePath = "docs"
	}
	if cfg.Docs.SidebarPath == "" {
		cfg.Docs.SidebarPath = "sidebars.js"
	}
	if cfg.Docs.Duplicates == "" {
		cfg.Docs.Duplicates = DuplicatesError
	}
	for name, v := range cfg.Docs.Versions {
		if strings.TrimSpace(name) == "" {
			return errors.New("version name must not be empty")
		}
		if v.Label == "" {
			v.Label = name
		}
		if v.Banner == "" {
			v.Banner = BannerNone
		}
		cfg.Docs.Versions[name] = v
	}
	return nil
}

// NavbarDefaultApplier places navbar items without an explicit position on the left.
type NavbarDefaultApplier struct{}

func (n *NavbarDefaultApplier) Domain() string { return "navbar" }

func (n *NavbarDefaultApplier) ApplyDefaults(cfg *Config) error {
	for i := range cfg.Navbar.Items {
		if cfg.Navbar.Items[i].Position == "" {
			cfg.Navbar.Items[i].Position = PositionLeft
		}
	}
	return nil
}

// defaultAppliers runs in order; navbar defaults read the site title.
var defaultAppliers = []DefaultApplier{
	&SiteDefaultApplier{},
	&I18nDefaultApplier{},
	&DocsDefaultApplier{},
	&NavbarDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// Defaults returns a configuration with every default applied and no site
// identity. It is used when docnav runs against a sidebar file without a
// configuration file; it is not validated.
func Defaults() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	return cfg
}
