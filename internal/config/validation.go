package config

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// ValidateConfig checks a normalized, defaulted configuration. Every problem
// found is collected; the returned error is a fatal validation error whose
// cause joins all of them.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	v.validateSite()
	v.validateI18n()
	v.validateDocs()
	v.validateNavbar()
	v.validateFooter()
	v.validateIntegrations()

	if len(v.problems) == 0 {
		return nil
	}
	return errors.ValidationError("invalid site configuration").
		WithCause(stderrors.Join(v.problems...)).
		WithContext("problems", len(v.problems)).
		Build()
}

type configurationValidator struct {
	config   *Config
	problems []error
}

func (v *configurationValidator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Errorf(format, args...))
}

func (v *configurationValidator) validateSite() {
	c := v.config
	if c.Title == "" {
		v.addf("title is required")
	}
	if c.URL == "" {
		v.addf("url is required")
	} else if !isAbsoluteHTTP(c.URL) {
		v.addf("url must be an absolute http(s) URL: %s", c.URL)
	}
	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		v.addf("base_url must start and end with '/': %s", c.BaseURL)
	}
	if NormalizeBrokenLinkPolicy(string(c.OnBrokenLinks)) == "" {
		v.addf("invalid on_broken_links: %s", c.OnBrokenLinks)
	}
	if NormalizeBrokenLinkPolicy(string(c.OnBrokenMarkdownLinks)) == "" {
		v.addf("invalid on_broken_markdown_links: %s", c.OnBrokenMarkdownLinks)
	}
}

func (v *configurationValidator) validateI18n() {
	i := v.config.I18n
	if _, err := language.Parse(i.DefaultLocale); err != nil {
		v.addf("i18n.default_locale is not a valid BCP 47 tag: %s", i.DefaultLocale)
	}
	for idx, loc := range i.Locales {
		if _, err := language.Parse(loc); err != nil {
			v.addf("i18n.locales[%d] is not a valid BCP 47 tag: %s", idx, loc)
		}
	}
	if !slices.Contains(i.Locales, i.DefaultLocale) {
		v.addf("i18n.locales must include default_locale %s", i.DefaultLocale)
	}
}

func (v *configurationValidator) validateDocs() {
	d := v.config.Docs
	if strings.TrimSpace(d.SidebarPath) == "" {
		v.addf("docs.sidebar_path is required")
	}
	if strings.ContainsAny(d.RouteBasePath, " \t?#") || strings.Contains(d.RouteBasePath, "//") {
		v.addf("docs.route_base_path is not a valid path segment: %s", d.RouteBasePath)
	}
	if d.EditURL != "" && !isAbsoluteHTTP(d.EditURL) {
		v.addf("docs.edit_url must be an absolute http(s) URL: %s", d.EditURL)
	}
	if NormalizeDuplicatePolicy(string(d.Duplicates)) == "" {
		v.addf("invalid docs.duplicates: %s", d.Duplicates)
	}

	names := make([]string, 0, len(d.Versions))
	for name := range d.Versions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if NormalizeVersionBanner(string(d.Versions[name].Banner)) == "" {
			v.addf("docs.versions.%s.banner must be one of none, unreleased, unmaintained: %s", name, d.Versions[name].Banner)
		}
	}
	if d.LastVersion != "" && d.LastVersion != "current" {
		if _, ok := d.Versions[d.LastVersion]; !ok {
			v.addf("docs.last_version %s is not a configured version", d.LastVersion)
		}
	}
}

func (v *configurationValidator) validateNavbar() {
	for i, item := range v.config.Navbar.Items {
		field := fmt.Sprintf("navbar.items[%d]", i)
		v.validateLinkItem(field, item)
		if NormalizeNavPosition(string(item.Position)) == "" {
			v.addf("%s.position must be left or right: %s", field, item.Position)
		}
	}
}

func (v *configurationValidator) validateFooter() {
	f := v.config.Footer
	if NormalizeFooterStyle(string(f.Style)) == "" {
		v.addf("footer.style must be light or dark: %s", f.Style)
	}
	for i, group := range f.Links {
		if group.Title == "" {
			v.addf("footer.links[%d].title is required", i)
		}
		for j, item := range group.Items {
			v.validateLinkItem(fmt.Sprintf("footer.links[%d].items[%d]", i, j), item)
		}
	}
}

func (v *configurationValidator) validateLinkItem(field string, item NavItem) {
	if item.Label == "" {
		v.addf("%s.label is required", field)
	}
	switch {
	case item.Href == "" && item.To == "":
		v.addf("%s needs one of href or to", field)
	case item.Href != "" && item.To != "":
		v.addf("%s sets both href and to", field)
	case item.Href != "" && !isAbsoluteHTTP(item.Href):
		v.addf("%s.href must be an absolute http(s) URL: %s", field, item.Href)
	}
}

func (v *configurationValidator) validateIntegrations() {
	if a := v.config.Algolia; a != nil {
		set := 0
		for _, s := range []string{a.AppID, a.APIKey, a.IndexName} {
			if strings.TrimSpace(s) != "" {
				set++
			}
		}
		if set != 3 {
			v.addf("algolia requires app_id, api_key and index_name together")
		}
	}
	if g := v.config.Gtag; g != nil && strings.TrimSpace(g.TrackingID) == "" {
		v.addf("gtag.tracking_id is required when gtag is configured")
	}
}

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
