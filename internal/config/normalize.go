package config

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerations, locale tags and string lists
// prior to default application. It mutates c in place.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}

	c.Title = strings.TrimSpace(c.Title)
	c.URL = strings.TrimSpace(c.URL)
	c.BaseURL = strings.TrimSpace(c.BaseURL)

	c.OnBrokenLinks = normalizeBrokenLinks("on_broken_links", c.OnBrokenLinks, res)
	c.OnBrokenMarkdownLinks = normalizeBrokenLinks("on_broken_markdown_links", c.OnBrokenMarkdownLinks, res)
	normalizeI18n(&c.I18n, res)
	normalizeDocs(&c.Docs, res)
	normalizeNavItems("navbar.items", c.Navbar.Items, res)
	normalizeFooter(&c.Footer, res)
	c.Prism.AdditionalLanguages = dedupe("prism.additional_languages", lowerAll(c.Prism.AdditionalLanguages), res)
	return res, nil
}

func normalizeBrokenLinks(field string, v BrokenLinkPolicy, res *NormalizationResult) BrokenLinkPolicy {
	if strings.TrimSpace(string(v)) == "" {
		return ""
	}
	p := NormalizeBrokenLinkPolicy(string(v))
	if p == "" {
		res.Warnings = append(res.Warnings, warnUnknown(field, string(v), string(BrokenLinksThrow)))
		return BrokenLinksThrow
	}
	if p != v {
		res.Warnings = append(res.Warnings, warnChanged(field, v, p))
	}
	return p
}

func normalizeI18n(i *I18nConfig, res *NormalizationResult) {
	if tag := canonicalLocale(i.DefaultLocale); tag != "" && tag != i.DefaultLocale {
		res.Warnings = append(res.Warnings, warnChanged("i18n.default_locale", i.DefaultLocale, tag))
		i.DefaultLocale = tag
	}
	for idx, loc := range i.Locales {
		if tag := canonicalLocale(loc); tag != "" && tag != loc {
			res.Warnings = append(res.Warnings, warnChanged(fmt.Sprintf("i18n.locales[%d]", idx), loc, tag))
			i.Locales[idx] = tag
		}
	}
	i.Locales = dedupe("i18n.locales", i.Locales, res)
}

// canonicalLocale returns the BCP 47 canonical form, or "" when raw does not parse.
func canonicalLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	return tag.String()
}

func normalizeDocs(d *DocsConfig, res *NormalizationResult) {
	if raw := strings.TrimSpace(d.RouteBasePath); raw != "" {
		route := strings.Trim(raw, "/")
		if route == "" {
			route = "/"
		}
		if route != d.RouteBasePath {
			res.Warnings = append(res.Warnings, warnChanged("docs.route_base_path", d.RouteBasePath, route))
			d.RouteBasePath = route
		}
	}
	if strings.TrimSpace(string(d.Duplicates)) != "" {
		p := NormalizeDuplicatePolicy(string(d.Duplicates))
		switch {
		case p == "":
			res.Warnings = append(res.Warnings, warnUnknown("docs.duplicates", string(d.Duplicates), string(DuplicatesError)))
			d.Duplicates = DuplicatesError
		case p != d.Duplicates:
			res.Warnings = append(res.Warnings, warnChanged("docs.duplicates", d.Duplicates, p))
			d.Duplicates = p
		}
	}
	for name, v := range d.Versions {
		if strings.TrimSpace(string(v.Banner)) == "" {
			continue
		}
		b := NormalizeVersionBanner(string(v.Banner))
		switch {
		case b == "":
			res.Warnings = append(res.Warnings, warnUnknown("docs.versions."+name+".banner", string(v.Banner), string(BannerNone)))
			v.Banner = BannerNone
		case b != v.Banner:
			res.Warnings = append(res.Warnings, warnChanged("docs.versions."+name+".banner", v.Banner, b))
			v.Banner = b
		}
		d.Versions[name] = v
	}
}

func normalizeNavItems(field string, items []NavItem, res *NormalizationResult) {
	for i := range items {
		item := &items[i]
		item.Label = strings.TrimSpace(item.Label)
		item.Href = strings.TrimSpace(item.Href)
		item.To = strings.TrimSpace(item.To)
		if strings.TrimSpace(string(item.Position)) == "" {
			continue
		}
		p := NormalizeNavPosition(string(item.Position))
		switch {
		case p == "":
			res.Warnings = append(res.Warnings, warnUnknown(fmt.Sprintf("%s[%d].position", field, i), string(item.Position), string(PositionLeft)))
			item.Position = PositionLeft
		case p != item.Position:
			res.Warnings = append(res.Warnings, warnChanged(fmt.Sprintf("%s[%d].position", field, i), item.Position, p))
			item.Position = p
		}
	}
}

func normalizeFooter(f *FooterConfig, res *NormalizationResult) {
	if strings.TrimSpace(string(f.Style)) != "" {
		s := NormalizeFooterStyle(string(f.Style))
		switch {
		case s == "":
			res.Warnings = append(res.Warnings, warnUnknown("footer.style", string(f.Style), string(FooterLight)))
			f.Style = FooterLight
		case s != f.Style:
			res.Warnings = append(res.Warnings, warnChanged("footer.style", f.Style, s))
			f.Style = s
		}
	}
	for i := range f.Links {
		f.Links[i].Title = strings.TrimSpace(f.Links[i].Title)
		normalizeNavItems(fmt.Sprintf("footer.links[%d].items", i), f.Links[i].Items, res)
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

func dedupe(field string, in []string, res *NormalizationResult) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if slices.Contains(out, s) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("removed duplicate '%s' from %s", s, field))
			continue
		}
		out = append(out, s)
	}
	return out
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
