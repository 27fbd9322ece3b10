package config

import "strings"

// BrokenLinkPolicy decides how unresolvable references are reported.
type BrokenLinkPolicy string

const (
	BrokenLinksThrow  BrokenLinkPolicy = "throw"
	BrokenLinksWarn   BrokenLinkPolicy = "warn"
	BrokenLinksIgnore BrokenLinkPolicy = "ignore"
)

// NormalizeBrokenLinkPolicy returns a canonical policy or empty string if unknown.
func NormalizeBrokenLinkPolicy(raw string) BrokenLinkPolicy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(BrokenLinksThrow), "error":
		return BrokenLinksThrow
	case string(BrokenLinksWarn), "warning":
		return BrokenLinksWarn
	case string(BrokenLinksIgnore), "off":
		return BrokenLinksIgnore
	default:
		return ""
	}
}

// DuplicatePolicy decides whether a document listed twice fails the build.
type DuplicatePolicy string

const (
	DuplicatesError DuplicatePolicy = "error"
	DuplicatesWarn  DuplicatePolicy = "warn"
)

// NormalizeDuplicatePolicy returns a canonical policy or empty string if unknown.
func NormalizeDuplicatePolicy(raw string) DuplicatePolicy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(DuplicatesError), "throw":
		return DuplicatesError
	case string(DuplicatesWarn), "warning":
		return DuplicatesWarn
	default:
		return ""
	}
}

// VersionBanner selects the banner shown above a docs version.
type VersionBanner string

const (
	BannerNone         VersionBanner = "none"
	BannerUnreleased   VersionBanner = "unreleased"
	BannerUnmaintained VersionBanner = "unmaintained"
)

// NormalizeVersionBanner returns a canonical banner or empty string if unknown.
func NormalizeVersionBanner(raw string) VersionBanner {
	switch VersionBanner(strings.ToLower(strings.TrimSpace(raw))) {
	case BannerNone:
		return BannerNone
	case BannerUnreleased:
		return BannerUnreleased
	case BannerUnmaintained:
		return BannerUnmaintained
	default:
		return ""
	}
}

// NavPosition places a navbar item.
type NavPosition string

const (
	PositionLeft  NavPosition = "left"
	PositionRight NavPosition = "right"
)

// NormalizeNavPosition returns a canonical position or empty string if unknown.
func NormalizeNavPosition(raw string) NavPosition {
	switch NavPosition(strings.ToLower(strings.TrimSpace(raw))) {
	case PositionLeft:
		return PositionLeft
	case PositionRight:
		return PositionRight
	default:
		return ""
	}
}

// FooterStyle selects the footer color scheme.
type FooterStyle string

const (
	FooterLight FooterStyle = "light"
	FooterDark  FooterStyle = "dark"
)

// NormalizeFooterStyle returns a canonical style or empty string if unknown.
func NormalizeFooterStyle(raw string) FooterStyle {
	switch FooterStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case FooterLight:
		return FooterLight
	case FooterDark:
		return FooterDark
	default:
		return ""
	}
}
