package commands

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docs"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/resolve"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/sidebar/loader"
)

// site is everything one validation pass produces.
type site struct {
	cfg    *config.Config
	tree   *sidebar.Tree
	index  *docs.Index // nil when no docs directory was available
	report resolve.Report
}

// labels resolves display labels against the docs index when there is one.
func (s *site) labels() resolve.Labels {
	return resolve.BuildLabels(s.tree, s.index)
}

// loadConfig reads the site configuration. A missing file is tolerated when
// the sidebar is given explicitly; defaults are used instead.
func loadConfig(path string, sidebarGiven bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if sidebarGiven && errors.HasCategory(err, errors.CategoryNotFound) {
		slog.Debug("No configuration file, using defaults", logfields.Path(path))
		return config.Defaults(), nil
	}
	return nil, err
}

// loadSite loads configuration, builds the tree and, when a docs directory is
// available, resolves references against it. Unresolved references are left
// in the site's report for the caller to judge; the partially populated site
// is returned alongside load errors so callers can still report statistics.
func loadSite(root *CLI, flags SiteFlags) (*site, error) {
	cfg, err := loadConfig(root.Config, flags.Sidebar != "")
	if err != nil {
		return nil, err
	}
	s := &site{cfg: cfg}

	sidebarPath := flags.Sidebar
	if sidebarPath == "" {
		sidebarPath = cfg.Docs.SidebarPath
	}
	raw, err := loader.Load(sidebarPath)
	if err != nil {
		return nil, err
	}

	policy := cfg.Docs.SidebarPolicy()
	if flags.AllowDuplicates {
		policy = sidebar.DuplicateWarn
	}
	s.tree, err = sidebar.BuildOrdered(raw,
		sidebar.WithDuplicatePolicy(policy),
		sidebar.WithLogger(slog.Default().With(logfields.Path(sidebarPath))),
	)
	if err != nil {
		return nil, err
	}

	docsDir := flags.Docs
	if docsDir == "" {
		docsDir = cfg.Docs.Path
		if _, statErr := os.Stat(docsDir); statErr != nil {
			slog.Debug("Docs directory not available, skipping reference checks", logfields.Path(docsDir))
			return s, nil
		}
	}
	s.index, err = docs.Scan(docsDir)
	if err != nil {
		return s, err
	}
	s.report = resolve.Check(s.tree, s.index, cfg.OnBrokenLinks)
	return s, nil
}
