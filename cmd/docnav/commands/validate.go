package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/resolve"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	SiteFlags   `embed:""`
	MetricsFile string `help:"Write Prometheus metrics to this textfile after validating" type:"path"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	if v.MetricsFile == "" {
		_, err := runValidation(g.out(), root, v.SiteFlags, metrics.NoopRecorder{})
		return err
	}
	recorder := metrics.NewPrometheusRecorder(nil)
	_, err := runValidation(g.out(), root, v.SiteFlags, recorder)
	if werr := recorder.WriteTextfile(v.MetricsFile); werr != nil {
		slog.Warn("Failed to write metrics", logfields.Path(v.MetricsFile), logfields.Error(werr))
	}
	return err
}

// runValidation performs one validation pass, prints a summary and records
// the outcome. The loaded site is returned even when validation fails.
func runValidation(w io.Writer, root *CLI, flags SiteFlags, recorder metrics.Recorder) (*site, error) {
	start := time.Now()
	s, err := loadSite(root, flags)
	recorder.ObserveRunDuration(time.Since(start))

	if s != nil && s.tree != nil {
		stats := s.tree.Stats()
		recorder.SetTreeStats(stats)
		for _, warning := range s.tree.Warnings() {
			fmt.Fprintf(w, "warning: %s\n", warning)
		}
		for _, issue := range s.report.Issues {
			if issue.Severity != resolve.SeverityInfo || root.Verbose {
				fmt.Fprintln(w, issue)
			}
		}
		recorder.SetIssues(string(resolve.SeverityError), s.report.Count(resolve.SeverityError))
		recorder.SetIssues(string(resolve.SeverityWarning), s.report.Count(resolve.SeverityWarning)+len(s.tree.Warnings()))
		recorder.SetIssues(string(resolve.SeverityInfo), s.report.Count(resolve.SeverityInfo))

		summary := fmt.Sprintf("%d sidebars, %d documents, %d categories, %d links", stats.Sidebars, stats.Docs, stats.Categories, stats.Links)
		if s.index != nil {
			summary += fmt.Sprintf(", %d indexed (%d unlisted)", s.index.Len(), s.report.Count(resolve.SeverityInfo))
		}
		fmt.Fprintln(w, summary)
	}

	switch {
	case err != nil:
		recorder.IncRunOutcome(metrics.OutcomeFailed)
		return s, err
	case s.report.HasErrors():
		recorder.IncRunOutcome(metrics.OutcomeFailed)
		return s, s.report.Err()
	case len(s.tree.Warnings()) > 0 || s.report.Count(resolve.SeverityWarning) > 0:
		recorder.IncRunOutcome(metrics.OutcomeWarning)
	default:
		recorder.IncRunOutcome(metrics.OutcomeSuccess)
	}
	fmt.Fprintln(w, "sidebar is valid")
	return s, nil
}
