// Package resolve checks a sidebar tree against the documents that exist on
// disk and derives the labels renderers show for document references.
package resolve

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docs"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Severity ranks a resolution issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one resolution finding.
type Issue struct {
	Severity Severity
	Sidebar  string
	Path     string // entry path; empty for unlisted documents
	DocID    string
	Message  string
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// Report is the outcome of Check.
type Report struct {
	Issues []Issue
}

// Count returns the number of issues with the given severity.
func (r Report) Count(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue has error severity.
func (r Report) HasErrors() bool { return r.Count(SeverityError) > 0 }

// Err returns a validation error listing every error-severity issue, or nil.
func (r Report) Err() error {
	var issues []sidebar.Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			issues = append(issues, sidebar.Issue{Path: i.Path, Message: i.Message, DocID: i.DocID})
		}
	}
	if len(issues) == 0 {
		return nil
	}
	return errors.WrapError(&sidebar.ValidationError{Issues: issues}, errors.CategoryValidation, "unresolved document references").
		Fatal().
		WithContext("issues", len(issues)).
		Build()
}

// Check verifies that every document reference and category link in tree
// names a document in index. Missing references are reported according to
// policy: throw yields errors, warn yields warnings, ignore drops them.
// Indexed documents that no sidebar references are reported as info.
func Check(tree *sidebar.Tree, index *docs.Index, policy config.BrokenLinkPolicy) Report {
	var report Report
	missing := missingSeverity(policy)
	referenced := make(map[string]struct{})

	note := func(name, path, id, kind string) {
		referenced[id] = struct{}{}
		if index.Has(id) || missing == "" {
			return
		}
		report.Issues = append(report.Issues, Issue{
			Severity: missing,
			Sidebar:  name,
			Path:     path,
			DocID:    id,
			Message:  fmt.Sprintf("%s %q not found in docs", kind, id),
		})
	}

	_ = tree.Walk(func(name, path string, _ int, e sidebar.Entry) error {
		switch v := e.(type) {
		case sidebar.DocRef:
			note(name, path, v.ID, "document")
		case sidebar.Category:
			if id, ok := v.LinkedDoc(); ok {
				note(name, path+".link", id, "category link")
			}
		}
		return nil
	})

	for _, id := range index.IDs() {
		if _, ok := referenced[id]; ok {
			continue
		}
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityInfo,
			DocID:    id,
			Message:  fmt.Sprintf("document %q is not listed in any sidebar", id),
		})
	}

	for _, i := range report.Issues {
		switch i.Severity {
		case SeverityWarning:
			slog.Warn("Unresolved document reference", logfields.Sidebar(i.Sidebar), logfields.EntryPath(i.Path), logfields.DocID(i.DocID))
		case SeverityInfo:
			slog.Debug("Unlisted document", logfields.DocID(i.DocID))
		}
	}
	return report
}

func missingSeverity(policy config.BrokenLinkPolicy) Severity {
	switch policy {
	case config.BrokenLinksWarn:
		return SeverityWarning
	case config.BrokenLinksIgnore:
		return ""
	default:
		return SeverityError
	}
}
