package metrics

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Outcome labels a finished validation run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
)

// Recorder defines observability hooks for validation runs.
type Recorder interface {
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome Outcome)
	SetTreeStats(stats sidebar.Stats)
	SetIssues(severity string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(Outcome)            {}
func (NoopRecorder) SetTreeStats(sidebar.Stats)       {}
func (NoopRecorder) SetIssues(string, int)            {}
