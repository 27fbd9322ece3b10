package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

const namespace = "docnav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry    *prom.Registry
	runDuration prom.Histogram
	runOutcome  *prom.CounterVec
	entries     *prom.GaugeVec
	maxDepth    prom.Gauge
	issues      *prom.GaugeVec
	lastRun     prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "validation_duration_seconds",
		Help:      "Duration of sidebar validation runs",
		Buckets:   prom.DefBuckets,
	})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "validation_runs_total",
		Help:      "Validation runs by outcome",
	}, []string{"outcome"})
	pr.entries = prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "sidebar_entries",
		Help:      "Entries in the last valid sidebar tree by kind",
	}, []string{"kind"})
	pr.maxDepth = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "sidebar_max_depth",
		Help:      "Deepest category nesting in the last valid sidebar tree",
	})
	pr.issues = prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "validation_issues",
		Help:      "Issues reported by the last validation run by severity",
	}, []string{"severity"})
	pr.lastRun = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last finished validation run",
	})
	reg.MustRegister(pr.runDuration, pr.runOutcome, pr.entries, pr.maxDepth, pr.issues, pr.lastRun)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome Outcome) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) SetTreeStats(stats sidebar.Stats) {
	if p == nil || p.entries == nil {
		return
	}
	p.entries.WithLabelValues("sidebar").Set(float64(stats.Sidebars))
	p.entries.WithLabelValues(string(sidebar.KindDoc)).Set(float64(stats.Docs))
	p.entries.WithLabelValues(string(sidebar.KindCategory)).Set(float64(stats.Categories))
	p.entries.WithLabelValues(string(sidebar.KindLink)).Set(float64(stats.Links))
	p.entries.WithLabelValues(string(sidebar.KindHTML)).Set(float64(stats.HTML))
	p.maxDepth.Set(float64(stats.MaxDepth))
}

func (p *PrometheusRecorder) SetIssues(severity string, n int) {
	if p == nil || p.issues == nil {
		return
	}
	p.issues.WithLabelValues(severity).Set(float64(n))
}
