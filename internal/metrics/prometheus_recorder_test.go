package metrics

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

func gather(t *testing.T, reg *prom.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func labeledValue(mf *dto.MetricFamily, label, value string) (float64, bool) {
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == label && lp.GetValue() == value {
				if m.GetCounter() != nil {
					return m.GetCounter().GetValue(), true
				}
				return m.GetGauge().GetValue(), true
			}
		}
	}
	return 0, false
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveRunDuration(150 * time.Millisecond)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.IncRunOutcome(OutcomeFailed)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.SetTreeStats(sidebar.Stats{Sidebars: 1, Docs: 42, Categories: 7, Links: 1, MaxDepth: 3})
	pr.SetIssues("warning", 2)

	mfs := gather(t, reg)

	runs := mfs["docnav_validation_runs_total"]
	require.NotNil(t, runs)
	v, ok := labeledValue(runs, "outcome", "success")
	require.True(t, ok)
	assert.InDelta(t, 2, v, 0.001)

	entries := mfs["docnav_sidebar_entries"]
	require.NotNil(t, entries)
	v, _ = labeledValue(entries, "kind", "doc")
	assert.InDelta(t, 42, v, 0.001)
	v, _ = labeledValue(entries, "kind", "category")
	assert.InDelta(t, 7, v, 0.001)

	depth := mfs["docnav_sidebar_max_depth"]
	require.NotNil(t, depth)
	assert.InDelta(t, 3, depth.GetMetric()[0].GetGauge().GetValue(), 0.001)

	hist := mfs["docnav_validation_duration_seconds"]
	require.NotNil(t, hist)
	assert.Equal(t, uint64(1), hist.GetMetric()[0].GetHistogram().GetSampleCount())

	issues := mfs["docnav_validation_issues"]
	v, _ = labeledValue(issues, "severity", "warning")
	assert.InDelta(t, 2, v, 0.001)

	assert.NotNil(t, mfs["docnav_last_run_timestamp_seconds"])
}

func TestNilRecorderIsNoop(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveRunDuration(time.Second)
		pr.IncRunOutcome(OutcomeWarning)
		pr.SetTreeStats(sidebar.Stats{})
		pr.SetIssues("error", 1)
	})
	assert.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "never.prom")))
	assert.Nil(t, pr.Registry())

	var rec Recorder = NoopRecorder{}
	rec.IncRunOutcome(OutcomeSuccess)
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRunOutcome(OutcomeWarning)

	path := filepath.Join(t.TempDir(), "docnav.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `docnav_validation_runs_total{outcome="warning"} 1`)
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "docnav.prom"))
	require.Error(t, err)
}

func TestHTTPHandler(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRunOutcome(OutcomeSuccess)

	srv := httptest.NewServer(pr.HTTPHandler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "docnav_validation_runs_total"))
}
