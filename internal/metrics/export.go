package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// WriteTextfile writes every metric in the recorder's registry to path in
// the text exposition format read by node-exporter's textfile collector.
// A nil recorder writes nothing.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
			WithContext("path", path).
			Build()
	}
	return nil
}

// HTTPHandler returns an http.Handler that serves the recorder's metrics.
func (p *PrometheusRecorder) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
