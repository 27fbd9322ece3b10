// Package metrics records validation runs for Prometheus.
//
// Commands receive a Recorder: NoopRecorder when metrics are not requested,
// PrometheusRecorder otherwise. The Prometheus recorder registers its
// collectors on its own registry, which the CLI either serves over HTTP in
// watch mode or writes to a node-exporter textfile after a one-shot
// validation.
package metrics
