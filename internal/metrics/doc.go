// Package metrics provides build metrics recording for mdpress.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never requires nil checks and costs
// nothing when disabled. PrometheusRecorder is the real implementation; it
// registers against an injectable prometheus.Registry so embedding programs
// decide how (or whether) to expose it.
package metrics
