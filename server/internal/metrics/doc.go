// Package metrics exposes query counters and timings in Prometheus format.
//
// Collectors live on a private registry rather than the global default, and
// Metrics.ServeHTTP encodes the gathered families with expfmt. All recording
// methods accept a nil receiver.
package metrics
