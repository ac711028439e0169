// Package metrics exposes tenpin-server's Prometheus metrics from a private
// registry, so only the series registered here (plus Go runtime and process
// collectors) appear on /metrics.
package metrics
