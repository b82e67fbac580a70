// Package monitoring provides Prometheus metrics for the shell backend.
//
// Metrics cover the HTTP surface, window lifecycle, app launches, the
// websocket event stream, and the cloud upload queue. The collector is
// created once at server startup and threaded into the components that
// record against it; metrics are exposed on GET /metrics.
package monitoring
