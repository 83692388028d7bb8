// Package metric provides Prometheus-based metrics collection and an HTTP
// server for ringbuf tools.
//
// The package offers a registry holding the core tool metrics (input lines,
// bytes, read durations, errors) next to component metrics registered by
// packages such as history. A Server exposes everything in Prometheus format.
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//	if err := server.Start(func(err error) { slog.Error("metrics", "error", err) }); err != nil {
//	    return err
//	}
//	defer server.Stop(context.Background())
//
//	registry.CoreMetrics().RecordLine("stdin", len(line))
//
// Metrics are served at http://localhost:9090/metrics with a health check at
// /health.
//
// # Component Metrics
//
// Components register their own collectors through MetricsRegistrar. Each
// registration is keyed by component and metric name; registering the same
// key twice returns an Invalid classified error:
//
//	records := prometheus.NewCounter(prometheus.CounterOpts{
//	    Namespace:   "ringbuf",
//	    Subsystem:   "history",
//	    Name:        "records_total",
//	    ConstLabels: prometheus.Labels{"component": "access_log"},
//	})
//	if err := registry.RegisterCounter("access_log", "history_records", records); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// MetricsRegistry and Server are safe for concurrent use. Prometheus
// collectors are themselves thread-safe.
package metric
