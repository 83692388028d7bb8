package history

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/ringbuf/metric"
)

// trackerMetrics holds Prometheus metrics for tracker operations.
type trackerMetrics struct {
	records   prometheus.Counter
	evictions prometheus.Counter
	undos     prometheus.Counter

	size        prometheus.Gauge
	utilization prometheus.Gauge
}

// newTrackerMetrics creates and registers tracker metrics with the provided registry.
func newTrackerMetrics(registry *metric.MetricsRegistry, prefix string) (*trackerMetrics, error) {
	labels := prometheus.Labels{"component": prefix}

	m := &trackerMetrics{
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringbuf",
			Subsystem:   "history",
			Name:        "records_total",
			ConstLabels: labels,
			Help:        "Total number of recorded values",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringbuf",
			Subsystem:   "history",
			Name:        "evictions_total",
			ConstLabels: labels,
			Help:        "Total number of values pushed out by newer ones",
		}),
		undos: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringbuf",
			Subsystem:   "history",
			Name:        "undos_total",
			ConstLabels: labels,
			Help:        "Total number of undone values",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringbuf",
			Subsystem:   "history",
			Name:        "size",
			ConstLabels: labels,
			Help:        "Current number of retained values",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringbuf",
			Subsystem:   "history",
			Name:        "utilization",
			ConstLabels: labels,
			Help:        "Retained values as a fraction of capacity (0.0 to 1.0)",
		}),
	}

	registrations := []struct {
		name     string
		register func() error
	}{
		{"history_records", func() error { return registry.RegisterCounter(prefix, "history_records", m.records) }},
		{"history_evictions", func() error { return registry.RegisterCounter(prefix, "history_evictions", m.evictions) }},
		{"history_undos", func() error { return registry.RegisterCounter(prefix, "history_undos", m.undos) }},
		{"history_size", func() error { return registry.RegisterGauge(prefix, "history_size", m.size) }},
		{"history_utilization", func() error {
			return registry.RegisterGauge(prefix, "history_utilization", m.utilization)
		}},
	}

	// All or nothing, so a failed tracker does not hold on to its prefix.
	for i, r := range registrations {
		if err := r.register(); err != nil {
			for _, done := range registrations[:i] {
				registry.Unregister(prefix, done.name)
			}
			return nil, err
		}
	}

	return m, nil
}

func (m *trackerMetrics) recordRecord(size, capacity int) {
	m.records.Inc()
	m.updateSize(size, capacity)
}

func (m *trackerMetrics) recordEviction() {
	m.evictions.Inc()
}

func (m *trackerMetrics) recordUndo(size, capacity int) {
	m.undos.Inc()
	m.updateSize(size, capacity)
}

func (m *trackerMetrics) updateSize(size, capacity int) {
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}
