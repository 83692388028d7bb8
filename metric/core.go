package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains tool-level metrics shared by the ringbuf commands
type Metrics struct {
	BuildInfo    *prometheus.GaugeVec
	InputLines   *prometheus.CounterVec
	InputBytes   *prometheus.CounterVec
	ReadDuration *prometheus.HistogramVec
	ErrorsTotal  *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ringbuf",
				Name:      "build_info",
				Help:      "Build information, always 1",
			},
			[]string{"version", "run_id"},
		),

		InputLines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringbuf",
				Subsystem: "input",
				Name:      "lines_total",
				Help:      "Total number of input lines read",
			},
			[]string{"source"},
		),

		InputBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringbuf",
				Subsystem: "input",
				Name:      "bytes_total",
				Help:      "Total number of input bytes read",
			},
			[]string{"source"},
		),

		ReadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ringbuf",
				Subsystem: "input",
				Name:      "read_duration_seconds",
				Help:      "Time spent draining an input source",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringbuf",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"type"},
		),
	}
}

func (c *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.BuildInfo,
		c.InputLines,
		c.InputBytes,
		c.ReadDuration,
		c.ErrorsTotal,
	}
}

// RecordBuildInfo publishes the running version
func (c *Metrics) RecordBuildInfo(version, runID string) {
	c.BuildInfo.WithLabelValues(version, runID).Set(1)
}

// RecordLine counts one input line of n bytes
func (c *Metrics) RecordLine(source string, n int) {
	c.InputLines.WithLabelValues(source).Inc()
	c.InputBytes.WithLabelValues(source).Add(float64(n))
}

// RecordReadDuration records how long draining a source took
func (c *Metrics) RecordReadDuration(source string, duration time.Duration) {
	c.ReadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordError increments error counter
func (c *Metrics) RecordError(errorType string) {
	c.ErrorsTotal.WithLabelValues(errorType).Inc()
}
