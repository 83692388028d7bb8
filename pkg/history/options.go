package history

import (
	"log/slog"

	"github.com/c360/ringbuf/metric"
)

// Option configures a Tracker using the functional options pattern.
type Option[T any] func(*trackerOptions[T])

// EvictCallback receives a recorded value pushed out by a newer one.
type EvictCallback[T any] func(evicted T)

// trackerOptions holds internal configuration for Tracker instances.
// Stats are always collected; metrics are optional.
type trackerOptions[T any] struct {
	evictCallbacks []EvictCallback[T]
	logger         *slog.Logger

	// metricsReg is optional; when set, stats are also exposed as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the component label for Prometheus metrics
	metricsPrefix string
}

// WithMetrics enables Prometheus metrics export for tracker statistics.
// The option is ignored if registry is nil or prefix is empty.
func WithMetrics[T any](registry *metric.MetricsRegistry, prefix string) Option[T] {
	return func(opts *trackerOptions[T]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// WithEvictCallback adds a function called with every evicted value. It may
// be given more than once; callbacks run in the order they were given.
func WithEvictCallback[T any](callback EvictCallback[T]) Option[T] {
	return func(opts *trackerOptions[T]) {
		if callback != nil {
			opts.evictCallbacks = append(opts.evictCallbacks, callback)
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(opts *trackerOptions[T]) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

func applyOptions[T any](options ...Option[T]) *trackerOptions[T] {
	opts := &trackerOptions[T]{
		logger: slog.Default(),
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
