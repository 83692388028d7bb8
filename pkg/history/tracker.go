package history

import (
	"fmt"

	"github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/pkg/ring"
)

// Tracker keeps the most recent values recorded into it, up to a fixed
// capacity. Recording into a full Tracker evicts the oldest value.
//
// A Tracker is not safe for concurrent use.
type Tracker[T any] struct {
	ring     *ring.Buffer[T]
	capacity int

	// count is how many of the ring's slots, counted from the front, hold
	// recorded values. The rest hold zero values.
	count int

	stats   *Statistics
	metrics *trackerMetrics // Optional Prometheus metrics
	opts    *trackerOptions[T]
}

// New creates a Tracker that retains up to capacity values.
func New[T any](capacity int, options ...Option[T]) (*Tracker[T], error) {
	if capacity <= 0 {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: capacity %d", errors.ErrZeroLength, capacity),
			"Tracker", "New", "validate capacity")
	}

	opts := applyOptions(options...)

	var metrics *trackerMetrics
	if opts.metricsReg != nil {
		var err error
		metrics, err = newTrackerMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "Tracker", "New", "metrics registration")
		}
	}

	opts.logger.Debug("History tracker created",
		"capacity", capacity,
		"metrics", metrics != nil)

	return &Tracker[T]{
		ring:     ring.New[T](capacity),
		capacity: capacity,
		stats:    NewStatistics(),
		metrics:  metrics,
		opts:     opts,
	}, nil
}

// Record adds v as the latest value, evicting the oldest one when the
// Tracker is full.
func (t *Tracker[T]) Record(v T) {
	if t.count == t.capacity {
		evicted := t.ring.Back()
		t.stats.Evict()
		if t.metrics != nil {
			t.metrics.recordEviction()
		}
		if len(t.opts.evictCallbacks) > 0 {
			defer t.evicted(evicted)
		}
	} else {
		t.count++
	}

	t.ring.PushFront(v)

	t.stats.Record()
	t.stats.UpdateSize(int64(t.count))
	if t.metrics != nil {
		t.metrics.recordRecord(t.count, t.capacity)
	}
}

func (t *Tracker[T]) evicted(v T) {
	for _, callback := range t.opts.evictCallbacks {
		callback(v)
	}
}

// Latest returns the most recently recorded value.
func (t *Tracker[T]) Latest() (T, bool) {
	if t.count == 0 {
		var zero T
		return zero, false
	}
	return t.ring.Front(), true
}

// Oldest returns the oldest retained value.
func (t *Tracker[T]) Oldest() (T, bool) {
	if t.count == 0 {
		var zero T
		return zero, false
	}
	return t.ring.At(t.capacity - t.count), true
}

// Undo removes and returns the most recently recorded value. An evicted
// value is not restored.
func (t *Tracker[T]) Undo() (T, bool) {
	if t.count == 0 {
		var zero T
		return zero, false
	}

	v := t.ring.PopFront()
	t.count--

	t.stats.Undo()
	t.stats.UpdateSize(int64(t.count))
	if t.metrics != nil {
		t.metrics.recordUndo(t.count, t.capacity)
	}
	return v, true
}

// Snapshot returns a copy of the retained values, oldest first.
func (t *Tracker[T]) Snapshot() []T {
	t.stats.Snapshot()
	return t.values()
}

func (t *Tracker[T]) values() []T {
	out := make([]T, 0, t.count)
	for i := t.capacity - t.count; i < t.capacity; i++ {
		out = append(out, t.ring.At(i))
	}
	return out
}

// Recent returns up to n retained values, newest first.
func (t *Tracker[T]) Recent(n int) []T {
	if n > t.count {
		n = t.count
	}
	if n <= 0 {
		return nil
	}

	out := make([]T, 0, n)
	for _, v := range t.ring.Backward() {
		if len(out) == n {
			break
		}
		out = append(out, v)
	}
	return out
}

// Len returns the number of retained values.
func (t *Tracker[T]) Len() int {
	return t.count
}

// Capacity returns the maximum number of retained values.
func (t *Tracker[T]) Capacity() int {
	return t.capacity
}

// Reset drops every retained value without invoking the evict callback.
// Statistics are kept.
func (t *Tracker[T]) Reset() {
	clear(t.ring.Slice())
	t.count = 0

	t.stats.UpdateSize(0)
	if t.metrics != nil {
		t.metrics.updateSize(0, t.capacity)
	}
	t.opts.logger.Debug("History tracker reset", "capacity", t.capacity)
}

// Stats returns the tracker statistics.
func (t *Tracker[T]) Stats() *Statistics {
	return t.stats
}
