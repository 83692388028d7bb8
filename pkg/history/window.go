package history

// Number is the set of element types a Window can aggregate.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Window aggregates the most recent samples of a numeric series.
//
// The sum is maintained as samples enter and leave, so Sum and Mean are
// O(1). Min and Max scan the retained samples. For floating point samples
// the running sum may drift from a fresh summation after many evictions, and
// Min and Max are unspecified once a NaN is retained.
type Window[N Number] struct {
	samples *Tracker[N]
	sum     N
}

// NewWindow creates a Window over the last size samples.
func NewWindow[N Number](size int, options ...Option[N]) (*Window[N], error) {
	w := &Window[N]{}

	// Runs before any caller supplied callback.
	options = append([]Option[N]{WithEvictCallback[N](func(evicted N) {
		w.sum -= evicted
	})}, options...)

	samples, err := New(size, options...)
	if err != nil {
		return nil, err
	}
	w.samples = samples
	return w, nil
}

// Add records a sample, evicting the oldest one when the window is full.
func (w *Window[N]) Add(x N) {
	w.sum += x
	w.samples.Record(x)
}

// Sum returns the sum of the retained samples.
func (w *Window[N]) Sum() N {
	return w.sum
}

// Mean returns the average of the retained samples, or 0 when empty.
func (w *Window[N]) Mean() float64 {
	if w.samples.Len() == 0 {
		return 0
	}
	return float64(w.sum) / float64(w.samples.Len())
}

// Min returns the smallest retained sample.
func (w *Window[N]) Min() (N, bool) {
	return w.extreme(func(a, b N) bool { return a < b })
}

// Max returns the largest retained sample.
func (w *Window[N]) Max() (N, bool) {
	return w.extreme(func(a, b N) bool { return a > b })
}

func (w *Window[N]) extreme(better func(a, b N) bool) (N, bool) {
	values := w.samples.values()
	if len(values) == 0 {
		var zero N
		return zero, false
	}

	best := values[0]
	for _, v := range values[1:] {
		if better(v, best) {
			best = v
		}
	}
	return best, true
}

// Count returns the number of retained samples.
func (w *Window[N]) Count() int {
	return w.samples.Len()
}

// Size returns the maximum number of retained samples.
func (w *Window[N]) Size() int {
	return w.samples.Capacity()
}

// Values returns the retained samples, oldest first.
func (w *Window[N]) Values() []N {
	return w.samples.values()
}

// Stats returns statistics of the underlying sample tracker.
func (w *Window[N]) Stats() *Statistics {
	return w.samples.Stats()
}
