// Package history keeps bounded recent history on top of ring.Buffer.
//
// Tracker retains the last N values recorded into it. Recording into a full
// Tracker evicts the oldest value, which can be observed through
// WithEvictCallback. Undo takes back the latest value.
//
//	tracker, err := history.New[string](100,
//	    history.WithMetrics[string](registry, "commands"),
//	)
//	if err != nil {
//	    return err
//	}
//	tracker.Record("ls")
//	latest, _ := tracker.Latest()
//
// Window aggregates a sliding window of numeric samples with an
// incrementally maintained sum:
//
//	w, _ := history.NewWindow[float64](10)
//	w.Add(1.5)
//	mean := w.Mean()
//
// Statistics are always collected and available through Stats. Prometheus
// metrics under the ringbuf_history_* names are registered when WithMetrics
// is given a registry.
//
// Neither type is safe for concurrent use. Statistics may be read from other
// goroutines.
package history
