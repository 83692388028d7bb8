// Package ringbuf is the root of a small family of packages built around a
// fixed-length, always-full ring buffer.
//
// # Layout
//
//   - pkg/ring: Buffer, the ring itself, with push and pop at both ends,
//     wrapping logical indexes and double-ended iterators (Iter, IterMut and
//     range-over-func adapters).
//   - pkg/history: Tracker and Window, bounded recent history and sliding
//     numeric windows on top of ring.Buffer, with statistics and optional
//     Prometheus metrics.
//   - errors: classified errors (transient, invalid, fatal) shared by every
//     package. Violated ring preconditions panic with fatal or invalid
//     classified errors.
//   - config: JSON/YAML configuration with environment overrides.
//   - metric: Prometheus registry wrapper and metrics HTTP server.
//   - cmd/ringtail: keeps the last lines of its input and prints them at EOF.
//
// # Orientation
//
// A ring.Buffer has a front and a back. PushFront writes the newest value at
// the front and evicts the back; PushBack does the opposite. Logical index 0
// is the back and Len()-1 the front, and iteration runs from back to front.
//
//	buf := ring.New[int](3)
//	buf.PushFront(1)
//	buf.PushFront(2)
//	fmt.Println(buf) // [0 1 2]
//
// None of the buffer types are safe for concurrent use.
package ringbuf
