// Package ring provides a fixed-length, always-full ring buffer with
// two-ended iteration.
//
// # Overview
//
// A Buffer allocates its storage exactly once. Every slot always holds a
// value: something that was pushed, or the zero value of the element type.
// Pushing at one end overwrites the element at the other end, and popping
// resets the popped slot to the zero value, so the buffer never shrinks.
// This suits sliding windows, recent-history trackers and fixed-size queues.
//
// # Orientation
//
// The back is the oldest element and the front the most recently pushed one.
// Logical index 0 is the back and Len()-1 the front; indexes wrap:
//
//	buf := ring.Of(3, 4, 5, 6) // back 3, front 6
//	buf.At(0)                  // 3
//	buf.At(4)                  // 3
//	buf.PushFront(8)           // evicts 3
//	buf.At(0)                  // 4
//	buf.Front()                // 8
//
// PushBack goes the other way: it evicts the front and inserts at the back.
//
// # Representation
//
// The buffer is a slice plus a single cursor, the physical slot of the back.
// Every access translates a logical index i to slot (cursor+i) mod Len().
//
// # Iteration
//
// Iter and IterMut walk back to front with Next and front to back with
// NextBack, and both directions may be mixed on one iterator. They keep two
// unwrapped positions and only reduce them modulo Len() on access, so the
// remaining count is always exact and no slot is visited twice. IterMut
// relies on that to hand out pointers to distinct slots that may all be used
// at once. All, Backward and Pointers adapt them to range-over-func loops:
//
//	for i, v := range buf.All() {
//		fmt.Println(i, v)
//	}
//	for p := range buf.Pointers() {
//		*p += 2
//	}
//
// # Preconditions
//
// Misuse panics with a classified error from the errors package: a zero
// length buffer and IterMut over a zero sized element type are Fatal, a
// negative index is Invalid. Every other operation is total.
//
// # Thread Safety
//
// A Buffer is not safe for concurrent use. Reading through iterators from
// several goroutines is fine as long as nothing mutates the buffer.
package ring
