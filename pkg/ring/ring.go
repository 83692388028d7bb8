package ring

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c360/ringbuf/errors"
)

// Buffer is a fixed-length ring buffer for arbitrary data.
//
// The buffer is always "full": every slot holds either a value that was
// pushed or the zero value of T. There is no removal distinct from
// overwriting a slot with the zero value. Absence that must be told apart
// from a real zero value can be modelled with a pointer or option element
// type.
//
// Logical index 0 always addresses the back (least recently pushed at the
// front) element and index Len()-1 the front. Indexes wrap, so Len()
// addresses the same element as 0.
//
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	data []T
	// next is the slot the next PushFront writes to. It is also the back
	// slot; the slot just before it (wrapping at zero) is the front.
	next int
}

// New creates a Buffer of the given length filled with zero values.
// It panics if length is not positive.
func New[T any](length int) *Buffer[T] {
	if length <= 0 {
		panic(errors.WrapFatal(errors.ErrZeroLength, "Buffer", "New", "allocate storage"))
	}
	return FromSlice(make([]T, length))
}

// FromSlice creates a Buffer that adopts values as its storage without
// copying. values[0] is the back element and the last value the front; the
// first PushFront overwrites values[0]. It panics if values is empty.
func FromSlice[T any](values []T) *Buffer[T] {
	if len(values) == 0 {
		panic(errors.WrapFatal(errors.ErrZeroLength, "Buffer", "FromSlice", "adopt storage"))
	}
	return &Buffer[T]{data: values}
}

// Of creates a Buffer holding the given values, the first one at the back
// and the last one at the front.
func Of[T any](values ...T) *Buffer[T] {
	return FromSlice(values)
}

// Len returns the number of slots. It never changes.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// FrontIdx returns the physical slot of the front element.
//
// The index only has meaning for the slice returned by Slice. It must not be
// confused with the logical indexes accepted by At.
func (b *Buffer[T]) FrontIdx() int {
	if b.next == 0 {
		return len(b.data) - 1
	}
	return b.next - 1
}

// BackIdx returns the physical slot of the back element. See FrontIdx.
func (b *Buffer[T]) BackIdx() int {
	return b.next
}

// Front returns the most recently pushed-at-front element.
func (b *Buffer[T]) Front() T {
	return b.data[b.FrontIdx()]
}

// FrontPtr returns a pointer to the front element.
func (b *Buffer[T]) FrontPtr() *T {
	return &b.data[b.FrontIdx()]
}

// Back returns the element at the back, the oldest one.
func (b *Buffer[T]) Back() T {
	return b.data[b.next]
}

// BackPtr returns a pointer to the back element.
func (b *Buffer[T]) BackPtr() *T {
	return &b.data[b.next]
}

// PushFront overwrites the back element with v and makes v the new front.
func (b *Buffer[T]) PushFront(v T) {
	b.data[b.next] = v
	b.next = (b.next + 1) % len(b.data)
}

// PushBack overwrites the front element with v and makes v the new back.
func (b *Buffer[T]) PushBack(v T) {
	b.next = b.FrontIdx()
	b.data[b.next] = v
}

// PopFront removes and returns the front element. Its slot is reset to the
// zero value and becomes the back; the former second most recent element is
// the new front.
func (b *Buffer[T]) PopFront() T {
	idx := b.FrontIdx()
	b.next = idx

	var zero T
	v := b.data[idx]
	b.data[idx] = zero
	return v
}

// PopBack removes and returns the back element. Its slot is reset to the
// zero value and becomes the front; the former second oldest element is the
// new back.
func (b *Buffer[T]) PopBack() T {
	idx := b.next
	b.next = (idx + 1) % len(b.data)

	var zero T
	v := b.data[idx]
	b.data[idx] = zero
	return v
}

// physical translates a logical index into a slot of data.
func (b *Buffer[T]) physical(op string, i int) int {
	if i < 0 {
		panic(errors.WrapInvalid(
			fmt.Errorf("%w: %d", errors.ErrIndexOutOfRange, i), "Buffer", op, "translate index"))
	}
	return (b.next + i%len(b.data)) % len(b.data)
}

// At returns the element at logical index i, counted from the back. i wraps
// modulo Len(). It panics if i is negative.
func (b *Buffer[T]) At(i int) T {
	return b.data[b.physical("At", i)]
}

// Ptr returns a pointer to the element at logical index i. See At.
func (b *Buffer[T]) Ptr(i int) *T {
	return &b.data[b.physical("Ptr", i)]
}

// Set replaces the element at logical index i. See At.
func (b *Buffer[T]) Set(i int, v T) {
	b.data[b.physical("Set", i)] = v
}

// Slice returns the storage in physical order. Use BackIdx and FrontIdx to
// locate the ends, or MakeContiguous to obtain logical order.
func (b *Buffer[T]) Slice() []T {
	return b.data
}

// MakeContiguous rotates the storage in place so that the back element is at
// physical index 0 and returns it, now in logical order.
func (b *Buffer[T]) MakeContiguous() []T {
	if b.next != 0 {
		reverse(b.data[:b.next])
		reverse(b.data[b.next:])
		reverse(b.data)
		b.next = 0
	}
	return b.data
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Iter returns an iterator over the elements from back to front.
func (b *Buffer[T]) Iter() *Iter[T] {
	return &Iter[T]{data: b.data, cursor: newCursor(b.next, len(b.data))}
}

// IterMut returns an iterator yielding pointers to the elements from back to
// front. No slot is yielded twice, whichever ends are consumed. It panics
// for zero sized T, whose distinct slots may share an address.
func (b *Buffer[T]) IterMut() *IterMut[T] {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		panic(errors.WrapFatal(errors.ErrZeroSizedElement, "Buffer", "IterMut", "create iterator"))
	}
	return &IterMut[T]{data: b.data, cursor: newCursor(b.next, len(b.data))}
}

// Clone returns a copy with its own storage.
func (b *Buffer[T]) Clone() *Buffer[T] {
	data := make([]T, len(b.data))
	copy(data, b.data)
	return &Buffer[T]{data: data, next: b.next}
}

// String formats the elements in logical order.
func (b *Buffer[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range b.All() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Equal reports whether a and b have the same length and hold equal
// elements in the same logical order. The physical rotation is ignored.
func Equal[T comparable](a, b *Buffer[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.data {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}
