package ring

import "iter"

// cursor is the traversal state shared by Iter and IterMut.
//
// next and nextBack are positions, not slots: they grow without wrapping
// and are reduced modulo the length only when an element is accessed. That
// keeps next <= nextBack a plain integer invariant no matter how often the
// range wraps, and nextBack-next is always the number of elements left.
// Forward steps consume [next, ...) and backward steps (..., nextBack), so
// the two ends never meet on the same position.
type cursor struct {
	next     int
	nextBack int
	length   int
}

func newCursor(start, length int) cursor {
	return cursor{next: start, nextBack: start + length, length: length}
}

// advance returns the slot of the next element from the front of the range.
func (c *cursor) advance() (int, bool) {
	if c.next >= c.nextBack {
		return 0, false
	}
	idx := c.next % c.length
	c.next++
	return idx, true
}

// retreat returns the slot of the next element from the back of the range.
func (c *cursor) retreat() (int, bool) {
	if c.next >= c.nextBack {
		return 0, false
	}
	c.nextBack--
	return c.nextBack % c.length, true
}

func (c *cursor) remaining() int {
	return c.nextBack - c.next
}

// Iter iterates over a Buffer from both ends.
//
// Once Next or NextBack reports false the iterator stays exhausted. The
// Buffer must not be pushed to or popped from while the iterator is in use.
type Iter[T any] struct {
	data []T
	cursor
}

// Next returns the next element in back to front order.
func (it *Iter[T]) Next() (T, bool) {
	idx, ok := it.advance()
	if !ok {
		var zero T
		return zero, false
	}
	return it.data[idx], true
}

// NextBack returns the next element in front to back order.
func (it *Iter[T]) NextBack() (T, bool) {
	idx, ok := it.retreat()
	if !ok {
		var zero T
		return zero, false
	}
	return it.data[idx], true
}

// Len returns the exact number of elements not yet yielded.
func (it *Iter[T]) Len() int {
	return it.remaining()
}

// IterMut iterates over pointers into a Buffer from both ends.
//
// Every pointer refers to a different slot, so all of them may be held and
// written through at the same time. Nothing else may access the Buffer while
// those pointers are in use.
type IterMut[T any] struct {
	data []T
	cursor
}

// Next returns a pointer to the next element in back to front order.
func (it *IterMut[T]) Next() (*T, bool) {
	idx, ok := it.advance()
	if !ok {
		return nil, false
	}
	return &it.data[idx], true
}

// NextBack returns a pointer to the next element in front to back order.
func (it *IterMut[T]) NextBack() (*T, bool) {
	idx, ok := it.retreat()
	if !ok {
		return nil, false
	}
	return &it.data[idx], true
}

// Len returns the exact number of elements not yet yielded.
func (it *IterMut[T]) Len() int {
	return it.remaining()
}

// All returns an iterator over logical index/element pairs from back to
// front.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := b.Iter()
		for i := 0; ; i++ {
			v, ok := it.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// Backward returns an iterator over logical index/element pairs from front
// to back.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := b.Iter()
		for i := it.Len() - 1; ; i-- {
			v, ok := it.NextBack()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// Pointers returns an iterator over pointers to the elements from back to
// front, following the rules of IterMut.
func (b *Buffer[T]) Pointers() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		it := b.IterMut()
		for {
			p, ok := it.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}
