package ring

import (
	"slices"
	"testing"

	cerrors "github.com/c360/ringbuf/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectForward[T any](it *Iter[T]) []T {
	var out []T
	for {
		v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func collectBackward[T any](it *Iter[T]) []T {
	var out []T
	for {
		v, ok := it.NextBack()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// assertIterates checks both directions element by element, including the
// remaining length after every step.
func assertIterates(t *testing.T, buf *Buffer[int], expected []int) {
	t.Helper()

	it := buf.Iter()
	for i, want := range expected {
		require.Equal(t, len(expected)-i, it.Len())
		got, ok := it.Next()
		require.True(t, ok)
		assert.Equal(t, want, got, "forward element %d", i)
	}
	_, ok := it.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, it.Len())

	it = buf.Iter()
	for i := len(expected) - 1; i >= 0; i-- {
		require.Equal(t, i+1, it.Len())
		got, ok := it.NextBack()
		require.True(t, ok)
		assert.Equal(t, expected[i], got, "backward element %d", i)
	}
	_, ok = it.NextBack()
	assert.False(t, ok)
}

func TestIterLen(t *testing.T) {
	buf := New[int](3)

	it := buf.Iter()
	assert.Equal(t, 3, it.Len())
	it.Next()
	assert.Equal(t, 2, it.Len())
	it.Next()
	assert.Equal(t, 1, it.Len())
	it.Next()
	assert.Equal(t, 0, it.Len())
	it.Next()
	assert.Equal(t, 0, it.Len())
}

func TestIterLenConstantAcrossPushes(t *testing.T) {
	buf := New[int](5)
	for i := 0; i < 23; i++ {
		if i%3 == 0 {
			buf.PushBack(i)
		} else {
			buf.PushFront(i)
		}
		assert.Equal(t, buf.Len(), buf.Iter().Len())
		assert.Equal(t, buf.Len(), buf.IterMut().Len())
	}
}

func TestIterNext(t *testing.T) {
	buf := New[int](4)

	buf.PushFront(42)
	assertIterates(t, buf, []int{0, 0, 0, 42})

	buf.PushFront(13)
	assertIterates(t, buf, []int{0, 0, 42, 13})

	buf.PushFront(0)
	assertIterates(t, buf, []int{0, 42, 13, 0})

	buf.PushFront(7)
	assertIterates(t, buf, []int{42, 13, 0, 7})

	buf.PushFront(2)
	assertIterates(t, buf, []int{13, 0, 7, 2})
}

func TestIterFromSliceOrder(t *testing.T) {
	buf := Of("a", "b", "c", "d")

	assert.Equal(t, []string{"a", "b", "c", "d"}, collectForward(buf.Iter()))
	assert.Equal(t, []string{"d", "c", "b", "a"}, collectBackward(buf.Iter()))
}

func TestIterDoubleEnded(t *testing.T) {
	buf := Of(4, 5, 6, 7, 8)
	it := buf.Iter()

	next := func() any {
		v, ok := it.Next()
		if !ok {
			return nil
		}
		return v
	}
	nextBack := func() any {
		v, ok := it.NextBack()
		if !ok {
			return nil
		}
		return v
	}

	assert.Equal(t, 8, nextBack())
	assert.Equal(t, 4, next())
	assert.Equal(t, 7, nextBack())
	assert.Equal(t, 6, nextBack())
	assert.Equal(t, 5, next())
	assert.Nil(t, next())
	assert.Nil(t, next())
	assert.Nil(t, next())
	assert.Nil(t, next())
	assert.Nil(t, nextBack())
}

func TestIterExhaustionIsSticky(t *testing.T) {
	buf := Of(1, 2)
	buf.PushFront(3)

	it := buf.Iter()
	collectForward(it)
	for i := 0; i < 5; i++ {
		_, ok := it.Next()
		assert.False(t, ok)
		_, ok = it.NextBack()
		assert.False(t, ok)
		assert.Equal(t, 0, it.Len())
	}

	mut := buf.IterMut()
	for {
		if _, ok := mut.NextBack(); !ok {
			break
		}
	}
	for i := 0; i < 5; i++ {
		p, ok := mut.NextBack()
		assert.False(t, ok)
		assert.Nil(t, p)
		_, ok = mut.Next()
		assert.False(t, ok)
	}
}

// TestIterMirror checks that, for every split point, taking a prefix with
// Next and the rest with NextBack covers the same sequence as a forward walk.
func TestIterMirror(t *testing.T) {
	buf := New[int](6)
	for i := 1; i <= 9; i++ {
		buf.PushFront(i)
	}
	forward := collectForward(buf.Iter())

	backward := collectBackward(buf.Iter())
	reversed := slices.Clone(backward)
	slices.Reverse(reversed)
	require.Equal(t, forward, reversed)

	for split := 0; split <= buf.Len(); split++ {
		it := buf.Iter()
		var prefix []int
		for i := 0; i < split; i++ {
			v, ok := it.Next()
			require.True(t, ok)
			prefix = append(prefix, v)
		}
		suffix := collectBackward(it)
		slices.Reverse(suffix)

		assert.Equal(t, forward, append(prefix, suffix...), "split %d", split)
	}
}

func TestIterIsIndependentCopy(t *testing.T) {
	buf := Of(1, 2, 3)
	it := buf.Iter()
	it.Next()

	clone := *it
	v, _ := clone.Next()
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, it.Len(), "advancing a copy should not move the original")
}

func TestIterMut(t *testing.T) {
	buf := Of(1, 2, 3, 4)

	it := buf.IterMut()
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		*p += 2
	}

	assert.Equal(t, []int{3, 4, 5, 6}, collectForward(buf.Iter()))
}

func TestIterMutBothEnds(t *testing.T) {
	buf := New[int](4)
	for i := 1; i <= 5; i++ {
		buf.PushFront(i)
	}
	require.Equal(t, []int{2, 3, 4, 5}, collectForward(buf.Iter()))

	it := buf.IterMut()
	back, _ := it.Next()
	front, _ := it.NextBack()
	*back, *front = *front, *back

	assert.Equal(t, []int{5, 3, 4, 2}, collectForward(buf.Iter()))
}

// TestIterMutDistinctSlots holds every yielded pointer at once and checks that
// each slot of the storage was handed out exactly one time.
func TestIterMutDistinctSlots(t *testing.T) {
	patterns := map[string]func(step int) bool{
		"forward":     func(int) bool { return true },
		"backward":    func(int) bool { return false },
		"alternating": func(step int) bool { return step%2 == 0 },
		"front_heavy": func(step int) bool { return step%3 != 0 },
	}

	for name, forward := range patterns {
		t.Run(name, func(t *testing.T) {
			for n := 1; n <= 8; n++ {
				buf := New[int](n)
				for i := 0; i < n+n/2; i++ {
					buf.PushFront(i)
				}

				it := buf.IterMut()
				seen := make(map[*int]bool)
				for step := 0; ; step++ {
					var p *int
					var ok bool
					if forward(step) {
						p, ok = it.Next()
					} else {
						p, ok = it.NextBack()
					}
					if !ok {
						break
					}
					require.False(t, seen[p], "slot yielded twice (n=%d step=%d)", n, step)
					seen[p] = true
				}

				require.Len(t, seen, n)
				storage := buf.Slice()
				for i := range storage {
					assert.True(t, seen[&storage[i]], "slot %d never yielded (n=%d)", i, n)
				}
			}
		})
	}
}

func TestIterMutZeroSizedPanics(t *testing.T) {
	buf := New[struct{}](3)

	requirePanicsWith(t, cerrors.ErrZeroSizedElement, cerrors.ErrorFatal, func() { buf.IterMut() })
	requirePanicsWith(t, cerrors.ErrZeroSizedElement, cerrors.ErrorFatal, func() {
		for range buf.Pointers() {
		}
	})

	// Shared iteration is fine.
	assert.Len(t, collectForward(buf.Iter()), 3)
}

func TestAll(t *testing.T) {
	buf := Of(4, 5, 6)
	buf.PushFront(7)

	var indexes, values []int
	for i, v := range buf.All() {
		indexes = append(indexes, i)
		values = append(values, v)
	}
	assert.Equal(t, []int{0, 1, 2}, indexes)
	assert.Equal(t, []int{5, 6, 7}, values)

	for i, v := range buf.All() {
		assert.Equal(t, buf.At(i), v)
	}
}

func TestAllStopsEarly(t *testing.T) {
	buf := Of(1, 2, 3, 4, 5)

	var values []int
	for _, v := range buf.All() {
		if v == 3 {
			break
		}
		values = append(values, v)
	}
	assert.Equal(t, []int{1, 2}, values)
}

func TestBackward(t *testing.T) {
	buf := Of(4, 5, 6)
	buf.PushFront(7)

	var indexes, values []int
	for i, v := range buf.Backward() {
		indexes = append(indexes, i)
		values = append(values, v)
	}
	assert.Equal(t, []int{2, 1, 0}, indexes)
	assert.Equal(t, []int{7, 6, 5}, values)
}

func TestPointers(t *testing.T) {
	buf := Of(1, 2, 3, 4)
	buf.PushFront(5)

	for p := range buf.Pointers() {
		*p *= 10
	}
	assert.Equal(t, []int{20, 30, 40, 50}, collectForward(buf.Iter()))
}
