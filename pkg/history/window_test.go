package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ringbuf/errors"
)

func TestNewWindow_InvalidSize(t *testing.T) {
	w, err := NewWindow[int](0)
	require.Error(t, err)
	assert.Nil(t, w)
	assert.True(t, errors.IsInvalid(err))
}

func TestWindow_Empty(t *testing.T) {
	w, err := NewWindow[float64](3)
	require.NoError(t, err)

	assert.Equal(t, 0.0, w.Sum())
	assert.Equal(t, 0.0, w.Mean())
	assert.Equal(t, 0, w.Count())
	assert.Equal(t, 3, w.Size())
	_, ok := w.Min()
	assert.False(t, ok)
	_, ok = w.Max()
	assert.False(t, ok)
	assert.Empty(t, w.Values())
}

func TestWindow_Sliding(t *testing.T) {
	w, err := NewWindow[int](3)
	require.NoError(t, err)

	steps := []struct {
		add   int
		sum   int
		mean  float64
		min   int
		max   int
		count int
	}{
		{add: 4, sum: 4, mean: 4, min: 4, max: 4, count: 1},
		{add: -2, sum: 2, mean: 1, min: -2, max: 4, count: 2},
		{add: 7, sum: 9, mean: 3, min: -2, max: 7, count: 3},
		{add: 1, sum: 6, mean: 2, min: -2, max: 7, count: 3},
		{add: 10, sum: 18, mean: 6, min: 1, max: 10, count: 3},
		{add: 0, sum: 11, mean: 11.0 / 3, min: 0, max: 10, count: 3},
	}

	for _, step := range steps {
		w.Add(step.add)
		assert.Equal(t, step.sum, w.Sum(), "after adding %d", step.add)
		assert.InDelta(t, step.mean, w.Mean(), 1e-9, "after adding %d", step.add)
		minimum, ok := w.Min()
		require.True(t, ok)
		assert.Equal(t, step.min, minimum, "after adding %d", step.add)
		maximum, ok := w.Max()
		require.True(t, ok)
		assert.Equal(t, step.max, maximum, "after adding %d", step.add)
		assert.Equal(t, step.count, w.Count())
	}

	assert.Equal(t, []int{1, 10, 0}, w.Values())
	assert.Equal(t, int64(3), w.Stats().Evictions())
}

func TestWindow_SumMatchesValues(t *testing.T) {
	w, err := NewWindow[int64](5)
	require.NoError(t, err)

	for i := int64(0); i < 100; i++ {
		w.Add(i*7 - 300)

		var sum int64
		for _, v := range w.Values() {
			sum += v
		}
		require.Equal(t, sum, w.Sum(), "sample %d", i)
	}
}

func TestWindow_CallerEvictCallback(t *testing.T) {
	var evicted []uint8
	w, err := NewWindow(2, WithEvictCallback[uint8](func(v uint8) {
		evicted = append(evicted, v)
	}))
	require.NoError(t, err)

	w.Add(1)
	w.Add(2)
	w.Add(3)

	assert.Equal(t, []uint8{1}, evicted)
	assert.Equal(t, uint8(5), w.Sum())
}
