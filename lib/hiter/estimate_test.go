package hiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func even(v int) bool {
	return v%2 == 0
}

func TestEstimateMin(t *testing.T) {
	tests := []struct {
		name     string
		it       func() Iterator[int]
		n        int
		expected Hint
	}{
		{"above inner", func() Iterator[int] { return Range(0, 7) }, 10, Hint{Lower: 10, Upper: 7, Bounded: true}},
		{"below inner", func() Iterator[int] { return Range(0, 7) }, 3, Hint{Lower: 7, Upper: 7, Bounded: true}},
		{"zero", func() Iterator[int] { return Range(0, 7) }, 0, Hint{Lower: 7, Upper: 7, Bounded: true}},
		{"filtered", func() Iterator[int] { return Filter(Range(0, 10), even) }, 5, Hint{Lower: 5, Upper: 10, Bounded: true}},
		{"unknown", func() Iterator[int] { return Pull(Seq(Range(0, 3))) }, 2, Hint{Lower: 2}},
		{"negative", func() Iterator[int] { return Pull(Seq(Range(0, 3))) }, -4, Hint{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			inner := test.it()
			expectedValues := Collect(test.it())

			it := EstimateMin(inner, test.n)
			defer it.Stop()

			assert.Equal(t, test.expected, it.SizeHint())

			var values []int
			for {
				v, ok := it.Next()
				if !ok {
					break
				}
				values = append(values, v)

				assert.Equal(t, test.expected, it.SizeHint())
			}

			assert.Equal(t, expectedValues, values)
			assert.Equal(t, test.expected, it.SizeHint())
		})
	}
}

func TestEstimateExact(t *testing.T) {
	for _, n := range []int{0, 1, 5, 10, 200} {
		it := EstimateExact(Range(0, 10), n)

		assert.Equal(t, Exact(n), it.SizeHint())
		assert.True(t, it.SizeHint().IsExact())

		require.Equal(t, 10, Len[int](it))
		assert.Equal(t, Exact(n), it.SizeHint())
	}
}

func TestEstimateExactEmpty(t *testing.T) {
	it := EstimateExact(Empty[int](), 0)

	assert.Equal(t, Hint{Lower: 0, Upper: 0, Bounded: true}, it.SizeHint())

	_, ok := it.Next()
	assert.False(t, ok)
	_, ok = it.Next()
	assert.False(t, ok)

	assert.Empty(t, Collect[int](it))
	assert.Equal(t, Exact(0), it.SizeHint())
}

func TestEstimateExactFiltered(t *testing.T) {
	it := EstimateExact(Filter(Range(0, 10), even), 5)

	var values []int
	for range 5 {
		assert.Equal(t, Exact(5), it.SizeHint())

		v, ok := it.Next()
		require.True(t, ok)
		values = append(values, v)
	}

	_, ok := it.Next()
	assert.False(t, ok)

	assert.Equal(t, []int{0, 2, 4, 6, 8}, values)
	assert.Equal(t, Exact(5), it.SizeHint())
}

func TestEstimateVisibleDownstream(t *testing.T) {
	plain := Collect(Filter(Range(0, 10), even))
	estimated := Collect[int](EstimateExact(Filter(Range(0, 10), even), 5))

	assert.Equal(t, plain, estimated)
	assert.Equal(t, 5, cap(estimated))

	mapped := Map[int](EstimateExact(Filter(Range(0, 10), even), 5), func(v int) string {
		return string(rune('a' + v))
	})
	assert.Equal(t, Exact(5), HintOf(mapped))
	assert.Equal(t, []string{"a", "c", "e", "g", "i"}, Collect(mapped))
}

func TestEstimateUndershoot(t *testing.T) {
	values := Collect[int](EstimateExact(Range(0, 5), 3))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, values)
	assert.GreaterOrEqual(t, cap(values), 5)
}

func TestEstimateOvershoot(t *testing.T) {
	values := Collect[int](EstimateExact(Range(0, 100), 200))

	assert.Len(t, values, 100)
	assert.Equal(t, 200, cap(values))
}

func TestEstimateMax(t *testing.T) {
	it := EstimateMax(Range(0, 15), 10)
	assert.Equal(t, Exact(10), it.SizeHint())
	assert.Equal(t, 15, Len[int](it))

	it = EstimateMax(Range(0, 4), 10)
	assert.Equal(t, Hint{Lower: 4, Upper: 10, Bounded: true}, it.SizeHint())
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name     string
		hint     Hint
		expected Hint
	}{
		{"verbatim", Hint{Lower: 10, Upper: 20, Bounded: true}, Hint{Lower: 10, Upper: 20, Bounded: true}},
		{"unbounded", Hint{Lower: 5}, Hint{Lower: 5}},
		{"unbounded ignores upper", Hint{Lower: 5, Upper: 3}, Hint{Lower: 5}},
		{"upper below lower", Hint{Lower: 5, Upper: 3, Bounded: true}, Exact(5)},
		{"negative", Hint{Lower: -1, Upper: -1, Bounded: true}, Exact(0)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			it := Estimate(Range(0, 5), test.hint)

			assert.Equal(t, test.expected, it.SizeHint())
			assert.Equal(t, []int{0, 1, 2, 3, 4}, Collect[int](it))
			assert.Equal(t, test.expected, it.SizeHint())
		})
	}
}

func TestEstimateChained(t *testing.T) {
	it := Concat[int](EstimateExact(Range(0, 3), 5), EstimateExact(Range(3, 6), 5))

	assert.Equal(t, Exact(10), HintOf(it))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, Collect(it))
}

func TestEstimateUnwrap(t *testing.T) {
	inner := Range(0, 3)
	it := EstimateExact(inner, 100)

	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	unwrapped := it.Unwrap()
	assert.Same(t, inner, unwrapped)
	assert.Equal(t, Exact(2), HintOf(unwrapped))
}

func TestEstimateStop(t *testing.T) {
	var stopped bool
	it := EstimateExact(Pull(func(yield func(int) bool) {
		defer func() { stopped = true }()

		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}), 3)

	for range 3 {
		_, ok := it.Next()
		require.True(t, ok)
	}

	it.Stop()
	assert.True(t, stopped)

	_, ok := it.Next()
	assert.False(t, ok)
}
