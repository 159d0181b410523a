package hiter

import "iter"

type sliceIter[T any] struct {
	s []T
}

func (it *sliceIter[T]) Next() (T, bool) {
	if len(it.s) == 0 {
		var zero T
		return zero, false
	}

	v := it.s[0]
	it.s = it.s[1:]

	return v, true
}

func (it *sliceIter[T]) SizeHint() Hint {
	return Exact(len(it.s))
}

func Slice[T any](s []T) Iterator[T] {
	return &sliceIter[T]{s: s}
}

func Empty[T any]() Iterator[T] {
	return &sliceIter[T]{}
}

type rangeIter struct {
	cur, end int
}

func (it *rangeIter) Next() (int, bool) {
	if it.cur >= it.end {
		return 0, false
	}

	v := it.cur
	it.cur++

	return v, true
}

func (it *rangeIter) SizeHint() Hint {
	if it.cur >= it.end {
		return Exact(0)
	}

	n := it.end - it.cur
	if n < 0 {
		// span does not fit in an int
		return AtLeast(maxInt)
	}

	return Exact(n)
}

// Range yields the integers in [start, end).
func Range(start, end int) Iterator[int] {
	return &rangeIter{cur: start, end: end}
}

type pullIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next() (T, bool) {
	return it.next()
}

func (it *pullIter[T]) Stop() {
	it.stop()
}

// Pull turns a push iterator into an Iterator. Its size is unknown.
// Stop must be called if the iterator is not drained.
func Pull[T any](seq iter.Seq[T]) Iterator[T] {
	next, stop := iter.Pull(seq)

	return &pullIter[T]{next: next, stop: stop}
}
