package hiter

type filterIter[T any] struct {
	it   Iterator[T]
	keep func(T) bool
}

func (it *filterIter[T]) Next() (T, bool) {
	for {
		v, ok := it.it.Next()
		if !ok {
			return v, false
		}

		if it.keep(v) {
			return v, true
		}
	}
}

func (it *filterIter[T]) SizeHint() Hint {
	h := HintOf(it.it)
	h.Lower = 0

	return h
}

func (it *filterIter[T]) Stop() {
	stop(it.it)
}

func Filter[T any](it Iterator[T], keep func(T) bool) Iterator[T] {
	return &filterIter[T]{it: it, keep: keep}
}

type mapIter[I, O any] struct {
	it Iterator[I]
	f  func(I) O
}

func (it *mapIter[I, O]) Next() (O, bool) {
	v, ok := it.it.Next()
	if !ok {
		var zero O
		return zero, false
	}

	return it.f(v), true
}

func (it *mapIter[I, O]) SizeHint() Hint {
	return HintOf(it.it)
}

func (it *mapIter[I, O]) Stop() {
	stop(it.it)
}

func Map[I, O any](it Iterator[I], f func(I) O) Iterator[O] {
	return &mapIter[I, O]{it: it, f: f}
}

type concatIter[T any] struct {
	its []Iterator[T]
}

func (it *concatIter[T]) Next() (T, bool) {
	for len(it.its) > 0 {
		v, ok := it.its[0].Next()
		if ok {
			return v, true
		}

		it.its = it.its[1:]
	}

	var zero T
	return zero, false
}

func (it *concatIter[T]) SizeHint() Hint {
	h := Exact(0)
	for _, sub := range it.its {
		sh := HintOf(sub)

		h.Lower = addSat(h.Lower, sh.Lower)
		if h.Bounded && sh.Bounded {
			h.Upper = addSat(h.Upper, sh.Upper)
		} else {
			h.Upper = 0
			h.Bounded = false
		}
	}

	return h
}

func (it *concatIter[T]) Stop() {
	for _, sub := range it.its {
		stop(sub)
	}
}

func Concat[T any](its ...Iterator[T]) Iterator[T] {
	return &concatIter[T]{its: its}
}

type Indexed[T any] struct {
	Index int
	Value T
}

type indexIter[T any] struct {
	it Iterator[T]
	i  int
}

func (it *indexIter[T]) Next() (Indexed[T], bool) {
	v, ok := it.it.Next()
	if !ok {
		return Indexed[T]{}, false
	}

	iv := Indexed[T]{Index: it.i, Value: v}
	it.i++

	return iv, true
}

func (it *indexIter[T]) SizeHint() Hint {
	return HintOf(it.it)
}

func (it *indexIter[T]) Stop() {
	stop(it.it)
}

func Index[T any](it Iterator[T]) Iterator[Indexed[T]] {
	return &indexIter[T]{it: it}
}

const maxInt = int(^uint(0) >> 1)

func addSat(a, b int) int {
	if a > maxInt-b {
		return maxInt
	}

	return a + b
}
