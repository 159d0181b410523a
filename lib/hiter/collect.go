package hiter

import (
	"iter"
	"strings"
)

// Collect drains it into a slice, pre-allocated from the reported lower bound.
func Collect[T any](it Iterator[T]) []T {
	return AppendTo[[]T](nil, it)
}

// tryMake converts the make panic raised for capacities the runtime cannot
// allocate into ok=false.
func tryMake[R any](f func() R) (r R, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	return f(), true
}

// AppendTo drains it onto s, growing s once from the reported lower bound.
// A lower bound that cannot be allocated is ignored, and s grows as it is
// appended to.
func AppendTo[S ~[]T, T any](s S, it Iterator[T]) S {
	if n := HintOf(it).Lower; cap(s)-len(s) < n {
		if size := addSat(len(s), n); size < maxInt {
			ns, ok := tryMake(func() S {
				return make(S, len(s), size)
			})
			if ok {
				copy(ns, s)
				s = ns
			}
		}
	}

	for {
		v, ok := it.Next()
		if !ok {
			return s
		}

		s = append(s, v)
	}
}

type Pair[K, V any] struct {
	Key   K
	Value V
}

// CollectMap drains it into a map sized from the reported lower bound.
// Later pairs overwrite earlier ones with the same key.
func CollectMap[K comparable, V any](it Iterator[Pair[K, V]]) map[K]V {
	m, ok := tryMake(func() map[K]V {
		return make(map[K]V, HintOf(it).Lower)
	})
	if !ok {
		m = map[K]V{}
	}

	for {
		p, ok := it.Next()
		if !ok {
			return m
		}

		m[p.Key] = p.Value
	}
}

// CollectString drains it into a string, reserving one byte per element of
// the reported lower bound.
func CollectString(it Iterator[rune]) string {
	var sb strings.Builder
	_, _ = tryMake(func() struct{} {
		sb.Grow(HintOf(it).Lower)
		return struct{}{}
	})

	for {
		r, ok := it.Next()
		if !ok {
			return sb.String()
		}

		sb.WriteRune(r)
	}
}

func Len[T any](it Iterator[T]) int {
	var i int
	for {
		if _, ok := it.Next(); !ok {
			return i
		}
		i++
	}
}

// Seq exposes it as a push iterator. Breaking out of the loop early stops it.
func Seq[T any](it Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok {
				return
			}

			if !yield(v) {
				stop(it)
				return
			}
		}
	}
}
