// Package hiter provides pull-style iterators that carry a size hint, and
// wrappers that let a caller override that hint with out-of-band knowledge.
package hiter

// Iterator produces elements one at a time. Next returns false once the
// iterator is exhausted, and keeps returning false afterwards.
//
// Iterators are not safe for concurrent use.
type Iterator[T any] interface {
	Next() (T, bool)
}

// Hint is an estimate of the number of remaining elements.
// Upper is only meaningful when Bounded is true.
// The zero value is "unknown": at least 0, no upper bound.
type Hint struct {
	Lower   int  `json:"lower"`
	Upper   int  `json:"upper,omitempty"`
	Bounded bool `json:"bounded"`
}

func Exact(n int) Hint {
	n = max(n, 0)

	return Hint{Lower: n, Upper: n, Bounded: true}
}

func AtLeast(n int) Hint {
	return Hint{Lower: max(n, 0)}
}

func (h Hint) IsExact() bool {
	return h.Bounded && h.Lower == h.Upper
}

// SizeHinter is implemented by iterators that can report an estimate of their
// remaining length.
type SizeHinter interface {
	SizeHint() Hint
}

// HintOf returns the hint reported by v, or the zero Hint if v does not
// implement SizeHinter.
func HintOf(v any) Hint {
	if sh, ok := v.(SizeHinter); ok {
		return sh.SizeHint()
	}

	return Hint{}
}

// Stopper is implemented by iterators holding resources that must be released
// when consumption ends early.
type Stopper interface {
	Stop()
}

func stop(v any) {
	if s, ok := v.(Stopper); ok {
		s.Stop()
	}
}
