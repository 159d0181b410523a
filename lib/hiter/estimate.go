package hiter

// Estimated wraps an Iterator and reports a size hint supplied by the caller
// instead of the one reported by the wrapped iterator.
//
// The hint is fixed at construction and does not change as elements are
// consumed: SizeHint returns the same value before, during and after
// iteration. Element production is delegated unchanged.
//
// Estimated takes ownership of the wrapped iterator: the caller must not
// advance it directly once wrapped. Use Unwrap to get it back.
type Estimated[T any] struct {
	it   Iterator[T]
	hint Hint
}

// EstimateMin reports at least n remaining elements. The wrapped iterator's
// own lower bound wins if it is greater; the upper bound is left as reported
// by the wrapped iterator.
func EstimateMin[T any](it Iterator[T], n int) *Estimated[T] {
	h := HintOf(it)
	h.Lower = max(n, h.Lower, 0)

	return &Estimated[T]{it: it, hint: h}
}

// EstimateExact reports exactly n remaining elements, whatever the wrapped
// iterator reports.
func EstimateExact[T any](it Iterator[T], n int) *Estimated[T] {
	return &Estimated[T]{it: it, hint: Exact(n)}
}

// EstimateMax reports at most upper remaining elements. The lower bound is
// the wrapped iterator's, capped at upper.
func EstimateMax[T any](it Iterator[T], upper int) *Estimated[T] {
	upper = max(upper, 0)

	return &Estimated[T]{it: it, hint: Hint{
		Lower:   min(HintOf(it).Lower, upper),
		Upper:   upper,
		Bounded: true,
	}}
}

// Estimate reports h verbatim, after clamping negative values to 0 and
// raising an upper bound below the lower bound to the lower bound.
func Estimate[T any](it Iterator[T], h Hint) *Estimated[T] {
	h.Lower = max(h.Lower, 0)
	if h.Bounded {
		h.Upper = max(h.Upper, h.Lower)
	} else {
		h.Upper = 0
	}

	return &Estimated[T]{it: it, hint: h}
}

func (e *Estimated[T]) Next() (T, bool) {
	return e.it.Next()
}

func (e *Estimated[T]) SizeHint() Hint {
	return e.hint
}

func (e *Estimated[T]) Stop() {
	stop(e.it)
}

func (e *Estimated[T]) Unwrap() Iterator[T] {
	return e.it
}

var _ Iterator[int] = (*Estimated[int])(nil)
var _ SizeHinter = (*Estimated[int])(nil)
var _ Stopper = (*Estimated[int])(nil)
