package sequence

import "iter"

// Iterator is a lazy, chainable view over a sequence of T.
// Every terminal call re-runs the whole chain from its source.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From iterates data without copying it.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{seq: func(yield func(T) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}}
}

func (i *Iterator[T]) Seq() iter.Seq[T] { return i.seq }

func (i *Iterator[T]) Collect() []T {
	var out []T
	for v := range i.seq {
		out = append(out, v)
	}
	return out
}

// Filter keeps the elements keep accepts.
func (i *Iterator[T]) Filter(keep func(T) bool) *Iterator[T] {
	return &Iterator[T]{seq: func(yield func(T) bool) {
		for v := range i.seq {
			if keep(v) && !yield(v) {
				return
			}
		}
	}}
}

func (i *Iterator[T]) Count() int {
	n := 0
	for range i.seq {
		n++
	}
	return n
}

// MinBy returns the element with the smallest key. Ties go to the earliest
// element. ok is false for an empty sequence.
func (i *Iterator[T]) MinBy(key func(T) float64) (best T, ok bool) {
	var bestKey float64
	for v := range i.seq {
		if k := key(v); !ok || k < bestKey {
			best, bestKey, ok = v, k, true
		}
	}
	return best, ok
}
