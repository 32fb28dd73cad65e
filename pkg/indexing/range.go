package indexing

import (
	"fmt"
	"iter"
	"math"
)

// Range is an inclusive box between Min and Max.
// Min and Max are taken as given; use BoundingBox to derive them from points.
type Range[T Indexing[T]] struct {
	Min T
	Max T
}

func (r Range[T]) String() string {
	return fmt.Sprintf("[%v .. %v]", r.Min, r.Max)
}

// Contains reports whether p lies within the range on every axis.
func (r Range[T]) Contains(p T) bool {
	lo, hi, pc := r.Min.Components(), r.Max.Components(), p.Components()
	for i := range pc {
		if pc[i] < lo[i] || pc[i] > hi[i] {
			return false
		}
	}
	return true
}

// Size is the number of coordinates in the range, 0 when any axis is inverted.
// It panics when the count does not fit in an int.
func (r Range[T]) Size() int {
	if r.empty() {
		return 0
	}
	lo, hi := r.Min.Components(), r.Max.Components()
	n := 1
	for i := range lo {
		span := hi[i] - lo[i] + 1
		if span <= 0 || n > math.MaxInt/span {
			panic(fmt.Sprintf("indexing: range %v holds more than %d coordinates", r, math.MaxInt))
		}
		n *= span
	}
	return n
}

func (r Range[T]) empty() bool {
	lo, hi := r.Min.Components(), r.Max.Components()
	for i := range lo {
		if lo[i] > hi[i] {
			return true
		}
	}
	return false
}

// Pad moves Min by lo and Max by hi.
func (r Range[T]) Pad(lo, hi T) Range[T] {
	return Range[T]{Min: Add(r.Min, lo), Max: Add(r.Max, hi)}
}

// Expand grows the range by one step on every side.
func Expand[T Indexing[T]](r Range[T]) Range[T] {
	return r.Pad(UnitMinus[T](), UnitPlus[T]())
}

// All yields every coordinate in the range. Axis 0 varies fastest and the last
// axis slowest.
func (r Range[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if r.empty() {
			return
		}
		lo, hi := r.Min.Components(), r.Max.Components()
		cur := make([]int, len(lo))
		copy(cur, lo)
		for {
			if !yield(fromComponents[T](cur)) {
				return
			}
			axis := 0
			for ; axis < len(cur); axis++ {
				if cur[axis] < hi[axis] {
					cur[axis]++
					break
				}
				cur[axis] = lo[axis]
			}
			if axis == len(cur) {
				return
			}
		}
	}
}

// IndicesInRange collects r.All() into a slice.
func IndicesInRange[T Indexing[T]](r Range[T]) []T {
	out := make([]T, 0, r.Size())
	for idx := range r.All() {
		out = append(out, idx)
	}
	return out
}

// BoundingBox returns the smallest range holding every point.
// ok is false when points yields nothing.
func BoundingBox[T Indexing[T]](points iter.Seq[T]) (r Range[T], ok bool) {
	for p := range points {
		if !ok {
			r = Range[T]{Min: p, Max: p}
			ok = true
			continue
		}
		r.Min = Min(r.Min, p)
		r.Max = Max(r.Max, p)
	}
	return r, ok
}
