package indexing

import (
	"cmp"
	"fmt"
	"reflect"
	"sync"
)

// Indexing is implemented by every coordinate type.
//
// FromComponents must ignore its receiver and panic when given a slice whose
// length differs from the type's dimension.
type Indexing[T any] interface {
	comparable
	Components() []int
	FromComponents(components []int) T
}

func fromComponents[T Indexing[T]](components []int) T {
	var t T
	return t.FromComponents(components)
}

// mustLen guards FromComponents implementations.
func mustLen(components []int, want int) {
	if len(components) != want {
		panic(fmt.Sprintf("indexing: got %d components, want %d", len(components), want))
	}
}

// Dimension returns the number of components of T.
func Dimension[T Indexing[T]]() int {
	var t T
	return len(t.Components())
}

func fill[T Indexing[T]](v int) T {
	c := make([]int, Dimension[T]())
	for i := range c {
		c[i] = v
	}
	return fromComponents[T](c)
}

// Zero returns the coordinate with every component set to 0.
func Zero[T Indexing[T]]() T { return fill[T](0) }

// UnitPlus returns the coordinate with every component set to 1.
func UnitPlus[T Indexing[T]]() T { return fill[T](1) }

// UnitMinus returns the coordinate with every component set to -1.
func UnitMinus[T Indexing[T]]() T { return fill[T](-1) }

func zipWith[T Indexing[T]](a, b T, f func(x, y int) int) T {
	ac, bc := a.Components(), b.Components()
	out := make([]int, len(ac))
	for i := range ac {
		out[i] = f(ac[i], bc[i])
	}
	return fromComponents[T](out)
}

// Add returns a + b.
func Add[T Indexing[T]](a, b T) T {
	return zipWith(a, b, func(x, y int) int { return x + y })
}

// Sub returns a - b.
func Sub[T Indexing[T]](a, b T) T {
	return zipWith(a, b, func(x, y int) int { return x - y })
}

// Min returns the component-wise minimum of a and b.
func Min[T Indexing[T]](a, b T) T {
	return zipWith(a, b, func(x, y int) int { return min(x, y) })
}

// Max returns the component-wise maximum of a and b.
func Max[T Indexing[T]](a, b T) T {
	return zipWith(a, b, func(x, y int) int { return max(x, y) })
}

// neighborCache maps a coordinate type to a memoized func() any returning []T.
var neighborCache sync.Map

// NeighborOffsets returns every non-zero offset in {-1,0,1}^D for T.
// The slice is computed once per type and shared; callers must not modify it.
func NeighborOffsets[T Indexing[T]]() []T {
	key := reflect.TypeFor[T]()
	cached, ok := neighborCache.Load(key)
	if !ok {
		cached, _ = neighborCache.LoadOrStore(key, sync.OnceValue(func() any {
			return computeNeighborOffsets[T]()
		}))
	}
	return cached.(func() any)().([]T)
}

func computeNeighborOffsets[T Indexing[T]]() []T {
	zero := Zero[T]()
	box := Range[T]{Min: UnitMinus[T](), Max: UnitPlus[T]()}
	offsets := make([]T, 0, box.Size()-1)
	for idx := range box.All() {
		if idx != zero {
			offsets = append(offsets, idx)
		}
	}
	return offsets
}

// Neighbors returns the coordinates adjacent to p, including diagonals.
func Neighbors[T Indexing[T]](p T) []T {
	offsets := NeighborOffsets[T]()
	out := make([]T, len(offsets))
	for i, off := range offsets {
		out[i] = Add(p, off)
	}
	return out
}

// Compare orders coordinates the way Range.All enumerates them: the last axis
// is most significant.
func Compare[T Indexing[T]](a, b T) int {
	ac, bc := a.Components(), b.Components()
	for i := len(ac) - 1; i >= 0; i-- {
		if c := cmp.Compare(ac[i], bc[i]); c != 0 {
			return c
		}
	}
	return 0
}
