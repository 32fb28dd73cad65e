package conway

import (
	"context"
	"maps"
	"slices"

	"github.com/aretw0/lattice/pkg/indexing"
)

// Grid is a sparse set of active cells in D dimensions.
type Grid[T indexing.Indexing[T]] struct {
	active map[T]struct{}
}

// New returns a grid with the given cells active.
func New[T indexing.Indexing[T]](cells ...T) *Grid[T] {
	g := &Grid[T]{active: make(map[T]struct{}, len(cells))}
	for _, c := range cells {
		g.active[c] = struct{}{}
	}
	return g
}

// FromSlice activates every true cell of a 2D slice, mapping (x, y) through lift.
func FromSlice[T indexing.Indexing[T]](rows [][]bool, lift func(x, y int) T) *Grid[T] {
	g := New[T]()
	for y, row := range rows {
		for x, on := range row {
			if on {
				g.active[lift(x, y)] = struct{}{}
			}
		}
	}
	return g
}

// Lift2D places a slice cell on the plane.
func Lift2D(x, y int) indexing.Index2D { return indexing.Index2D{X: x, Y: y} }

// Lift3D places a slice cell at z = 0.
func Lift3D(x, y int) indexing.Index3D { return indexing.Index3D{X: x, Y: y} }

// Lift4D places a slice cell at z = w = 0.
func Lift4D(x, y int) indexing.Index4D { return indexing.Index4D{X: x, Y: y} }

// Len returns the number of active cells.
func (g *Grid[T]) Len() int { return len(g.active) }

// IsActive reports whether p is an active cell.
func (g *Grid[T]) IsActive(p T) bool {
	_, ok := g.active[p]
	return ok
}

// SetActive turns p on or off.
func (g *Grid[T]) SetActive(p T, active bool) {
	if active {
		g.active[p] = struct{}{}
	} else {
		delete(g.active, p)
	}
}

// Cells returns the active cells in range order.
func (g *Grid[T]) Cells() []T {
	cells := slices.Collect(maps.Keys(g.active))
	slices.SortFunc(cells, indexing.Compare[T])
	return cells
}

// BoxOfInterest is the bounding box of the active cells plus one cell on every
// side. ok is false for an empty grid.
func (g *Grid[T]) BoxOfInterest() (indexing.Range[T], bool) {
	box, ok := indexing.BoundingBox(maps.Keys(g.active))
	if !ok {
		return box, false
	}
	return indexing.Expand(box), true
}

// NeighborCount counts the active cells adjacent to p.
func (g *Grid[T]) NeighborCount(p T) int {
	n := 0
	for _, off := range indexing.NeighborOffsets[T]() {
		if g.IsActive(indexing.Add(p, off)) {
			n++
		}
	}
	return n
}

// WillBeActive applies the rule: an active cell survives with 2 or 3 active
// neighbors, an inactive one turns on with exactly 3.
func (g *Grid[T]) WillBeActive(p T) bool {
	switch n := g.NeighborCount(p); {
	case g.IsActive(p):
		return n == 2 || n == 3
	default:
		return n == 3
	}
}

// Next computes the following generation.
func (g *Grid[T]) Next() *Grid[T] {
	next := New[T]()
	box, ok := g.BoxOfInterest()
	if !ok {
		return next
	}
	for p := range box.All() {
		if g.WillBeActive(p) {
			next.active[p] = struct{}{}
		}
	}
	return next
}

// Run advances generations times, calling onGeneration (if set) after each
// step. It stops early when ctx is done.
func (g *Grid[T]) Run(ctx context.Context, generations int, onGeneration func(gen, active int)) (*Grid[T], error) {
	cur := g
	for gen := 1; gen <= generations; gen++ {
		if err := ctx.Err(); err != nil {
			return cur, err
		}
		cur = cur.Next()
		if onGeneration != nil {
			onGeneration(gen, cur.Len())
		}
	}
	return cur, nil
}
