package indexing

import "fmt"

// Index2D is a coordinate on a plane.
type Index2D struct {
	X, Y int
}

func (i Index2D) Components() []int { return []int{i.X, i.Y} }

func (Index2D) FromComponents(c []int) Index2D {
	mustLen(c, 2)
	return Index2D{c[0], c[1]}
}

func (i Index2D) String() string { return fmt.Sprintf("%d,%d", i.X, i.Y) }

// Index3D is a coordinate in space.
type Index3D struct {
	X, Y, Z int
}

func (i Index3D) Components() []int { return []int{i.X, i.Y, i.Z} }

func (Index3D) FromComponents(c []int) Index3D {
	mustLen(c, 3)
	return Index3D{c[0], c[1], c[2]}
}

func (i Index3D) String() string { return fmt.Sprintf("%d,%d,%d", i.X, i.Y, i.Z) }

// Index4D adds a fourth axis, W, to Index3D.
type Index4D struct {
	X, Y, Z, W int
}

func (i Index4D) Components() []int { return []int{i.X, i.Y, i.Z, i.W} }

func (Index4D) FromComponents(c []int) Index4D {
	mustLen(c, 4)
	return Index4D{c[0], c[1], c[2], c[3]}
}

func (i Index4D) String() string { return fmt.Sprintf("%d,%d,%d,%d", i.X, i.Y, i.Z, i.W) }
