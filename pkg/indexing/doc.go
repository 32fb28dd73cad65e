/*
Package indexing provides fixed-arity integer coordinates for N-dimensional grids.

Every coordinate type implements a single decompose/recompose pair (Indexing). All other
operations, such as arithmetic, bounding boxes, neighbor offsets and range enumeration, are
derived generically from that pair, so a new dimension only needs the two methods.

# Key Types

  - Indexing: the constraint every coordinate type satisfies.
  - Index2D, Index3D, Index4D: ready-made coordinates.
  - Range: an inclusive hyper-rectangle between two coordinates.

Coordinates are plain comparable values and can be used directly as map keys.
*/
package indexing
