package conway

import (
	"fmt"
	"time"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/indexing"
)

// Snapshot captures the grid as generation gen of run id.
func (g *Grid[T]) Snapshot(id string, gen int) *domain.Snapshot {
	cells := g.Cells()
	out := make([][]int, len(cells))
	for i, c := range cells {
		out[i] = c.Components()
	}
	return &domain.Snapshot{
		ID:         id,
		Kind:       domain.KindConway,
		Generation: gen,
		Dimensions: indexing.Dimension[T](),
		Cells:      out,
		UpdatedAt:  time.Now().UTC(),
	}
}

// FromSnapshot rebuilds a grid. The snapshot must be a conway snapshot whose
// dimension matches T.
func FromSnapshot[T indexing.Indexing[T]](s *domain.Snapshot) (*Grid[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Kind != domain.KindConway {
		return nil, fmt.Errorf("%w: kind %q is not %q", domain.ErrInvalidSnapshot, s.Kind, domain.KindConway)
	}
	if d := indexing.Dimension[T](); s.Dimensions != d {
		return nil, fmt.Errorf("%w: snapshot has %d dimensions, grid has %d", domain.ErrInvalidSnapshot, s.Dimensions, d)
	}

	var zero T
	g := New[T]()
	for _, c := range s.Cells {
		g.active[zero.FromComponents(c)] = struct{}{}
	}
	return g, nil
}
