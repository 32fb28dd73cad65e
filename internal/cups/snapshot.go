package cups

import (
	"fmt"
	"time"

	"github.com/aretw0/lattice/pkg/domain"
)

// Snapshot captures the ring, current cup first, as run id.
func (g *Game) Snapshot(id string) *domain.Snapshot {
	return &domain.Snapshot{
		ID:         id,
		Kind:       domain.KindCups,
		Generation: g.moves,
		Ring:       g.Labels(),
		UpdatedAt:  time.Now().UTC(),
	}
}

// Restore resumes a game saved with Snapshot.
func Restore(s *domain.Snapshot, opts ...Option) (*Game, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Kind != domain.KindCups {
		return nil, fmt.Errorf("%w: kind %q is not %q", domain.ErrInvalidSnapshot, s.Kind, domain.KindCups)
	}
	g, err := New(s.Ring, opts...)
	if err != nil {
		return nil, err
	}
	g.moves = s.Generation
	return g, nil
}
