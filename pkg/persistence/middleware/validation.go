package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/ports"
)

type validationMiddleware struct {
	next ports.SnapshotStore
}

// NewValidationMiddleware rejects invalid snapshots on Save and reports
// stored ones that no longer validate on Load, so a corrupt entry fails with
// domain.ErrInvalidSnapshot instead of reaching a simulation.
func NewValidationMiddleware() Middleware {
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, id string, snap *domain.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	if snap.ID != id {
		return fmt.Errorf("%w: snapshot id %q saved under %q", domain.ErrInvalidSnapshot, snap.ID, id)
	}
	return m.next.Save(ctx, id, snap)
}

func (m *validationMiddleware) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	snap, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("stored snapshot %q: %w", id, err)
	}
	return snap, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
