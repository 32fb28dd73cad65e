package ports

import (
	"context"

	"github.com/aretw0/lattice/pkg/domain"
)

// SnapshotStore persists simulation checkpoints so a run can stop and resume.
type SnapshotStore interface {
	// Save persists the snapshot under id, replacing any previous one.
	Save(ctx context.Context, id string, snap *domain.Snapshot) error

	// Load retrieves the snapshot stored under id.
	// Returns domain.ErrSnapshotNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Snapshot, error)

	// Delete removes the snapshot. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of every stored snapshot.
	List(ctx context.Context) ([]string, error)
}
