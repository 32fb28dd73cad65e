package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := &domain.Snapshot{
			ID:         id,
			Kind:       domain.KindConway,
			Generation: 3,
			Dimensions: 3,
			Cells:      [][]int{{1, 0, 0}, {2, 1, 0}, {-1, 2, 4}},
		}

		err := store.Save(ctx, id, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, domain.KindConway, loaded.Kind)
		assert.Equal(t, 3, loaded.Generation)
		assert.Equal(t, snap.Cells, loaded.Cells)
	})

	t.Run("Overwrite", func(t *testing.T) {
		snap := &domain.Snapshot{ID: id, Kind: domain.KindCups, Generation: 10, Ring: []int{5, 4, 3, 2, 1}}
		require.NoError(t, store.Save(ctx, id, snap))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.KindCups, loaded.Kind)
		assert.Equal(t, []int{5, 4, 3, 2, 1}, loaded.Ring)
		assert.Empty(t, loaded.Cells)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		loaded.Ring[0] = 99

		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 5, again.Ring[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, &domain.Snapshot{ID: id1, Kind: domain.KindCups, Ring: []int{1, 2, 3, 4, 5}})
		_ = store.Save(ctx, id2, &domain.Snapshot{ID: id2, Kind: domain.KindCups, Ring: []int{1, 2, 3, 4, 5}})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})

	t.Run("Ids shaped like store bookkeeping", func(t *testing.T) {
		plain := id + "-plain"
		odd := []string{"index", "tmp-run", "lock:" + plain, plain + ".tmp"}
		all := append([]string{plain}, odd...)
		for _, sid := range all {
			require.NoError(t, store.Save(ctx, sid, &domain.Snapshot{ID: sid, Kind: domain.KindCups, Ring: []int{1, 2, 3, 4, 5}}), "id %q", sid)
		}
		defer func() {
			for _, sid := range all {
				_ = store.Delete(ctx, sid)
			}
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		for _, sid := range all {
			assert.Contains(t, ids, sid)

			loaded, err := store.Load(ctx, sid)
			require.NoError(t, err, "id %q", sid)
			assert.Equal(t, sid, loaded.ID)
		}
	})
}
