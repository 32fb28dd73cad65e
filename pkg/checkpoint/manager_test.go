package checkpoint_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/lattice/internal/testutils"
	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/adapters/redis"
	"github.com/aretw0/lattice/pkg/checkpoint"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates IO latency to provoke lost updates if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Save(ctx context.Context, id string, snap *domain.Snapshot) error {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Save(ctx, id, snap)
}

func (s SlowStore) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Load(ctx, id)
}

func cupsSnapshot(id string, gen int) *domain.Snapshot {
	return &domain.Snapshot{ID: id, Kind: domain.KindCups, Generation: gen, Ring: []int{3, 8, 9, 1, 2}}
}

func bump(_ context.Context, prev *domain.Snapshot) (*domain.Snapshot, error) {
	if prev == nil {
		return cupsSnapshot("race", 1), nil
	}
	prev.Generation++
	return prev, nil
}

func TestManager_UpdateIsSerialized(t *testing.T) {
	mgr := checkpoint.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, mgr.Update(ctx, "race", bump))
		}()
	}
	wg.Wait()

	snap, err := mgr.Load(ctx, "race")
	require.NoError(t, err)
	assert.Equal(t, writers, snap.Generation, "every update must see the previous one")
}

func TestManager_UpdateNilResultKeepsStore(t *testing.T) {
	mgr := checkpoint.NewManager(memory.NewStore())
	ctx := context.Background()

	err := mgr.Update(ctx, "empty", func(context.Context, *domain.Snapshot) (*domain.Snapshot, error) {
		return nil, nil
	})
	require.NoError(t, err)

	_, err = mgr.Load(ctx, "empty")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestManager_UpdatePropagatesErrors(t *testing.T) {
	mgr := checkpoint.NewManager(memory.NewStore())
	boom := errors.New("boom")

	err := mgr.Update(context.Background(), "x", func(context.Context, *domain.Snapshot) (*domain.Snapshot, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestManager_SaveValidates(t *testing.T) {
	mgr := checkpoint.NewManager(memory.NewStore())
	ctx := context.Background()

	err := mgr.Save(ctx, "bad", &domain.Snapshot{ID: "bad", Kind: "chess"})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	require.NoError(t, mgr.Save(ctx, "ok", cupsSnapshot("ok", 0)))
	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, ids)

	require.NoError(t, mgr.Delete(ctx, "ok"))
	ids, err = mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestManager_DistributedLock(t *testing.T) {
	mr, client := testutils.NewRedis(t)

	store := redis.NewFromClient(client)
	locker := redis.NewLocker(client, "test:")
	mgr := checkpoint.NewManager(store, checkpoint.WithLocker(locker), checkpoint.WithLockTTL(time.Second))
	ctx := context.Background()

	err := mgr.Update(ctx, "shared", func(context.Context, *domain.Snapshot) (*domain.Snapshot, error) {
		assert.True(t, mr.Exists("test:lock:shared"), "lock must be held during the update")
		return cupsSnapshot("shared", 7), nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("test:lock:shared"))

	snap, err := mgr.Load(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Generation)
}

func TestManager_DistributedLockOutlivesTTL(t *testing.T) {
	mr, client := testutils.NewRedis(t)

	locker := redis.NewLocker(client, "test:")
	mgr := checkpoint.NewManager(memory.NewStore(), checkpoint.WithLocker(locker), checkpoint.WithLockTTL(300*time.Millisecond))

	err := mgr.WithLock(context.Background(), "slow", func(context.Context) error {
		for range 3 {
			mr.FastForward(250 * time.Millisecond)
			if !mr.Exists("test:lock:slow") {
				return errors.New("lock expired during the run")
			}
			time.Sleep(150 * time.Millisecond)
		}
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("test:lock:slow"))
}

func TestManager_DistributedLockTimeout(t *testing.T) {
	_, client := testutils.NewRedis(t)

	locker := redis.NewLocker(client, "test:")
	mgr := checkpoint.NewManager(memory.NewStore(), checkpoint.WithLocker(locker))

	// Another process holds the run.
	unlock, err := locker.Lock(context.Background(), "busy", 5*time.Second)
	require.NoError(t, err)
	defer unlock(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	_, err = mgr.Load(ctx, "busy")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
