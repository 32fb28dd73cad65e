package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/lattice/internal/testutils"
	"github.com/aretw0/lattice/pkg/adapters/redis"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Contract(t *testing.T) {
	_, client := testutils.NewRedis(t)
	store := redis.NewFromClient(client)
	ports.RunSnapshotStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := testutils.NewRedis(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "run", &domain.Snapshot{ID: "run", Kind: domain.KindCups, Ring: []int{1}}))
	assert.True(t, mr.Exists("test:snap:run"))
	assert.True(t, mr.Exists("test:index"))
	assert.Equal(t, "test:", store.Prefix())
}

func TestRedisStore_IndexIDKeepsIndexIntact(t *testing.T) {
	mr, client := testutils.NewRedis(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	for _, id := range []string{"a", "index", "b"} {
		require.NoError(t, store.Save(ctx, id, &domain.Snapshot{ID: id, Kind: domain.KindCups, Ring: []int{1}}))
	}

	typ := mr.Type(redis.DefaultPrefix + "index")
	assert.Equal(t, "zset", typ)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "index", "b"}, ids)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := testutils.NewRedis(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	id := "snapshot-ttl"

	err := store.Save(ctx, id, &domain.Snapshot{ID: id, Kind: domain.KindCups, Ring: []int{3, 1, 2}})
	require.NoError(t, err)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, id)

	// Key expiry is driven by miniredis' clock.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	// Index pruning is driven by the wall clock.
	time.Sleep(2100 * time.Millisecond)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, id)
}

func TestRedisStore_Unreachable(t *testing.T) {
	store := redis.New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = store.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := store.Load(ctx, "anything")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
}
