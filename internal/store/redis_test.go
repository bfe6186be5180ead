package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ramatoys/storefront/internal/store"
)

func newRedisStore(t *testing.T) (*store.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedisStore(client), mr
}

func TestRedisStoreMissingSlot(t *testing.T) {
	s, _ := newRedisStore(t)
	_, err := s.Get(context.Background(), store.ProductsSlot)
	require.ErrorIs(t, err, store.ErrSlotNotFound)
}

func TestRedisStoreOverwrite(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.ProductsSlot, []byte(`[]`)))
	require.NoError(t, s.Set(ctx, store.ProductsSlot, []byte(`[{"id":"1"}]`)))

	value, err := s.Get(ctx, store.ProductsSlot)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"1"}]`, string(value))

	raw, err := mr.Get("store:" + store.ProductsSlot)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"1"}]`, raw)
}

func TestRedisStoreDelete(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "slot", []byte("x")))
	require.NoError(t, s.Delete(ctx, "slot"))
	require.NoError(t, s.Delete(ctx, "slot"))

	_, err := s.Get(ctx, "slot")
	require.ErrorIs(t, err, store.ErrSlotNotFound)
}
