package cache_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/pkg/cache"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// Set MODELGEN_REDIS_ADDR (e.g. localhost:6379) to run against a live server.
func newRedisStore(t *testing.T, options ...cache.RedisOption) *cache.RedisStore {
	t.Helper()
	addr := os.Getenv("MODELGEN_REDIS_ADDR")
	if addr == "" {
		t.Skip("MODELGEN_REDIS_ADDR not set")
	}
	store := cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}), "modelgen-test:", options...)
	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Clear(ctx))
	t.Cleanup(func() {
		_ = store.Clear(context.Background())
		_ = store.Close()
	})
	return store
}

func TestRedisStore_NamespacesAndTTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	first := cache.NewRedisStore(client, "")
	second := cache.NewRedisStore(client, "")
	key := cache.Key{Class: "user", Dialect: render.DialectA}.String()

	assert.True(t, strings.HasPrefix(first.Namespace(), "modelgen:"))
	assert.NotEqual(t, first.Namespace(), second.Namespace())
	assert.Equal(t, first.Namespace()+"user:extjs4:false", first.Key(key))
	assert.NotEqual(t, first.Key(key), second.Key(key))

	assert.Equal(t, cache.DefaultRedisTTL, first.TTL())
	assert.Equal(t, time.Minute, cache.NewRedisStore(client, "", cache.WithTTL(time.Minute)).TTL())
	assert.Equal(t, cache.DefaultRedisTTL, cache.NewRedisStore(client, "", cache.WithTTL(0)).TTL())
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	missing, err := store.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	require.NoError(t, store.Clear(ctx))
	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_BacksCache(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	c := cache.New(cache.WithStore(store))
	key := cache.Key{Class: "user", Dialect: render.DialectA, Minify: true}

	renders := 0
	renderFn := func() ([]byte, error) {
		renders++
		return []byte("Ext.define();"), nil
	}
	for i := 0; i < 3; i++ {
		out, err := c.Source(ctx, key, renderFn)
		require.NoError(t, err)
		assert.Equal(t, "Ext.define();", string(out))
	}
	assert.Equal(t, 1, renders)
}

func TestRedisStore_ClearLeavesOtherStores(t *testing.T) {
	ctx := context.Background()
	mine := newRedisStore(t, cache.WithTTL(time.Minute))
	theirs := newRedisStore(t)

	require.NoError(t, mine.Set(ctx, "k", []byte("mine")))
	require.NoError(t, theirs.Set(ctx, "k", []byte("theirs")))

	got, err := mine.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(got))

	require.NoError(t, mine.Clear(ctx))
	got, err = mine.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = theirs.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "theirs", string(got))
}

func TestRedisStore_EntriesExpire(t *testing.T) {
	addr := os.Getenv("MODELGEN_REDIS_ADDR")
	if addr == "" {
		t.Skip("MODELGEN_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	store := cache.NewRedisStore(client, "modelgen-test:", cache.WithTTL(time.Minute))
	t.Cleanup(func() { _ = store.Clear(context.Background()) })
	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	ttl, err := client.TTL(ctx, store.Key("k")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
