package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	ID         string `json:"id"`
	LikesCount int64  `json:"likes_count"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), srv
}

func TestPostKey(t *testing.T) {
	assert.Equal(t, "post:65f1c0ffee", PostKey("65f1c0ffee"))
}

func TestSetGetDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got view
	hit, err := c.GetJSON(ctx, PostKey("a"), &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, PostKey("a"), view{ID: "a", LikesCount: 3}, time.Minute))

	hit, err = c.GetJSON(ctx, PostKey("a"), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, view{ID: "a", LikesCount: 3}, got)

	require.NoError(t, c.Delete(ctx, PostKey("a"), PostKey("missing")))
	hit, err = c.GetJSON(ctx, PostKey("a"), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestEntriesExpire(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, PostKey("b"), view{ID: "b"}, DefaultPostTTL))
	assert.Equal(t, DefaultPostTTL, srv.TTL(PostKey("b")))

	srv.FastForward(DefaultPostTTL + time.Second)

	var got view
	hit, err := c.GetJSON(ctx, PostKey("b"), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCorruptEntryIsError(t *testing.T) {
	c, srv := newTestCache(t)
	require.NoError(t, srv.Set(PostKey("c"), "{not json"))

	var got view
	hit, err := c.GetJSON(context.Background(), PostKey("c"), &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestUnavailableCacheReturnsError(t *testing.T) {
	c, srv := newTestCache(t)
	srv.Close()

	var got view
	_, err := c.GetJSON(context.Background(), PostKey("d"), &got)
	assert.Error(t, err)
	assert.Error(t, c.Delete(context.Background(), PostKey("d")))
}
