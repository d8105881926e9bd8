package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	c := Wrap(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := c.IncrWindow(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(time.Minute + time.Second)
	n, err := c.IncrWindow(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := Connect("redis://" + mr.Addr())
	require.NoError(t, err)
	assert.NoError(t, c.Ping(context.Background()))
	require.NoError(t, c.Close())

	_, err = Connect("not a url")
	assert.Error(t, err)
}
