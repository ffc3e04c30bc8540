package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient_Allow_FixedWindow(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := c.Allow(ctx, "10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, err := c.Allow(ctx, "10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// other keys have their own window
	ok, err = c.Allow(ctx, "10.0.0.2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, time.Minute, mr.TTL("ewm:ratelimit:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = c.Allow(ctx, "10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_Allow_WindowTTL(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	t.Run("later_hits_do_not_extend_window", func(t *testing.T) {
		_, err := c.Allow(ctx, "10.0.0.3", 5, time.Minute)
		require.NoError(t, err)
		mr.FastForward(10 * time.Second)
		_, err = c.Allow(ctx, "10.0.0.3", 5, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 50*time.Second, mr.TTL("ewm:ratelimit:10.0.0.3"))
	})

	t.Run("counter_without_ttl_gets_one", func(t *testing.T) {
		require.NoError(t, mr.Set("ewm:ratelimit:10.0.0.4", "9"))
		require.Zero(t, mr.TTL("ewm:ratelimit:10.0.0.4"))

		ok, err := c.Allow(ctx, "10.0.0.4", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, time.Minute, mr.TTL("ewm:ratelimit:10.0.0.4"))

		mr.FastForward(time.Minute + time.Second)
		ok, err = c.Allow(ctx, "10.0.0.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestClient_Allow_FailsOpen(t *testing.T) {
	c, mr := newTestClient(t)
	mr.Close()

	ok, err := c.Allow(context.Background(), "10.0.0.1", 1, time.Minute)
	assert.Error(t, err)
	assert.True(t, ok)
}

func TestNew_Unreachable(t *testing.T) {
	_, err := New("redis://127.0.0.1:1")
	assert.Error(t, err)
}
