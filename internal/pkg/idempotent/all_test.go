//go:build e2e

package idempotent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisIdempotencyService(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	t.Cleanup(func() {
		client.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis server is not available, skipping")
		return
	}

	svc := NewRedisService(client, "test:claim:")
	key := fmt.Sprintf("occurrence:%d", time.Now().UnixNano())

	ok, err := svc.Claim(ctx, key, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Claim(ctx, key, time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Release(ctx, key))
	ok, err = svc.Claim(ctx, key, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, svc.Release(ctx, key))
}
