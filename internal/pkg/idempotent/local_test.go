package idempotent

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ca "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalIdempotencyService_Claim(t *testing.T) {
	t.Parallel()
	svc := NewLocalService(ca.New(time.Minute, time.Minute))

	ok, err := svc.Claim(t.Context(), "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Claim(t.Context(), "a", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Claim(t.Context(), "b", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Claim(t.Context(), "", time.Minute)
	assert.Error(t, err)

	// 释放之后可以重新认领
	require.NoError(t, svc.Release(t.Context(), "a"))
	ok, err = svc.Claim(t.Context(), "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalIdempotencyService_ConcurrentClaim(t *testing.T) {
	t.Parallel()
	svc := NewLocalService(ca.New(time.Minute, time.Minute))

	var (
		wg  sync.WaitGroup
		won atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.Claim(t.Context(), "occurrence", time.Minute)
			if err == nil && ok {
				won.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), won.Load())
}
