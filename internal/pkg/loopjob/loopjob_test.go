package loopjob

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meoying/dlock-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLock struct {
	lockErr    error
	refreshErr error
	unlocked   atomic.Int32
}

func (f *fakeLock) Lock(context.Context) error {
	return f.lockErr
}

func (f *fakeLock) Refresh(context.Context) error {
	return f.refreshErr
}

func (f *fakeLock) Unlock(context.Context) error {
	f.unlocked.Add(1)
	return nil
}

var _ dlock.Lock = (*fakeLock)(nil)

type fakeClient struct {
	dlock.Client
	mu    sync.Mutex
	lock  *fakeLock
	calls int
}

func (f *fakeClient) NewLock(context.Context, string, time.Duration) (dlock.Lock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.lock, nil
}

func TestInfiniteLoop_RunUntilCanceled(t *testing.T) {
	t.Parallel()
	lock := &fakeLock{}
	client := &fakeClient{lock: lock}
	ctx, cancel := context.WithCancel(t.Context())

	var cnt atomic.Int32
	l := NewInfiniteLoop(client, func(ctx context.Context) error {
		if cnt.Add(1) == 3 {
			cancel()
		}
		return nil
	}, "test_loop", WithRetryInterval(time.Millisecond))

	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("循环没有退出")
	}
	assert.Equal(t, int32(3), cnt.Load())
	assert.Equal(t, int32(1), lock.unlocked.Load())
}

func TestInfiniteLoop_LockFailedNeverRunsBiz(t *testing.T) {
	t.Parallel()
	client := &fakeClient{lock: &fakeLock{lockErr: errors.New("lock held")}}
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	var cnt atomic.Int32
	l := NewInfiniteLoop(client, func(ctx context.Context) error {
		cnt.Add(1)
		return nil
	}, "test_loop", WithRetryInterval(5*time.Millisecond))
	l.Run(ctx)

	assert.Equal(t, int32(0), cnt.Load())
	client.mu.Lock()
	defer client.mu.Unlock()
	require.Greater(t, client.calls, 1)
}

func TestInfiniteLoop_RefreshFailedReleasesLock(t *testing.T) {
	t.Parallel()
	lock := &fakeLock{refreshErr: errors.New("refresh failed")}
	client := &fakeClient{lock: lock}
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	l := NewInfiniteLoop(client, func(ctx context.Context) error {
		return errors.New("biz failed")
	}, "test_loop", WithRetryInterval(5*time.Millisecond))
	l.Run(ctx)

	// 每次续约失败都会释放锁，然后重新抢
	assert.GreaterOrEqual(t, lock.unlocked.Load(), int32(2))
}
