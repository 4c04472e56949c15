package loopjob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

// 多实例部署时只有抢到分布式锁的实例在跑 biz

const (
	defaultTimeout       = time.Second * 3
	defaultLockExpiry    = time.Minute
	defaultRetryInterval = time.Minute
)

type InfiniteLoop struct {
	dclient dlock.Client
	key     string
	logger  *elog.Component
	biz     func(ctx context.Context) error

	lockExpiry    time.Duration
	retryInterval time.Duration
}

type Option func(l *InfiniteLoop)

// WithRetryInterval 没抢到锁或者续约失败之后，等待多久再尝试
func WithRetryInterval(d time.Duration) Option {
	return func(l *InfiniteLoop) {
		l.retryInterval = d
	}
}

// WithLockExpiry 锁的过期时间，biz 单次执行时间必须小于它
func WithLockExpiry(d time.Duration) Option {
	return func(l *InfiniteLoop) {
		l.lockExpiry = d
	}
}

func NewInfiniteLoop(
	dclient dlock.Client,
	// 要执行的业务，需要自己控制节奏。ctx 被取消的时候退出全部循环
	biz func(ctx context.Context) error,
	key string,
	opts ...Option,
) *InfiniteLoop {
	l := &InfiniteLoop{
		dclient:       dclient,
		key:           key,
		logger:        elog.DefaultLogger.With(elog.String("key", key)),
		biz:           biz,
		lockExpiry:    defaultLockExpiry,
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run 当 ctx 被取消的时候，就会退出
func (l *InfiniteLoop) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		lock, err := l.dclient.NewLock(ctx, l.key, l.lockExpiry)
		if err != nil {
			l.logger.Error("初始化分布式锁失败，重试", elog.FieldErr(err))
			l.sleep(ctx)
			continue
		}

		lockCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		// 没有拿到锁，不管是系统错误，还是锁被人持有，都等一会再试
		err = lock.Lock(lockCtx)
		cancel()
		if err != nil {
			l.logger.Debug("没有抢到分布式锁", elog.FieldErr(err))
			l.sleep(ctx)
			continue
		}

		err = l.bizLoop(ctx, lock)
		// 要么是续约失败，要么是 ctx 本身已经过期了
		if err != nil {
			l.logger.Warn("退出业务循环", elog.FieldErr(err))
		}
		// ctx 此时可能已经被取消，释放锁要用新的 ctx
		unCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		//nolint:contextcheck // 原始 ctx 可能已被取消，但仍需尝试解锁
		unErr := lock.Unlock(unCtx)
		cancel()
		if unErr != nil {
			l.logger.Error("释放分布式锁失败", elog.FieldErr(unErr))
		}
		err = ctx.Err()
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			l.logger.Info("任务被取消，退出任务循环")
			return
		default:
			l.sleep(ctx)
		}
	}
}

func (l *InfiniteLoop) bizLoop(ctx context.Context, lock dlock.Lock) error {
	for {
		err := l.biz(ctx)
		if err != nil {
			l.logger.Error("业务执行失败", elog.FieldErr(err))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		refCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		err = lock.Refresh(refCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("分布式锁续约失败 %w", err)
		}
	}
}

func (l *InfiniteLoop) sleep(ctx context.Context) {
	timer := time.NewTimer(l.retryInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
