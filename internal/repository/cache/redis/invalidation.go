package redis

import (
	"context"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultInvalidationChannel 聊天配置本地缓存失效通知
const DefaultInvalidationChannel = "notification_policy:chat:invalidate"

// Invalidator 本地缓存删除之后通过 redis 频道广播 key，所有实例收到后删除自己的本地缓存
type Invalidator struct {
	client  *redis.Client
	channel string
	evict   func(key string)
	logger  *elog.Component
}

// NewInvalidator evict 删除本进程里的缓存，本实例发出的消息也会收到一次
func NewInvalidator(client *redis.Client, channel string, evict func(key string)) *Invalidator {
	return &Invalidator{
		client:  client,
		channel: channel,
		evict:   evict,
		logger:  elog.DefaultLogger,
	}
}

func (i *Invalidator) Publish(ctx context.Context, key string) error {
	if err := i.client.Publish(ctx, i.channel, key).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish invalidation of %s", key)
	}
	return nil
}

// Start 订阅失效频道直到 ctx 取消
func (i *Invalidator) Start(ctx context.Context) {
	for ctx.Err() == nil {
		if err := i.subscribe(ctx); err != nil {
			i.logger.Error("订阅缓存失效频道失败", elog.FieldErr(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}

func (i *Invalidator) subscribe(ctx context.Context) error {
	pubsub := i.client.Subscribe(ctx, i.channel)
	defer pubsub.Close()
	// 订阅确认之后才开始接收
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("invalidation channel closed")
			}
			i.evict(msg.Payload)
		}
	}
}
