package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gitee.com/flycash/notification-policy/internal/errs"
	"gitee.com/flycash/notification-policy/internal/service/dispatch"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// EventConsumer 把消息队列里的业务事件转成一次 Emit
type EventConsumer struct {
	engine   dispatch.Engine
	consumer mq.Consumer
	logger   *elog.Component
}

func NewEventConsumer(engine dispatch.Engine, q mq.MQ) (*EventConsumer, error) {
	const groupID = "notification_policy"
	consumer, err := q.Consumer(EventName, groupID)
	if err != nil {
		return nil, err
	}
	return &EventConsumer{
		engine:   engine,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *EventConsumer) Start(ctx context.Context) {
	go func() {
		for ctx.Err() == nil {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费业务事件失败", elog.FieldErr(er))
			}
		}
	}()
}

// Consume 处理一条消息。格式不对或者事件未注册的消息直接跳过
func (c *EventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	var evt Event
	if err = json.Unmarshal(msg.Value, &evt); err != nil {
		c.logger.Warn("解析消息失败",
			elog.FieldErr(err),
			elog.Any("msg", string(msg.Value)))
		return nil
	}
	evt.EventType = strings.TrimSpace(evt.EventType)
	if evt.EventType == "" {
		c.logger.Warn("消息缺少 eventType", elog.Any("msg", string(msg.Value)))
		return nil
	}

	records, err := c.engine.Emit(ctx, evt.EventType, evt.Context)
	if errors.Is(err, errs.ErrUnknownEvent) {
		c.logger.Warn("事件未注册，跳过", elog.String("eventType", evt.EventType))
		return nil
	}
	if err != nil {
		return fmt.Errorf("发出事件失败 %s: %w", evt.EventType, err)
	}
	c.logger.Debug("事件已处理", elog.String("eventType", evt.EventType), elog.Int("records", len(records)))
	return nil
}
