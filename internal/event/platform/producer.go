package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
)

// Producer 宿主应用用来发布业务事件
type Producer struct {
	producer mq.Producer
}

func NewProducer(q mq.MQ) (*Producer, error) {
	p, err := q.Producer(EventName)
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p}, nil
}

func (p *Producer) Produce(ctx context.Context, evt Event) error {
	val, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化事件失败 %w", err)
	}
	_, err = p.producer.Produce(ctx, &mq.Message{
		Topic: EventName,
		Key:   []byte(evt.EventType),
		Value: val,
	})
	return err
}
