package ioc

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/event/platform"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/gotomicro/ego/core/econf"
)

func InitMQ() mq.MQ {
	type Config struct {
		Partitions int `yaml:"partitions"`
	}
	cfg := Config{Partitions: 1}
	if econf.Get("mq") != nil {
		if err := econf.UnmarshalKey("mq", &cfg); err != nil {
			panic(err)
		}
	}
	// 目前只接入内存实现，平台事件由同进程的业务模块投递
	q := memory.NewMQ()
	if err := q.CreateTopic(context.Background(), platform.EventName, cfg.Partitions); err != nil {
		panic(err)
	}
	return q
}
