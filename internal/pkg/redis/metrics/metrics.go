// Package metrics 给 redis 客户端挂指标钩子，计数器、去重锁、聊天配置缓存都经过这里
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

var (
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notification_policy",
			Subsystem: "redis",
			Name:      "command_duration_seconds",
			Help:      "redis 命令耗时（秒）",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"command", "status"},
	)

	pipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notification_policy",
			Subsystem: "redis",
			Name:      "pipeline_duration_seconds",
			Help:      "redis 管道/事务耗时（秒）",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(commandDuration, pipelineDuration)
}

var _ redis.Hook = (*Hook)(nil)

type Hook struct{}

func NewHook() *Hook {
	return &Hook{}
}

func (h *Hook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *Hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		commandDuration.WithLabelValues(cmd.Name(), status(err)).Observe(time.Since(start).Seconds())
		return err
	}
}

func (h *Hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		st := status(err)
		for _, cmd := range cmds {
			if status(cmd.Err()) == statusError {
				st = statusError
				break
			}
		}
		pipelineDuration.WithLabelValues(st).Observe(time.Since(start).Seconds())
		return err
	}
}

// redis.Nil 是正常的未命中，不算失败
func status(err error) string {
	if err != nil && !errors.Is(err, redis.Nil) {
		return statusError
	}
	return statusOK
}
