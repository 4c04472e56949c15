// Package metrics 为渠道供应商添加指标收集的装饰器
package metrics

import (
	"context"
	"time"

	"gitee.com/flycash/notification-policy/internal/service/channel"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sendDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "channel_send_duration_seconds",
			Help:       "渠道发送通知耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"channel", "status"},
	)

	sendCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_send_total",
			Help: "渠道发送通知状态统计",
		},
		[]string{"channel", "status"},
	)
)

func init() {
	prometheus.MustRegister(sendDuration, sendCounter)
}

// Provider 为供应商实现添加指标收集的装饰器
type Provider struct {
	provider channel.Provider
}

func NewProvider(p channel.Provider) *Provider {
	return &Provider{provider: p}
}

// Send 发送通知并记录指标，返回错误时状态记为 error
func (p *Provider) Send(ctx context.Context, msg channel.Message) (channel.Result, error) {
	startTime := time.Now()
	res, err := p.provider.Send(ctx, msg)
	status := string(res.Status)
	if err != nil {
		status = "error"
	}
	sendCounter.WithLabelValues(msg.Channel.String(), status).Inc()
	sendDuration.WithLabelValues(msg.Channel.String(), status).Observe(time.Since(startTime).Seconds())
	return res, err
}
