package chatpolicy

import (
	"gitee.com/flycash/notification-policy/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const reasonAllowed = "Allowed"

var decisionCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chat_policy_decisions_total",
		Help: "聊天权限判定结果统计",
	},
	[]string{"direction", "reason"},
)

func init() {
	prometheus.MustRegister(decisionCounter)
}

func observe(direction domain.ChatDirection, d domain.ChatDecision) {
	reason := reasonAllowed
	if !d.Allowed {
		reason = string(d.Reason)
	}
	decisionCounter.WithLabelValues(string(direction), reason).Inc()
}
