package ioc

import (
	"fmt"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/service/channel"
	"gitee.com/flycash/notification-policy/internal/service/channel/console"
	"gitee.com/flycash/notification-policy/internal/service/channel/metrics"
	"gitee.com/flycash/notification-policy/internal/service/channel/tracing"
	"github.com/gotomicro/ego/core/econf"
)

const providerConsole = "console"

// InitChannelProvider 每个渠道按配置顺序组成 failover 链，外层套上追踪和指标
// 配置示例 channels.email: [console]，没有配置的渠道默认走 console
func InitChannelProvider() channel.Provider {
	cfg := map[string][]string{}
	if econf.Get("channels") != nil {
		if err := econf.UnmarshalKey("channels", &cfg); err != nil {
			panic(err)
		}
	}
	providers := make(map[domain.Channel]channel.Provider, len(domain.AllChannels))
	for _, ch := range domain.AllChannels {
		names := cfg[ch.String()]
		if len(names) == 0 {
			names = []string{providerConsole}
		}
		chain := make([]channel.Provider, 0, len(names))
		for _, name := range names {
			chain = append(chain, newProvider(name))
		}
		providers[ch] = metrics.NewProvider(tracing.NewProvider(channel.NewFailoverProvider(chain...)))
	}
	return channel.NewDispatcher(providers)
}

func newProvider(name string) channel.Provider {
	switch name {
	case providerConsole:
		return console.NewProvider()
	default:
		panic(fmt.Sprintf("未知的渠道供应商 %s", name))
	}
}
