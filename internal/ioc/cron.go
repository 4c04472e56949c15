package ioc

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/service/registry"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

// Crons 定时重新扫描事件声明，新上线的事件无需人工触发即可出现在目录里
func Crons(reg registry.Service) []ecron.Ecron {
	scan := ecron.Load("cron.scan").Build(ecron.WithJob(func(ctx context.Context) error {
		res, err := reg.Scan(ctx)
		if err != nil {
			return err
		}
		elog.DefaultLogger.Info("事件目录已同步",
			elog.Int("inserted", len(res.Inserted)),
			elog.Int("total", len(res.Events)))
		return nil
	}))
	return []ecron.Ecron{scan}
}
