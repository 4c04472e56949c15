package main

import (
	"context"

	"gitee.com/flycash/notification-policy/cmd/platform/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
)

func main() {
	// ego.New 负责加载 --config 指定的配置，必须先于依赖注入
	e := ego.New()
	app, err := ioc.InitApp()
	if err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.StartTasks(ctx)

	if err := e.Serve(app.GinServer).
		Cron(app.Crons...).
		Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
