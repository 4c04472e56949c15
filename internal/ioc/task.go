package ioc

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/event/platform"
	rediscache "gitee.com/flycash/notification-policy/internal/repository/cache/redis"
	"gitee.com/flycash/notification-policy/internal/service/dispatch"
)

// Task 随进程启动的后台任务，ctx 取消时退出
type Task interface {
	Start(ctx context.Context)
}

func InitTasks(
	t1 *dispatch.ScheduledTask,
	t2 *platform.EventConsumer,
	t3 *rediscache.Invalidator,
) []Task {
	return []Task{
		t1,
		t2,
		t3,
	}
}
