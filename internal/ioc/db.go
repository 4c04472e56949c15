package ioc

import (
	"context"
	"time"

	"gitee.com/flycash/notification-policy/internal/repository/dao"
	"github.com/ecodeclub/ekit/retry"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/elog"
)

func InitDB() *egorm.Component {
	db := egorm.Load("mysql").Build()
	waitForDB(db)
	if err := dao.InitTables(db); err != nil {
		panic(err)
	}
	return db
}

// waitForDB 容器编排时数据库可能晚于服务就绪，按指数退避等它
func waitForDB(db *egorm.Component) {
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	const maxInterval = 10 * time.Second
	const maxRetries = 10
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, maxInterval, maxRetries)
	if err != nil {
		panic(err)
	}
	const timeout = 5 * time.Second
	for {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			return
		}
		next, ok := strategy.Next()
		if !ok {
			panic("waitForDB 重试失败......")
		}
		elog.DefaultLogger.Warn("数据库未就绪", elog.FieldErr(err))
		time.Sleep(next)
	}
}
