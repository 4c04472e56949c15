package counter

import "context"

//go:generate mockgen -source=./types.go -package=countermocks -destination=./mocks/counter.mock.go DailyCounter
type DailyCounter interface {
	// Get 返回当前计数，不存在时为 0
	Get(ctx context.Context, key string) (int64, error)
	// IncrIfBelow 计数小于 limit 时加一并返回 true，否则不修改并返回 false。
	// 检查和加一是原子的，并发调用时成功次数不会超过 limit
	IncrIfBelow(ctx context.Context, key string, limit int64) (bool, error)
}
