package idempotent

import (
	"context"
	"time"
)

//go:generate mockgen -source=./type.go -package=idempotentmocks -destination=./mocks/idempotent.mock.go IdempotencyService
type IdempotencyService interface {
	// Claim 第一个调用方返回 true，ttl 内其余调用方都返回 false
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release 提前释放认领，之后的 Claim 可以重新成功
	Release(ctx context.Context, key string) error
}
