package counter

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	//go:embed lua/incr_below.lua
	incrBelowScript string

	_ DailyCounter = (*RedisDailyCounter)(nil)
)

// RedisDailyCounter 多实例共享的计数器，key 中已经带了日期，过期时间只用于清理
type RedisDailyCounter struct {
	cmd       redis.Cmdable
	keyPrefix string
	expire    time.Duration
}

func NewRedisDailyCounter(cmd redis.Cmdable) *RedisDailyCounter {
	const twoDays = 48 * time.Hour
	return &RedisDailyCounter{
		cmd:       cmd,
		keyPrefix: "counter:",
		expire:    twoDays,
	}
}

func (r *RedisDailyCounter) Get(ctx context.Context, key string) (int64, error) {
	cnt, err := r.cmd.Get(ctx, r.key(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return cnt, err
}

func (r *RedisDailyCounter) IncrIfBelow(ctx context.Context, key string, limit int64) (bool, error) {
	return r.cmd.Eval(ctx, incrBelowScript,
		[]string{r.key(key)},
		limit,
		int64(r.expire.Seconds()),
	).Bool()
}

func (r *RedisDailyCounter) key(key string) string {
	return fmt.Sprintf("%s%s", r.keyPrefix, key)
}
