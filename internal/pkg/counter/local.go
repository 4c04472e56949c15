package counter

import (
	"context"
	"sync"
)

var _ DailyCounter = (*LocalDailyCounter)(nil)

// LocalDailyCounter 单实例使用，不会清理过期的 key
type LocalDailyCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewLocalDailyCounter() *LocalDailyCounter {
	return &LocalDailyCounter{counts: make(map[string]int64)}
}

func (l *LocalDailyCounter) Get(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[key], nil
}

func (l *LocalDailyCounter) IncrIfBelow(_ context.Context, key string, limit int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[key] >= limit {
		return false, nil
	}
	l.counts[key]++
	return true, nil
}
