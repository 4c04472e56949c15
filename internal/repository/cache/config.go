package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
)

const (
	ChatPrefix         = "chat"
	DefaultExpiredTime = 10 * time.Minute
)

var ErrorKeyNotFound = errors.New("key not found")

// ChatSettingsCache 聊天可用性配置缓存
type ChatSettingsCache interface {
	Get(ctx context.Context) (domain.ChatAvailabilitySettings, error)
	Set(ctx context.Context, s domain.ChatAvailabilitySettings) error
	Del(ctx context.Context) error
}

// PermissionMatrixCache 权限矩阵缓存
type PermissionMatrixCache interface {
	Get(ctx context.Context) (domain.PermissionMatrix, error)
	Set(ctx context.Context, m domain.PermissionMatrix) error
	Del(ctx context.Context) error
}

func ChatSettingsKey() string {
	return fmt.Sprintf("%s:settings", ChatPrefix)
}

func PermissionMatrixKey() string {
	return fmt.Sprintf("%s:permissions", ChatPrefix)
}
