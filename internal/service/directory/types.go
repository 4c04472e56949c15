package directory

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/domain"
)

// Directory 宿主应用的用户和选课数据，只读
//
//go:generate mockgen -source=./types.go -destination=./mocks/directory.mock.go -package=directorymocks Directory
type Directory interface {
	// UsersByRoles 角色属于 roles 的全部用户，按用户 ID 去重
	UsersByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error)
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
	CompletedLessons(ctx context.Context, userID, courseID string) (int, error)
}
