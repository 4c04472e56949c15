package directory

import (
	"context"
	"errors"

	"gitee.com/flycash/notification-policy/internal/domain"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var _ Directory = (*GormDirectory)(nil)

// PlatformUser 宿主应用的用户表，这里只读
type PlatformUser struct {
	ID   string `gorm:"primaryKey;type:VARCHAR(64)"`
	Role string `gorm:"type:VARCHAR(32);index:idx_role"`
}

func (PlatformUser) TableName() string {
	return "platform_users"
}

// CourseEnrollment 宿主应用的选课表，这里只读
type CourseEnrollment struct {
	UserID           string `gorm:"primaryKey;type:VARCHAR(64)"`
	CourseID         string `gorm:"primaryKey;type:VARCHAR(64)"`
	CompletedLessons int
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}

type GormDirectory struct {
	db *egorm.Component
}

func NewGormDirectory(db *egorm.Component) *GormDirectory {
	return &GormDirectory{db: db}
}

func (g *GormDirectory) UsersByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	if len(roles) == 0 {
		return []domain.User{}, nil
	}
	var users []PlatformUser
	err := g.db.WithContext(ctx).
		Where("role IN ?", slice.Map(roles, func(_ int, src domain.Role) string { return src.String() })).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		res = append(res, domain.User{ID: u.ID, Role: domain.Role(u.Role)})
	}
	return res, nil
}

func (g *GormDirectory) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	_, err := g.enrollment(ctx, userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (g *GormDirectory) CompletedLessons(ctx context.Context, userID, courseID string) (int, error) {
	e, err := g.enrollment(ctx, userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return e.CompletedLessons, err
}

func (g *GormDirectory) enrollment(ctx context.Context, userID, courseID string) (CourseEnrollment, error) {
	var e CourseEnrollment
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	return e, err
}
