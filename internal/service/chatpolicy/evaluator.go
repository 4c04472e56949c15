package chatpolicy

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/pkg/counter"
	"gitee.com/flycash/notification-policy/internal/repository"
	"gitee.com/flycash/notification-policy/internal/service/directory"
	"github.com/gotomicro/ego/core/elog"
)

// Evaluator 聊天权限判定。拒绝是正常的返回值，只有基础设施出错时才返回 error
//
//go:generate mockgen -source=./evaluator.go -destination=./mocks/evaluator.mock.go -package=chatpolicymocks Evaluator
type Evaluator interface {
	CanInitiate(ctx context.Context, from, to domain.Role, cc domain.ChatContext) (domain.ChatDecision, error)
	// CanRespond 在已有会话里回复，使用 from -> to 这一格自己的规则
	CanRespond(ctx context.Context, from, to domain.Role, cc domain.ChatContext) (domain.ChatDecision, error)
}

type evaluator struct {
	repo      repository.ChatRepository
	directory directory.Directory
	counter   counter.DailyCounter
	logger    *elog.Component
	now       func() time.Time
}

func NewEvaluator(repo repository.ChatRepository, dir directory.Directory, c counter.DailyCounter) Evaluator {
	return &evaluator{
		repo:      repo,
		directory: dir,
		counter:   c,
		logger:    elog.DefaultLogger,
		now:       time.Now,
	}
}

func (e *evaluator) CanInitiate(ctx context.Context, from, to domain.Role, cc domain.ChatContext) (domain.ChatDecision, error) {
	return e.evaluate(ctx, domain.ChatDirectionInitiate, from, to, cc)
}

func (e *evaluator) CanRespond(ctx context.Context, from, to domain.Role, cc domain.ChatContext) (domain.ChatDecision, error) {
	return e.evaluate(ctx, domain.ChatDirectionRespond, from, to, cc)
}

func (e *evaluator) evaluate(
	ctx context.Context,
	direction domain.ChatDirection,
	from, to domain.Role,
	cc domain.ChatContext,
) (domain.ChatDecision, error) {
	d, err := e.decide(ctx, direction, from, to, cc)
	if err != nil {
		return domain.ChatDecision{}, err
	}
	observe(direction, d)
	return d, nil
}

// decide 按固定顺序检查，返回第一个不满足的原因
func (e *evaluator) decide(
	ctx context.Context,
	direction domain.ChatDirection,
	from, to domain.Role,
	cc domain.ChatContext,
) (domain.ChatDecision, error) {
	matrix, err := e.repo.GetMatrix(ctx)
	if err != nil {
		return domain.ChatDecision{}, err
	}
	cell, ok := matrix.Cell(from, to)
	if !ok {
		return domain.Deny(domain.DenyNoPolicyDefined), nil
	}
	if !cell.CanChat {
		return domain.Deny(domain.DenyChatDisabledForRolePair), nil
	}
	if !cell.Allows(direction) {
		return domain.Deny(domain.DenyDirectionNotAllowed), nil
	}

	learner := learnerOf(from, to, cc)
	if cell.RequiresCourseEnrollment {
		enrolled, err1 := e.enrolled(ctx, learner, cc)
		if err1 != nil {
			return domain.ChatDecision{}, err1
		}
		if !enrolled {
			return domain.Deny(domain.DenyEnrollmentRequired), nil
		}
	}
	if cell.RequiresLessonCompletion != nil && *cell.RequiresLessonCompletion > 0 {
		completed, err1 := e.completedLessons(ctx, learner, cc)
		if err1 != nil {
			return domain.ChatDecision{}, err1
		}
		if completed < *cell.RequiresLessonCompletion {
			return domain.Deny(domain.DenyLessonThresholdNotMet), nil
		}
	}

	now := cc.Now
	if now.IsZero() {
		now = e.now()
	}
	key := counterKey(now, from, to, cc)
	if cell.MaxDailyMessages != nil {
		cnt, err1 := e.counter.Get(ctx, key)
		if err1 != nil {
			return domain.ChatDecision{}, err1
		}
		if cnt >= int64(*cell.MaxDailyMessages) {
			return domain.Deny(domain.DenyDailyLimitExceeded), nil
		}
	}

	settings, err := e.repo.GetSettings(ctx)
	if err != nil {
		return domain.ChatDecision{}, err
	}
	if !settings.WithinAvailability(to, now) {
		return domain.Deny(domain.DenyOutsideAvailabilityWindow), nil
	}

	// 所有检查都通过之后才占用当天的额度，被拒绝的请求不消耗额度
	if cell.MaxDailyMessages != nil {
		ok, err1 := e.counter.IncrIfBelow(ctx, key, int64(*cell.MaxDailyMessages))
		if err1 != nil {
			return domain.ChatDecision{}, err1
		}
		if !ok {
			return domain.Deny(domain.DenyDailyLimitExceeded), nil
		}
	}
	return domain.Allow(), nil
}

func (e *evaluator) enrolled(ctx context.Context, learner string, cc domain.ChatContext) (bool, error) {
	if cc.Enrolled != nil {
		return *cc.Enrolled, nil
	}
	if learner == "" || cc.CourseID == "" {
		return false, nil
	}
	return e.directory.IsEnrolled(ctx, learner, cc.CourseID)
}

func (e *evaluator) completedLessons(ctx context.Context, learner string, cc domain.ChatContext) (int, error) {
	if cc.CompletedLessons != nil {
		return *cc.CompletedLessons, nil
	}
	if learner == "" || cc.CourseID == "" {
		return 0, nil
	}
	return e.directory.CompletedLessons(ctx, learner, cc.CourseID)
}

// learnerOf 选课和课时数据以学员一方为准，两边都不是学员时用发起方
func learnerOf(from, to domain.Role, cc domain.ChatContext) string {
	if to == domain.RoleLearner && from != domain.RoleLearner {
		return cc.ToUserID
	}
	return cc.FromUserID
}

// counterKey 按 UTC 自然日计数
func counterKey(now time.Time, from, to domain.Role, cc domain.ChatContext) string {
	return fmt.Sprintf("chat:%s:%s:%s:%s:%s",
		now.UTC().Format("20060102"), from, to, cc.FromUserID, cc.ToUserID)
}
