package domain

import (
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/errs"
)

// PermissionCell 一个有序角色对的聊天规则
type PermissionCell struct {
	CanChat                  bool `json:"canChat"`
	CanInitiate              bool `json:"canInitiate"`
	CanRespond               bool `json:"canRespond"`
	RequiresCourseEnrollment bool `json:"requiresCourseEnrollment,omitempty"`
	// 需要完成的课时数，nil 表示不要求
	RequiresLessonCompletion *int `json:"requiresLessonCompletion,omitempty"`
	// 每日消息上限，nil 表示不限制
	MaxDailyMessages *int `json:"maxDailyMessages,omitempty"`
}

// Allows CanChat 为 false 时，无论存的是什么，两个方向都视为不允许
func (c PermissionCell) Allows(d ChatDirection) bool {
	if !c.CanChat {
		return false
	}
	if d == ChatDirectionRespond {
		return c.CanRespond
	}
	return c.CanInitiate
}

func (c PermissionCell) Validate(field string) []errs.FieldError {
	var res []errs.FieldError
	if c.RequiresLessonCompletion != nil && *c.RequiresLessonCompletion < 0 {
		res = append(res, errs.FieldError{Field: field + ".requiresLessonCompletion", Reason: "不能为负数"})
	}
	if c.MaxDailyMessages != nil && *c.MaxDailyMessages < 0 {
		res = append(res, errs.FieldError{Field: field + ".maxDailyMessages", Reason: "不能为负数"})
	}
	return res
}

// PermissionMatrix fromRole -> toRole -> 规则，A->B 与 B->A 互相独立
type PermissionMatrix map[Role]map[Role]PermissionCell

// Cell 没有配置时返回 false
func (m PermissionMatrix) Cell(from, to Role) (PermissionCell, bool) {
	row, ok := m[from]
	if !ok {
		return PermissionCell{}, false
	}
	cell, ok := row[to]
	return cell, ok
}

func (m PermissionMatrix) Set(from, to Role, cell PermissionCell) {
	row, ok := m[from]
	if !ok {
		row = make(map[Role]PermissionCell)
		m[from] = row
	}
	row[to] = cell
}

func (m PermissionMatrix) Validate() []errs.FieldError {
	var res []errs.FieldError
	for from, row := range m {
		if !from.IsKnown() {
			res = append(res, errs.FieldError{Field: from.String(), Reason: "未知角色"})
			continue
		}
		for to, cell := range row {
			field := fmt.Sprintf("%s.%s", from, to)
			if !to.IsKnown() {
				res = append(res, errs.FieldError{Field: field, Reason: "未知角色"})
				continue
			}
			res = append(res, cell.Validate(field)...)
		}
	}
	return res
}

// ChatRestriction 附加在角色上的具名限制，只做说明和审计，不参与判定
type ChatRestriction struct {
	ID          uint64 `json:"id"`
	Role        Role   `json:"role"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// RuleType 例如 lessonCompletion / enrollment / dailyLimit
	RuleType string `json:"ruleType"`
	Value    string `json:"value"`
	IsActive bool   `json:"isActive"`
	Ctime    int64  `json:"ctime"`
	Utime    int64  `json:"utime"`
}

func (r ChatRestriction) Validate() []errs.FieldError {
	var res []errs.FieldError
	if !r.Role.IsKnown() {
		res = append(res, errs.FieldError{Field: "role", Reason: fmt.Sprintf("未知角色 %q", r.Role)})
	}
	if r.Name == "" {
		res = append(res, errs.FieldError{Field: "name", Reason: "不能为空"})
	}
	return res
}

// ChatDirection 检查的方向
type ChatDirection string

const (
	ChatDirectionInitiate ChatDirection = "initiate"
	ChatDirectionRespond  ChatDirection = "respond"
)

// DenyReason 拒绝原因，按判定顺序排列
type DenyReason string

const (
	DenyNoPolicyDefined           DenyReason = "NoPolicyDefined"
	DenyChatDisabledForRolePair   DenyReason = "ChatDisabledForRolePair"
	DenyDirectionNotAllowed       DenyReason = "DirectionNotAllowed"
	DenyEnrollmentRequired        DenyReason = "EnrollmentRequired"
	DenyLessonThresholdNotMet     DenyReason = "LessonThresholdNotMet"
	DenyDailyLimitExceeded        DenyReason = "DailyLimitExceeded"
	DenyOutsideAvailabilityWindow DenyReason = "OutsideAvailabilityWindow"
)

// ChatContext 发起聊天时的关系上下文。
// Enrolled / CompletedLessons 为 nil 时由用户目录查询学员一方的数据
type ChatContext struct {
	FromUserID       string    `json:"fromUserId"`
	ToUserID         string    `json:"toUserId"`
	CourseID         string    `json:"courseId"`
	Enrolled         *bool     `json:"enrolled,omitempty"`
	CompletedLessons *int      `json:"completedLessons,omitempty"`
	Now              time.Time `json:"now"`
}

// ChatDecision 判定结果，拒绝是正常的返回值而不是错误
type ChatDecision struct {
	Allowed bool       `json:"allowed"`
	Reason  DenyReason `json:"reason,omitempty"`
}

func Allow() ChatDecision {
	return ChatDecision{Allowed: true}
}

func Deny(reason DenyReason) ChatDecision {
	return ChatDecision{Reason: reason}
}
