package domain

import (
	"fmt"
	"strings"

	"gitee.com/flycash/notification-policy/internal/errs"
)

// EventDescriptor 系统可以发出的事件，扫描时创建，之后不再修改
type EventDescriptor struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Ctime int64  `json:"ctime"`
}

// TemplateVariable 某个事件模板里可以使用的变量
type TemplateVariable struct {
	Variable    string `json:"variable"`
	Description string `json:"description"`
}

// Priority 通知优先级
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// NotificationType 运营配置的“事件 -> 通知”绑定
type NotificationType struct {
	ID              uint64   `json:"id"`
	Title           string   `json:"title"`
	MessageTemplate string   `json:"messageTemplate"`
	EventType       string   `json:"eventType"`
	Roles           []Role   `json:"roles"`
	Channels        Channels `json:"channels"`
	IsActive        bool     `json:"isActive"`
	Priority        Priority `json:"priority"`
	Schedule        Schedule `json:"schedule"`
	Version         int      `json:"version"`
	Ctime           int64    `json:"ctime"`
	Utime           int64    `json:"utime"`
}

// HasRole 判断通知是否面向该角色
func (n NotificationType) HasRole(r Role) bool {
	for _, role := range n.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// Validate 校验除事件存在性以外的全部字段，事件是否注册由服务层结合事件注册表判断
func (n NotificationType) Validate() []errs.FieldError {
	var res []errs.FieldError
	if strings.TrimSpace(n.Title) == "" {
		res = append(res, errs.FieldError{Field: "title", Reason: "不能为空"})
	}
	if strings.TrimSpace(n.MessageTemplate) == "" {
		res = append(res, errs.FieldError{Field: "messageTemplate", Reason: "不能为空"})
	}
	if strings.TrimSpace(n.EventType) == "" {
		res = append(res, errs.FieldError{Field: "eventType", Reason: "不能为空"})
	}
	if len(n.Roles) == 0 {
		res = append(res, errs.FieldError{Field: "roles", Reason: "至少指定一个角色"})
	}
	for _, r := range n.Roles {
		if !r.IsKnown() {
			res = append(res, errs.FieldError{Field: "roles", Reason: fmt.Sprintf("未知角色 %q", r)})
		}
	}
	if len(n.Channels.Enabled()) == 0 {
		res = append(res, errs.FieldError{Field: "channels", Reason: "至少开启一个渠道"})
	}
	if !n.Priority.IsValid() {
		res = append(res, errs.FieldError{Field: "priority", Reason: fmt.Sprintf("未知优先级 %q", n.Priority)})
	}
	res = append(res, n.Schedule.Validate()...)
	return res
}

// NotificationTypePatch 部分更新，nil 表示不修改。Schedule 是合并而不是整体替换
type NotificationTypePatch struct {
	Title           *string        `json:"title,omitempty"`
	MessageTemplate *string        `json:"messageTemplate,omitempty"`
	EventType       *string        `json:"eventType,omitempty"`
	Roles           *[]Role        `json:"roles,omitempty"`
	Channels        *Channels      `json:"channels,omitempty"`
	Priority        *Priority      `json:"priority,omitempty"`
	Schedule        *SchedulePatch `json:"schedule,omitempty"`
	// Version 不为 0 时作为乐观锁使用
	Version int `json:"version,omitempty"`
}

// Apply 返回应用 patch 之后的新对象，IsActive 只能通过 toggle 修改
func (n NotificationType) Apply(p NotificationTypePatch) NotificationType {
	res := n
	if p.Title != nil {
		res.Title = *p.Title
	}
	if p.MessageTemplate != nil {
		res.MessageTemplate = *p.MessageTemplate
	}
	if p.EventType != nil {
		res.EventType = *p.EventType
	}
	if p.Roles != nil {
		res.Roles = append([]Role(nil), (*p.Roles)...)
	}
	if p.Channels != nil {
		res.Channels = *p.Channels
	}
	if p.Priority != nil {
		res.Priority = *p.Priority
	}
	if p.Schedule != nil {
		res.Schedule = n.Schedule.Merge(*p.Schedule)
	}
	return res
}

// NotificationTypeFilter 列表查询条件
type NotificationTypeFilter struct {
	Search string
	Role   Role
	// Active 为 nil 表示不过滤
	Active *bool
	Offset int
	Limit  int
}
