package domain

import (
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/robfig/cron/v3"
)

// ScheduleType 调度类型，是 Schedule 这个联合类型的标签
type ScheduleType string

const (
	ScheduleTypeImmediate ScheduleType = "immediate" // 立即发送
	ScheduleTypeScheduled ScheduleType = "scheduled" // 定时发送
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// Schedule 通知的调度配置。
// Type 为 immediate 时其余字段全部无效，Normalize 会清空它们；
// Type 为 scheduled 时按 Date > Cron > Days+Time 的优先级计算下一次发送时间
type Schedule struct {
	Type     ScheduleType   `json:"type"`
	Enabled  bool           `json:"enabled"`
	Time     string         `json:"time,omitempty"`
	Days     []time.Weekday `json:"days,omitempty"`
	Date     string         `json:"date,omitempty"`
	Cron     string         `json:"cron,omitempty"`
	Timezone string         `json:"timezone,omitempty"`
}

// ImmediateSchedule 立即发送
func ImmediateSchedule() Schedule {
	return Schedule{Type: ScheduleTypeImmediate}
}

// SchedulePatch 部分更新调度配置，nil 表示不修改
type SchedulePatch struct {
	Type     *ScheduleType   `json:"type,omitempty"`
	Time     *string         `json:"time,omitempty"`
	Days     *[]time.Weekday `json:"days,omitempty"`
	Date     *string         `json:"date,omitempty"`
	Cron     *string         `json:"cron,omitempty"`
	Timezone *string         `json:"timezone,omitempty"`
}

// Merge 把 patch 合并到已有的调度配置上，未出现的字段保持原值
func (s Schedule) Merge(p SchedulePatch) Schedule {
	res := s
	res.Days = append([]time.Weekday(nil), s.Days...)
	if p.Type != nil {
		res.Type = *p.Type
	}
	if p.Time != nil {
		res.Time = *p.Time
	}
	if p.Days != nil {
		res.Days = append([]time.Weekday(nil), (*p.Days)...)
	}
	if p.Date != nil {
		res.Date = *p.Date
	}
	if p.Cron != nil {
		res.Cron = *p.Cron
	}
	if p.Timezone != nil {
		res.Timezone = *p.Timezone
	}
	return res
}

func (s Schedule) IsScheduled() bool {
	return s.Type == ScheduleTypeScheduled
}

func (s Schedule) hasDeferredFields() bool {
	return s.Time != "" || len(s.Days) > 0 || s.Date != "" || s.Cron != "" || s.Timezone != ""
}

// Normalize 立即发送时丢弃所有定时字段，定时发送时强制 Enabled
func (s Schedule) Normalize() Schedule {
	switch s.Type {
	case ScheduleTypeImmediate:
		return ImmediateSchedule()
	case "":
		if !s.hasDeferredFields() {
			return ImmediateSchedule()
		}
		return s
	case ScheduleTypeScheduled:
		s.Enabled = true
		return s
	default:
		return s
	}
}

// Validate 校验调度配置，返回所有不合法的字段
func (s Schedule) Validate() []errs.FieldError {
	var res []errs.FieldError
	switch s.Type {
	case ScheduleTypeImmediate:
		return nil
	case ScheduleTypeScheduled:
	case "":
		if s.hasDeferredFields() {
			res = append(res, errs.FieldError{Field: "schedule.type", Reason: "设置了定时字段但没有指定调度类型"})
		}
		return res
	default:
		return append(res, errs.FieldError{Field: "schedule.type", Reason: fmt.Sprintf("未知的调度类型 %q", s.Type)})
	}

	if s.Time == "" && s.Cron == "" {
		res = append(res, errs.FieldError{Field: "schedule.time", Reason: "定时通知必须设置 time 或 cron"})
	}
	if s.Time != "" {
		if _, err := parseClock(s.Time); err != nil {
			res = append(res, errs.FieldError{Field: "schedule.time", Reason: err.Error()})
		}
	}
	if s.Cron != "" {
		if _, err := cron.ParseStandard(s.Cron); err != nil {
			res = append(res, errs.FieldError{Field: "schedule.cron", Reason: fmt.Sprintf("非法的 cron 表达式: %s", err.Error())})
		}
	}
	if s.Date != "" {
		if _, err := time.Parse(dateLayout, s.Date); err != nil {
			res = append(res, errs.FieldError{Field: "schedule.date", Reason: "日期格式必须是 YYYY-MM-DD"})
		}
	}
	for _, d := range s.Days {
		if d < time.Sunday || d > time.Saturday {
			res = append(res, errs.FieldError{Field: "schedule.days", Reason: fmt.Sprintf("非法的星期 %d", d)})
			break
		}
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			res = append(res, errs.FieldError{Field: "schedule.timezone", Reason: "非法的时区"})
		}
	}
	return res
}

func (s Schedule) location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Next 计算严格晚于 after 的下一次发送时间，没有后续发送时间时返回 false。
// 立即发送直接返回 after
func (s Schedule) Next(after time.Time) (time.Time, bool) {
	if !s.IsScheduled() {
		return after, true
	}
	loc := s.location()
	local := after.In(loc)

	clock := 0
	if s.Time != "" {
		c, err := parseClock(s.Time)
		if err != nil {
			return time.Time{}, false
		}
		clock = c
	}

	switch {
	case s.Date != "":
		day, err := time.ParseInLocation(dateLayout, s.Date, loc)
		if err != nil {
			return time.Time{}, false
		}
		at := atClock(day, clock, loc)
		if at.After(after) {
			return at, true
		}
		return time.Time{}, false
	case s.Cron != "":
		sched, err := cron.ParseStandard(s.Cron)
		if err != nil {
			return time.Time{}, false
		}
		next := sched.Next(local)
		if next.IsZero() {
			return time.Time{}, false
		}
		return next, true
	case s.Time != "":
		base := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		for i := 0; i <= 7; i++ {
			day := base.AddDate(0, 0, i)
			if len(s.Days) > 0 && !containsWeekday(s.Days, day.Weekday()) {
				continue
			}
			at := atClock(day, clock, loc)
			if at.After(after) {
				return at, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// atClock 取 day 当天 loc 时区下的墙上时间，夏令时切换当天也按钟面时间计算
func atClock(day time.Time, clock int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock/60, clock%60, 0, 0, loc)
}

// parseClock 解析 HH:MM，返回当天的分钟数
func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("时间格式必须是 HH:MM: %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}
