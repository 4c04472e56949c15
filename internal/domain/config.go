package domain

import (
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/errs"
)

// ChatWindow 一个可聊天的时间窗口，Start/End 为 HH:MM，Days 为空表示每天
type ChatWindow struct {
	Enabled bool           `json:"enabled"`
	Start   string         `json:"start"`
	End     string         `json:"end"`
	Days    []time.Weekday `json:"days,omitempty"`
}

// Contains 判断 t 是否落在窗口内。End 早于 Start 时视为跨天窗口
func (w ChatWindow) Contains(t time.Time) bool {
	start, err := parseClock(w.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(w.End)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	day := t.Weekday()
	if end <= start && minute < end {
		// 跨天窗口的后半段属于前一天
		day = (day + 6) % 7
	}
	if len(w.Days) > 0 && !containsWeekday(w.Days, day) {
		return false
	}
	if start < end {
		return minute >= start && minute < end
	}
	return minute >= start || minute < end
}

func (w ChatWindow) Validate(field string) []errs.FieldError {
	if !w.Enabled {
		return nil
	}
	var res []errs.FieldError
	if _, err := parseClock(w.Start); err != nil {
		res = append(res, errs.FieldError{Field: field + ".start", Reason: err.Error()})
	}
	if _, err := parseClock(w.End); err != nil {
		res = append(res, errs.FieldError{Field: field + ".end", Reason: err.Error()})
	}
	for _, d := range w.Days {
		if d < time.Sunday || d > time.Saturday {
			res = append(res, errs.FieldError{Field: field + ".days", Reason: fmt.Sprintf("非法的星期 %d", d)})
		}
	}
	return res
}

// ChatAvailabilitySettings 全局聊天可用性配置，全局只有一份生效记录，按版本整体替换
type ChatAvailabilitySettings struct {
	Version int64 `json:"version"`
	// 各角色默认的工作时间，以被联系方的角色为准
	DefaultHours     map[Role]ChatWindow `json:"defaultHours"`
	GlobalChatWindow ChatWindow          `json:"globalChatWindow"`
	// 时区，为空时使用 UTC
	Timezone            string `json:"timezone"`
	// MaxDailyChats 和 AutoArchiveDays 只保存给前端展示，判定时不读取
	MaxDailyChats       int    `json:"maxDailyChats"`
	AutoArchiveDays     int    `json:"autoArchiveDays"`
	AllowFileSharing    bool   `json:"allowFileSharing"`
	AllowVoiceMessages  bool   `json:"allowVoiceMessages"`
	AllowScheduledChats bool   `json:"allowScheduledChats"`
	Utime               int64  `json:"utime"`
}

// DefaultChatAvailabilitySettings 没有任何配置记录时使用，不限制时间窗口
func DefaultChatAvailabilitySettings() ChatAvailabilitySettings {
	return ChatAvailabilitySettings{
		DefaultHours:     map[Role]ChatWindow{},
		Timezone:         "UTC",
		MaxDailyChats:    50,
		AutoArchiveDays:  30,
		AllowFileSharing: true,
	}
}

func (s ChatAvailabilitySettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WithinAvailability 在所有开启的窗口都不包含 now 时返回 false；没有开启任何窗口视为不限制
func (s ChatAvailabilitySettings) WithinAvailability(target Role, now time.Time) bool {
	local := now.In(s.Location())
	windows := make([]ChatWindow, 0, 2)
	if w, ok := s.DefaultHours[target]; ok && w.Enabled {
		windows = append(windows, w)
	}
	if s.GlobalChatWindow.Enabled {
		windows = append(windows, s.GlobalChatWindow)
	}
	if len(windows) == 0 {
		return true
	}
	for _, w := range windows {
		if w.Contains(local) {
			return true
		}
	}
	return false
}

func (s ChatAvailabilitySettings) Validate() []errs.FieldError {
	var res []errs.FieldError
	for role, w := range s.DefaultHours {
		if !role.IsKnown() {
			res = append(res, errs.FieldError{Field: "defaultHours." + role.String(), Reason: "未知角色"})
			continue
		}
		res = append(res, w.Validate("defaultHours."+role.String())...)
	}
	res = append(res, s.GlobalChatWindow.Validate("globalChatWindow")...)
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			res = append(res, errs.FieldError{Field: "timezone", Reason: "非法的时区"})
		}
	}
	if s.MaxDailyChats < 0 {
		res = append(res, errs.FieldError{Field: "maxDailyChats", Reason: "不能为负数"})
	}
	if s.AutoArchiveDays < 0 {
		res = append(res, errs.FieldError{Field: "autoArchiveDays", Reason: "不能为负数"})
	}
	return res
}
