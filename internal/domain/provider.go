package domain

// Channel 通知渠道
type Channel string

const (
	ChannelEmail    Channel = "email"    // 邮件
	ChannelSMS      Channel = "sms"      // 短信
	ChannelPush     Channel = "push"     // 推送
	ChannelInApp    Channel = "inApp"    // 站内信
	ChannelWhatsApp Channel = "whatsapp" // WhatsApp 类即时消息
)

// AllChannels 按固定顺序列出全部渠道，决定投递记录的生成顺序
var AllChannels = []Channel{ChannelEmail, ChannelSMS, ChannelPush, ChannelInApp, ChannelWhatsApp}

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	for _, ch := range AllChannels {
		if ch == c {
			return true
		}
	}
	return false
}

// Channels 通知类型上各渠道的开关
type Channels struct {
	Email    bool `json:"email"`
	SMS      bool `json:"sms"`
	Push     bool `json:"push"`
	InApp    bool `json:"inApp"`
	WhatsApp bool `json:"whatsapp"`
}

// Enabled 返回开启的渠道，顺序与 AllChannels 一致
func (c Channels) Enabled() []Channel {
	res := make([]Channel, 0, len(AllChannels))
	flags := []bool{c.Email, c.SMS, c.Push, c.InApp, c.WhatsApp}
	for i, on := range flags {
		if on {
			res = append(res, AllChannels[i])
		}
	}
	return res
}

// Role 平台参与者角色
type Role string

const (
	RoleCreator Role = "creator"
	RoleLearner Role = "learner"
	RoleBrand   Role = "brand"
	RoleAdmin   Role = "admin"
)

var knownRoles = map[Role]struct{}{
	RoleCreator: {},
	RoleLearner: {},
	RoleBrand:   {},
	RoleAdmin:   {},
}

func (r Role) IsKnown() bool {
	_, ok := knownRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// User 通知的接收人，由用户目录提供
type User struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
