package dispatch

import "time"

// Config 对应配置文件里的 dispatch
type Config struct {
	// SendTimeout 单次渠道发送的超时时间，超时记为失败
	SendTimeout time.Duration `yaml:"sendTimeout"`
	// MaxConcurrency 一次发出里同时进行的渠道发送数量
	MaxConcurrency    int           `yaml:"maxConcurrency"`
	ScheduleBatchSize int           `yaml:"scheduleBatchSize"`
	ScheduleInterval  time.Duration `yaml:"scheduleInterval"`
	// ClaimTTL 定时发送时间点被认领之后的保留时间
	ClaimTTL time.Duration `yaml:"claimTTL"`
}

func DefaultConfig() Config {
	return Config{
		SendTimeout:       5 * time.Second,
		MaxConcurrency:    16,
		ScheduleBatchSize: 200,
		ScheduleInterval:  10 * time.Second,
		ClaimTTL:          10 * time.Minute,
	}
}

// withDefaults 没有配置的字段使用默认值
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SendTimeout <= 0 {
		c.SendTimeout = def.SendTimeout
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = def.MaxConcurrency
	}
	if c.ScheduleBatchSize <= 0 {
		c.ScheduleBatchSize = def.ScheduleBatchSize
	}
	if c.ScheduleInterval <= 0 {
		c.ScheduleInterval = def.ScheduleInterval
	}
	if c.ClaimTTL <= 0 {
		c.ClaimTTL = def.ClaimTTL
	}
	return c
}
