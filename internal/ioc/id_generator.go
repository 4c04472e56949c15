package ioc

import (
	"time"

	"github.com/gotomicro/ego/core/econf"
	"github.com/sony/sonyflake"
)

func InitIDGenerator() *sonyflake.Sonyflake {
	settings := sonyflake.Settings{
		// 起始时间固定，改动会导致新旧 ID 冲突
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	// 没有配置时沿用 sonyflake 默认的私有 IP 低 16 位
	if id := econf.GetInt("idgen.machineId"); id > 0 {
		settings.MachineID = func() (uint16, error) {
			return uint16(id), nil
		}
	}
	g := sonyflake.NewSonyflake(settings)
	if g == nil {
		panic("初始化 sonyflake 失败")
	}
	return g
}
