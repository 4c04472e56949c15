package dao

import "github.com/ego-component/egorm"

// InitTables 建表
func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(
		&EventDescriptor{},
		&NotificationType{},
		&DeliveryRecord{},
		&ChatPermission{},
		&ChatSettings{},
		&ChatRestriction{},
	)
}
