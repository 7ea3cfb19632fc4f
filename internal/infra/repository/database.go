package repository

import "gorm.io/gorm"

// Migrate creates or updates the tables, including the composite index the
// due-task scan depends on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&TaskModel{}, &UserModel{}, &DeviceModel{})
}
