package repository

import (
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

type UserModel struct {
	ID        string    `gorm:"column:id;type:varchar(128);primaryKey"`
	Timezone  string    `gorm:"column:timezone;type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// DeviceModel is one delivery endpoint. A token belongs to at most one
// user; registering it again moves it.
type DeviceModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;type:varchar(128);not null;index:idx_devices_user_id;uniqueIndex:idx_devices_user_device"`
	DeviceID  string    `gorm:"column:device_id;type:varchar(255);not null;uniqueIndex:idx_devices_user_device"`
	FCMToken  string    `gorm:"column:fcm_token;type:varchar(4096);not null;uniqueIndex:idx_devices_fcm_token"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (DeviceModel) TableName() string {
	return "devices"
}

func (m *UserModel) ToEntity() (*domain.User, error) {
	userID, err := domain.UserIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	loc, err := domain.LoadTimezone(m.Timezone)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteUser(userID, loc, m.CreatedAt, m.UpdatedAt), nil
}

func FromUserEntity(e *domain.User) *UserModel {
	return &UserModel{
		ID:        e.ID().String(),
		Timezone:  e.TimezoneName(),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}
}

func toDevices(models []DeviceModel) (domain.Devices, error) {
	devices := make(domain.Devices, 0, len(models))
	for _, m := range models {
		device, err := domain.NewDevice(m.DeviceID, m.FCMToken)
		if err != nil {
			return nil, err
		}

		devices = append(devices, device)
	}

	return devices, nil
}
