package app

import (
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

type UserOutput struct {
	ID        string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DeviceOutput struct {
	DeviceID string
	FCMToken string
}

type DevicesOutput struct {
	UserID  string
	Devices []DeviceOutput
}

func FromUserEntity(user *domain.User) UserOutput {
	return UserOutput{
		ID:        user.ID().String(),
		Timezone:  user.TimezoneName(),
		CreatedAt: user.CreatedAt(),
		UpdatedAt: user.UpdatedAt(),
	}
}

func FromDevices(userID domain.UserID, devices domain.Devices) DevicesOutput {
	out := DevicesOutput{
		UserID:  userID.String(),
		Devices: make([]DeviceOutput, 0, devices.Count()),
	}

	for _, d := range devices.ToSlice() {
		out.Devices = append(out.Devices, DeviceOutput{
			DeviceID: d.DeviceID(),
			FCMToken: d.FCMToken(),
		})
	}

	return out
}
