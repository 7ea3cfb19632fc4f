package handler

import (
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/app"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Timezone  string    `json:"timezone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DeviceResponse struct {
	DeviceID string `json:"device_id"`
	FCMToken string `json:"fcm_token"`
}

type DevicesResponse struct {
	UserID  string           `json:"user_id"`
	Devices []DeviceResponse `json:"devices"`
}

func FromUserOutput(output app.UserOutput) UserResponse {
	return UserResponse{
		ID:        output.ID,
		Timezone:  output.Timezone,
		CreatedAt: output.CreatedAt,
		UpdatedAt: output.UpdatedAt,
	}
}

func FromDevicesOutput(output app.DevicesOutput) DevicesResponse {
	devices := make([]DeviceResponse, 0, len(output.Devices))
	for _, d := range output.Devices {
		devices = append(devices, DeviceResponse{
			DeviceID: d.DeviceID,
			FCMToken: d.FCMToken,
		})
	}

	return DevicesResponse{
		UserID:  output.UserID,
		Devices: devices,
	}
}
