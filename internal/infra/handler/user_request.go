package handler

type UpsertUserRequest struct {
	Timezone string `json:"timezone"`
}

type RegisterDeviceRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	FCMToken string `json:"fcm_token" binding:"required"`
}
