package app

type UpsertUserInput struct {
	UserID   string
	Timezone string
}

type RegisterDeviceInput struct {
	UserID   string
	DeviceID string
	FCMToken string
}

type UnregisterDeviceInput struct {
	UserID   string
	DeviceID string
}
