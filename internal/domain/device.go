package domain

import "errors"

type Device struct {
	deviceID string
	fcmToken string
}

var (
	ErrEmptyDeviceID = errors.New("device ID cannot be empty")
	ErrEmptyFCMToken = errors.New("FCM token cannot be empty")
)

func NewDevice(deviceID, fcmToken string) (Device, error) {
	if deviceID == "" {
		return Device{}, ErrEmptyDeviceID
	}

	if fcmToken == "" {
		return Device{}, ErrEmptyFCMToken
	}

	return Device{
		deviceID: deviceID,
		fcmToken: fcmToken,
	}, nil
}

func (d Device) DeviceID() string {
	return d.deviceID
}

func (d Device) FCMToken() string {
	return d.fcmToken
}

func (d Device) Equals(other Device) bool {
	return d.deviceID == other.deviceID && d.fcmToken == other.fcmToken
}

// Devices is the set of delivery endpoints registered for one user. It may be
// empty.
type Devices []Device

func (d Devices) ToSlice() []Device {
	return d
}

func (d Devices) Count() int {
	return len(d)
}

func (d Devices) IsEmpty() bool {
	return len(d) == 0
}

// Tokens returns the distinct FCM tokens in registration order.
func (d Devices) Tokens() []string {
	seen := make(map[string]struct{}, len(d))
	tokens := make([]string, 0, len(d))

	for _, device := range d {
		if _, ok := seen[device.fcmToken]; ok {
			continue
		}

		seen[device.fcmToken] = struct{}{}
		tokens = append(tokens, device.fcmToken)
	}

	return tokens
}
