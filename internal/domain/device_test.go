package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

func mustDevice(t *testing.T, deviceID, token string) domain.Device {
	t.Helper()

	d, err := domain.NewDevice(deviceID, token)
	require.NoError(t, err)

	return d
}

func TestNewDeviceSuccess(t *testing.T) {
	device, err := domain.NewDevice("device-123", "token:with:colons")

	assert.NoError(t, err)
	assert.Equal(t, "device-123", device.DeviceID())
	assert.Equal(t, "token:with:colons", device.FCMToken())
}

func TestNewDeviceError(t *testing.T) {
	tests := []struct {
		name        string
		deviceID    string
		fcmToken    string
		expectedErr error
	}{
		{
			name:        "empty device ID",
			deviceID:    "",
			fcmToken:    "valid-token",
			expectedErr: domain.ErrEmptyDeviceID,
		},
		{
			name:        "empty FCM token",
			deviceID:    "valid-device",
			fcmToken:    "",
			expectedErr: domain.ErrEmptyFCMToken,
		},
		{
			name:        "both empty - device ID checked first",
			deviceID:    "",
			fcmToken:    "",
			expectedErr: domain.ErrEmptyDeviceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewDevice(tt.deviceID, tt.fcmToken)

			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestDevicesTokensSuccess(t *testing.T) {
	tests := []struct {
		name     string
		devices  func(t *testing.T) domain.Devices
		expected []string
		empty    bool
	}{
		{
			name: "no devices",
			devices: func(t *testing.T) domain.Devices {
				return nil
			},
			expected: []string{},
			empty:    true,
		},
		{
			name: "keeps registration order",
			devices: func(t *testing.T) domain.Devices {
				return domain.Devices{
					mustDevice(t, "phone", "token-b"),
					mustDevice(t, "laptop", "token-a"),
				}
			},
			expected: []string{"token-b", "token-a"},
		},
		{
			name: "same token on two devices is sent once",
			devices: func(t *testing.T) domain.Devices {
				return domain.Devices{
					mustDevice(t, "browser-1", "token-a"),
					mustDevice(t, "browser-2", "token-a"),
					mustDevice(t, "phone", "token-c"),
				}
			},
			expected: []string{"token-a", "token-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices := tt.devices(t)

			assert.Equal(t, tt.expected, devices.Tokens())
			assert.Equal(t, tt.empty, devices.IsEmpty())
		})
	}
}
