package domain

import "context"

type UserRepository interface {
	DeviceRegistry
	// Save inserts the user or updates its timezone.
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id UserID) (*User, error)
	RegisterDevice(ctx context.Context, userID UserID, device Device) error
	UnregisterDevice(ctx context.Context, userID UserID, deviceID string) (int64, error)
}
