package app

import "context"

type UserUseCase interface {
	UpsertUser(ctx context.Context, input UpsertUserInput) (UserOutput, error)
	RegisterDevice(ctx context.Context, input RegisterDeviceInput) (DevicesOutput, error)
	UnregisterDevice(ctx context.Context, input UnregisterDeviceInput) error
}
