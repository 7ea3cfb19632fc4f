package domain

import "context"

//go:generate mockgen -source=device_registry.go -destination=device_registry_mock.go -package=domain

type DeviceRegistry interface {
	DevicesForUser(ctx context.Context, userID UserID) (Devices, error)
	RemoveTokens(ctx context.Context, userID UserID, tokens []string) (int64, error)
}
