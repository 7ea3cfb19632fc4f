package logging

import (
	"context"

	"github.com/google/uuid"
)

type Module string

const (
	ModuleReminder  Module = "reminder"
	ModuleTask      Module = "task"
	ModuleUser      Module = "user"
	ModuleScheduler Module = "scheduler"
	ModuleDB        Module = "db"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	moduleKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)

	return v
}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

func ModuleFromContext(ctx context.Context) Module {
	v, _ := ctx.Value(moduleKey).(Module)

	return v
}

// ValidateAndExtractRequestID keeps an incoming id only if it is a UUID and
// otherwise mints a fresh UUIDv7.
func ValidateAndExtractRequestID(header string) string {
	if header != "" {
		if id, err := uuid.Parse(header); err == nil {
			return id.String()
		}
	}

	return NewRequestID()
}

func NewRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
