package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

type userUseCaseImpl struct {
	users           domain.UserRepository
	tasks           domain.TaskRepository
	defaultLocation *time.Location
}

func NewUserUseCase(users domain.UserRepository, tasks domain.TaskRepository, defaultLocation *time.Location) UserUseCase {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}

	return &userUseCaseImpl{
		users:           users,
		tasks:           tasks,
		defaultLocation: defaultLocation,
	}
}

// UpsertUser sets the user's timezone. When the effective zone changes, tasks
// still waiting for their reminder get nextRemindAt recomputed in the new zone.
func (uc *userUseCaseImpl) UpsertUser(ctx context.Context, input UpsertUserInput) (UserOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return UserOutput{}, NewValidationError("user_id", err.Error())
	}

	user, err := uc.users.FindByID(ctx, userID)

	previous := uc.defaultLocation

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = domain.NewUser(userID, input.Timezone)
		if err != nil {
			return UserOutput{}, NewValidationError("timezone", err.Error())
		}
	case err != nil:
		return UserOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	default:
		previous = user.Location(uc.defaultLocation)

		if err := user.ChangeTimezone(input.Timezone); err != nil {
			return UserOutput{}, NewValidationError("timezone", err.Error())
		}
	}

	if err := uc.users.Save(ctx, user); err != nil {
		return UserOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.InfoContext(ctx, "user saved",
		"user_id", userID.String(),
		"timezone", user.TimezoneName(),
	)

	current := user.Location(uc.defaultLocation)
	if current.String() != previous.String() {
		if err := uc.rescheduleTasks(ctx, userID, current); err != nil {
			return UserOutput{}, err
		}
	}

	return FromUserEntity(user), nil
}

func (uc *userUseCaseImpl) rescheduleTasks(ctx context.Context, userID domain.UserID, loc *time.Location) error {
	tasks, err := uc.tasks.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	rescheduled := 0

	for _, task := range tasks {
		if !task.HasPendingReminder() {
			continue
		}

		if err := task.Reschedule(task.DueDate(), task.DueTime(), loc); err != nil {
			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}

		if err := uc.tasks.Update(ctx, task); err != nil {
			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}

		rescheduled++
	}

	slog.InfoContext(ctx, "tasks rescheduled for new timezone",
		"user_id", userID.String(),
		"timezone", loc.String(),
		"rescheduled", rescheduled,
	)

	return nil
}

func (uc *userUseCaseImpl) RegisterDevice(ctx context.Context, input RegisterDeviceInput) (DevicesOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return DevicesOutput{}, NewValidationError("user_id", err.Error())
	}

	device, err := domain.NewDevice(input.DeviceID, input.FCMToken)
	if err != nil {
		field := "device_id"
		if errors.Is(err, domain.ErrEmptyFCMToken) {
			field = "fcm_token"
		}

		return DevicesOutput{}, NewValidationError(field, err.Error())
	}

	if err := uc.users.RegisterDevice(ctx, userID, device); err != nil {
		return DevicesOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	devices, err := uc.users.DevicesForUser(ctx, userID)
	if err != nil {
		return DevicesOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.InfoContext(ctx, "device registered",
		"user_id", userID.String(),
		"device_id", device.DeviceID(),
		"device_count", devices.Count(),
	)

	return FromDevices(userID, devices), nil
}

func (uc *userUseCaseImpl) UnregisterDevice(ctx context.Context, input UnregisterDeviceInput) error {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return NewValidationError("user_id", err.Error())
	}

	if input.DeviceID == "" {
		return NewValidationError("device_id", domain.ErrEmptyDeviceID.Error())
	}

	removed, err := uc.users.UnregisterDevice(ctx, userID, input.DeviceID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if removed == 0 {
		slog.InfoContext(ctx, "device not registered (idempotency)",
			"user_id", userID.String(),
			"device_id", input.DeviceID,
		)

		return nil
	}

	slog.InfoContext(ctx, "device unregistered",
		"user_id", userID.String(),
		"device_id", input.DeviceID,
	)

	return nil
}
