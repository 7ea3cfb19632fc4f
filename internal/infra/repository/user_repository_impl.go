package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepositoryImpl{
		db: db,
	}
}

func (r *userRepositoryImpl) Save(ctx context.Context, user *domain.User) error {
	m := FromUserEntity(user)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"timezone", "updated_at"}),
	}).Create(m)
	if result.Error != nil {
		slog.Error("failed to save user",
			"user_id", user.ID().String(),
			"error", result.Error,
		)

		return result.Error
	}

	return nil
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var m UserModel

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}

		slog.Error("failed to find user by ID",
			"user_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *userRepositoryImpl) DevicesForUser(ctx context.Context, userID domain.UserID) (domain.Devices, error) {
	var models []DeviceModel

	result := r.db.WithContext(ctx).Where("user_id = ?", userID.String()).Order("id ASC").Find(&models)
	if result.Error != nil {
		slog.Error("failed to find devices for user",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return toDevices(models)
}

func (r *userRepositoryImpl) RegisterDevice(ctx context.Context, userID domain.UserID, device domain.Device) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A token moves with its latest registration, and a device keeps
		// only its newest token.
		if err := tx.
			Where("fcm_token = ? OR (user_id = ? AND device_id = ?)",
				device.FCMToken(), userID.String(), device.DeviceID()).
			Delete(&DeviceModel{}).Error; err != nil {
			return err
		}

		now := time.Now()

		m := &DeviceModel{
			UserID:    userID.String(),
			DeviceID:  device.DeviceID(),
			FCMToken:  device.FCMToken(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(m).Error; err != nil {
			slog.Error("failed to register device",
				"user_id", userID.String(),
				"device_id", device.DeviceID(),
				"error", err,
			)

			return err
		}

		return nil
	})
}

func (r *userRepositoryImpl) UnregisterDevice(ctx context.Context, userID domain.UserID, deviceID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID.String(), deviceID).
		Delete(&DeviceModel{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *userRepositoryImpl) RemoveTokens(ctx context.Context, userID domain.UserID, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND fcm_token IN ?", userID.String(), tokens).
		Delete(&DeviceModel{})
	if result.Error != nil {
		slog.Error("failed to remove device tokens",
			"user_id", userID.String(),
			"count", len(tokens),
			"error", result.Error,
		)

		return 0, result.Error
	}

	slog.Debug("device tokens removed",
		"user_id", userID.String(),
		"count", result.RowsAffected,
	)

	return result.RowsAffected, nil
}
