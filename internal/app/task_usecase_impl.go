package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

type taskUseCaseImpl struct {
	tasks           domain.TaskRepository
	users           domain.UserRepository
	defaultLocation *time.Location
}

// NewTaskUseCase computes reminder instants in the owner's timezone, or in
// defaultLocation when the owner has none.
func NewTaskUseCase(tasks domain.TaskRepository, users domain.UserRepository, defaultLocation *time.Location) TaskUseCase {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}

	return &taskUseCaseImpl{
		tasks:           tasks,
		users:           users,
		defaultLocation: defaultLocation,
	}
}

func (uc *taskUseCaseImpl) CreateTask(ctx context.Context, input CreateTaskInput) (TaskOutput, error) {
	slog.DebugContext(ctx, "creating task",
		"user_id", input.UserID,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return TaskOutput{}, NewValidationError("user_id", err.Error())
	}

	priority, err := domain.NewPriority(input.Priority)
	if err != nil {
		return TaskOutput{}, NewValidationError("priority", err.Error())
	}

	if err := validateSchedule(input.DueDate, input.DueTime); err != nil {
		return TaskOutput{}, err
	}

	loc, err := uc.locationFor(ctx, userID)
	if err != nil {
		return TaskOutput{}, err
	}

	task, err := domain.NewTask(userID, input.Title, priority, input.DueDate, input.DueTime, loc)
	if err != nil {
		return TaskOutput{}, NewValidationError("title", err.Error())
	}

	if err := uc.tasks.Save(ctx, task); err != nil {
		return TaskOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.InfoContext(ctx, "task created",
		"task_id", task.ID().String(),
		"user_id", userID.String(),
		"has_reminder", task.DueDate() != "" && task.DueTime() != "",
	)

	return FromTaskEntity(task), nil
}

func (uc *taskUseCaseImpl) GetTask(ctx context.Context, input GetTaskInput) (TaskOutput, error) {
	task, err := uc.findTask(ctx, input.ID)
	if err != nil {
		return TaskOutput{}, err
	}

	return FromTaskEntity(task), nil
}

func (uc *taskUseCaseImpl) UpdateTask(ctx context.Context, input UpdateTaskInput) (TaskOutput, error) {
	slog.DebugContext(ctx, "updating task",
		"task_id", input.ID,
	)

	task, err := uc.findTask(ctx, input.ID)
	if err != nil {
		return TaskOutput{}, err
	}

	if input.Title != nil {
		if err := task.Rename(*input.Title); err != nil {
			return TaskOutput{}, NewValidationError("title", err.Error())
		}
	}

	if input.Status != nil {
		status, err := domain.NewStatus(*input.Status)
		if err != nil {
			return TaskOutput{}, NewValidationError("status", err.Error())
		}

		task.ChangeStatus(status)
	}

	if input.Priority != nil {
		priority, err := domain.NewPriority(*input.Priority)
		if err != nil {
			return TaskOutput{}, NewValidationError("priority", err.Error())
		}

		task.ChangePriority(priority)
	}

	if input.DueDate != nil || input.DueTime != nil {
		dueDate, dueTime := task.DueDate(), task.DueTime()
		if input.DueDate != nil {
			dueDate = *input.DueDate
		}

		if input.DueTime != nil {
			dueTime = *input.DueTime
		}

		if err := validateSchedule(dueDate, dueTime); err != nil {
			return TaskOutput{}, err
		}

		loc, err := uc.locationFor(ctx, task.UserID())
		if err != nil {
			return TaskOutput{}, err
		}

		if err := task.Reschedule(dueDate, dueTime, loc); err != nil {
			return TaskOutput{}, NewValidationError("due_date", err.Error())
		}
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return TaskOutput{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		return TaskOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	// re-read so the notified flag reflects the store, not the stale copy
	updated, err := uc.tasks.FindByID(ctx, task.ID())
	if err != nil {
		return TaskOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.InfoContext(ctx, "task updated",
		"task_id", input.ID,
	)

	return FromTaskEntity(updated), nil
}

func (uc *taskUseCaseImpl) findTask(ctx context.Context, rawID string) (*domain.Task, error) {
	id, err := domain.TaskIDFromString(rawID)
	if err != nil {
		return nil, NewValidationError("id", err.Error())
	}

	task, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			slog.WarnContext(ctx, "task not found",
				"task_id", rawID,
			)

			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return task, nil
}

func (uc *taskUseCaseImpl) locationFor(ctx context.Context, userID domain.UserID) (*time.Location, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return uc.defaultLocation, nil
		}

		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return user.Location(uc.defaultLocation), nil
}

func validateSchedule(dueDate, dueTime string) error {
	if err := domain.ValidateDueDate(dueDate); err != nil {
		return NewValidationError("due_date", err.Error())
	}

	if err := domain.ValidateDueTime(dueTime); err != nil {
		return NewValidationError("due_time", err.Error())
	}

	return nil
}
