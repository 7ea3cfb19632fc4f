package app

import "context"

//go:generate mockgen -source=reminder_usecase.go -destination=reminder_usecase_mock.go -package=app

type ReminderUseCase interface {
	// TriggerTaskCheck notifies every pending task due in the current minute.
	// Only scan-level failures are returned; per-task failures are counted.
	TriggerTaskCheck(ctx context.Context, input TriggerTaskCheckInput) (TriggerTaskCheckOutput, error)
}
