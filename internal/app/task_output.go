package app

import (
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

type TaskOutput struct {
	ID           string
	UserID       string
	Title        string
	Status       string
	Priority     string
	DueDate      string
	DueTime      string
	NextRemindAt *time.Time
	Notified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func FromTaskEntity(task *domain.Task) TaskOutput {
	out := TaskOutput{
		ID:        task.ID().String(),
		UserID:    task.UserID().String(),
		Title:     task.Title(),
		Status:    string(task.Status()),
		Priority:  string(task.Priority()),
		DueDate:   task.DueDate(),
		DueTime:   task.DueTime(),
		Notified:  task.IsNotified(),
		CreatedAt: task.CreatedAt(),
		UpdatedAt: task.UpdatedAt(),
	}

	if at, ok := task.NextRemindAt(); ok {
		out.NextRemindAt = &at
	}

	return out
}
