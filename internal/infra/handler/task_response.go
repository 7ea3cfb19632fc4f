package handler

import (
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/app"
)

type TaskResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DueDate      string     `json:"due_date,omitempty"`
	DueTime      string     `json:"due_time,omitempty"`
	NextRemindAt *time.Time `json:"next_remind_at,omitempty"`
	Notified     bool       `json:"notified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func FromTaskOutput(output app.TaskOutput) TaskResponse {
	return TaskResponse{
		ID:           output.ID,
		UserID:       output.UserID,
		Title:        output.Title,
		Status:       output.Status,
		Priority:     output.Priority,
		DueDate:      output.DueDate,
		DueTime:      output.DueTime,
		NextRemindAt: output.NextRemindAt,
		Notified:     output.Notified,
		CreatedAt:    output.CreatedAt,
		UpdatedAt:    output.UpdatedAt,
	}
}
