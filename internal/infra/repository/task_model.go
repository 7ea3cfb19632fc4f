package repository

import (
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

const (
	dueTaskIndexName = "idx_tasks_status_next_remind_at"
	taskTableName    = "tasks"
)

// dueTaskIndexFields lists the columns of the composite index the due-task
// query relies on, in index order.
var dueTaskIndexFields = []string{"status", "next_remind_at"}

type TaskModel struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"`
	UserID       string    `gorm:"column:user_id;type:varchar(128);not null;index:idx_tasks_user_id"`
	Title        string    `gorm:"column:title;type:varchar(500);not null"`
	Status       string    `gorm:"column:status;type:varchar(16);not null;index:idx_tasks_status_next_remind_at,priority:1"`
	Priority     string    `gorm:"column:priority;type:varchar(16);not null"`
	DueDate      *string   `gorm:"column:due_date;type:varchar(10)"`
	DueTime      *string   `gorm:"column:due_time;type:varchar(5)"`
	NextRemindAt *int64    `gorm:"column:next_remind_at;type:bigint;index:idx_tasks_status_next_remind_at,priority:2"` // epoch milliseconds
	Notified     bool      `gorm:"column:notified;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (TaskModel) TableName() string {
	return taskTableName
}

func (m *TaskModel) ToEntity() (*domain.Task, error) {
	taskID, err := domain.TaskIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	status, err := domain.NewStatus(m.Status)
	if err != nil {
		return nil, err
	}

	priority, err := domain.NewPriority(m.Priority)
	if err != nil {
		return nil, err
	}

	var nextRemindAt *time.Time
	if m.NextRemindAt != nil {
		at := time.UnixMilli(*m.NextRemindAt).UTC()
		nextRemindAt = &at
	}

	return domain.ReconstituteTask(
		taskID,
		userID,
		m.Title,
		status,
		priority,
		derefString(m.DueDate),
		derefString(m.DueTime),
		nextRemindAt,
		m.Notified,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func FromTaskEntity(e *domain.Task) *TaskModel {
	var nextRemindAt *int64
	if at, ok := e.NextRemindAt(); ok {
		ms := at.UnixMilli()
		nextRemindAt = &ms
	}

	return &TaskModel{
		ID:           e.ID().String(),
		UserID:       e.UserID().String(),
		Title:        e.Title(),
		Status:       string(e.Status()),
		Priority:     string(e.Priority()),
		DueDate:      optionalString(e.DueDate()),
		DueTime:      optionalString(e.DueTime()),
		NextRemindAt: nextRemindAt,
		Notified:     e.IsNotified(),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
