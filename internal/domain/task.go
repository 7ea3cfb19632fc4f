package domain

import (
	"strings"
	"time"
)

type Task struct {
	id           TaskID
	userID       UserID
	title        string
	status       Status
	priority     Priority
	dueDate      string
	dueTime      string
	nextRemindAt *time.Time
	notified     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewTask(
	userID UserID,
	title string,
	priority Priority,
	dueDate string,
	dueTime string,
	loc *time.Location,
) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}

	nextRemindAt, err := ComputeNextRemindAt(dueDate, dueTime, loc)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	return &Task{
		id:           NewTaskID(),
		userID:       userID,
		title:        title,
		status:       StatusPending,
		priority:     priority,
		dueDate:      dueDate,
		dueTime:      dueTime,
		nextRemindAt: nextRemindAt,
		notified:     false,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstituteTask(
	id TaskID,
	userID UserID,
	title string,
	status Status,
	priority Priority,
	dueDate string,
	dueTime string,
	nextRemindAt *time.Time,
	notified bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Task {
	return &Task{
		id:           id,
		userID:       userID,
		title:        title,
		status:       status,
		priority:     priority,
		dueDate:      dueDate,
		dueTime:      dueTime,
		nextRemindAt: nextRemindAt,
		notified:     notified,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Reschedule replaces the due date and time and recomputes nextRemindAt.
// The notified flag is left untouched.
func (t *Task) Reschedule(dueDate, dueTime string, loc *time.Location) error {
	nextRemindAt, err := ComputeNextRemindAt(dueDate, dueTime, loc)
	if err != nil {
		return err
	}

	t.dueDate = dueDate
	t.dueTime = dueTime
	t.nextRemindAt = nextRemindAt
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTaskTitle
	}

	t.title = title
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) ChangeStatus(status Status) {
	t.status = status
	t.updatedAt = time.Now()
}

func (t *Task) ChangePriority(priority Priority) {
	t.priority = priority
	t.updatedAt = time.Now()
}

func (t *Task) IsPending() bool {
	return t.status == StatusPending
}

func (t *Task) IsNotified() bool {
	return t.notified
}

// HasPendingReminder reports whether the task still waits for its reminder.
func (t *Task) HasPendingReminder() bool {
	return t.IsPending() && t.nextRemindAt != nil && !t.notified
}

func (t *Task) ID() TaskID {
	return t.id
}

func (t *Task) UserID() UserID {
	return t.userID
}

func (t *Task) Title() string {
	return t.title
}

func (t *Task) Status() Status {
	return t.status
}

func (t *Task) Priority() Priority {
	return t.priority
}

func (t *Task) DueDate() string {
	return t.dueDate
}

func (t *Task) DueTime() string {
	return t.dueTime
}

func (t *Task) NextRemindAt() (time.Time, bool) {
	if t.nextRemindAt == nil {
		return time.Time{}, false
	}

	return *t.nextRemindAt, true
}

func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Task) UpdatedAt() time.Time {
	return t.updatedAt
}
