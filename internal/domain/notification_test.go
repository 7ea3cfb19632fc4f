package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

func TestNewDueTaskNotificationSuccess(t *testing.T) {
	task, err := domain.NewTask(createValidUserID(t), "Submit report", domain.PriorityHigh, "2026-11-01", "09:00", time.UTC)
	require.NoError(t, err)

	n := domain.NewDueTaskNotification(task, "https://app.example.com/")

	expectedLink := "https://app.example.com/tasks/" + task.ID().String()

	assert.Equal(t, "Task Due Now", n.Title)
	assert.Contains(t, n.Body, "Submit report")
	assert.Equal(t, expectedLink, n.Link)
	assert.Equal(t, task.ID().String(), n.Data["taskId"])
	assert.Equal(t, "high", n.Data["priority"])
	assert.Equal(t, expectedLink, n.Data["link"])
}

func TestMissingIndexError(t *testing.T) {
	err := &domain.MissingIndexError{
		Index:  "idx_tasks_status_next_remind_at",
		Table:  "tasks",
		Fields: []string{"status", "next_remind_at"},
	}

	assert.ErrorIs(t, err, domain.ErrMissingIndex)
	assert.Contains(t, err.Error(), "status, next_remind_at")
	assert.Contains(t, err.Remediation(), "idx_tasks_status_next_remind_at")
}
