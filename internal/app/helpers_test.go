package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-task-reminder/internal/testutil"
)

type stores struct {
	db    *testutil.TestDB
	tasks domain.TaskRepository
	users domain.UserRepository
}

func setupStores(t *testing.T) stores {
	t.Helper()

	db := testutil.SetupSQLiteDB(t)

	return stores{
		db:    db,
		tasks: repository.NewTaskRepository(db.DB),
		users: repository.NewUserRepository(db.DB),
	}
}

func createValidUserID(t *testing.T, name string) domain.UserID {
	t.Helper()

	id, err := domain.UserIDFromString(name)
	require.NoError(t, err)

	return id
}

// seedDueTask stores a pending task whose reminder fires at remindAt.
func seedDueTask(t *testing.T, s stores, userID domain.UserID, remindAt time.Time, notified bool) *domain.Task {
	t.Helper()

	at := remindAt.UTC()
	now := time.Now().UTC()

	task := domain.ReconstituteTask(
		domain.NewTaskID(),
		userID,
		"Pay rent",
		domain.StatusPending,
		domain.PriorityHigh,
		"",
		"",
		&at,
		notified,
		now,
		now,
	)
	require.NoError(t, s.tasks.Save(context.Background(), task))

	return task
}

func seedDevices(t *testing.T, s stores, userID domain.UserID, tokens ...string) {
	t.Helper()

	for i, token := range tokens {
		d, err := domain.NewDevice("device-"+string(rune('a'+i)), token)
		require.NoError(t, err)
		require.NoError(t, s.users.RegisterDevice(context.Background(), userID, d))
	}
}

func isNotified(t *testing.T, s stores, id domain.TaskID) bool {
	t.Helper()

	task, err := s.tasks.FindByID(context.Background(), id)
	require.NoError(t, err)

	return task.IsNotified()
}

// seedMalformedTask stores a due row whose priority no client may write.
func seedMalformedTask(t *testing.T, s stores, userID domain.UserID, remindAt time.Time) string {
	t.Helper()

	ms := remindAt.UnixMilli()
	now := time.Now().UTC()

	m := repository.TaskModel{
		ID:           domain.NewTaskID().String(),
		UserID:       userID.String(),
		Title:        "Broken",
		Status:       string(domain.StatusPending),
		Priority:     "urgent",
		NextRemindAt: &ms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.db.DB.Create(&m).Error)

	return m.ID
}
