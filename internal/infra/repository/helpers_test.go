package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
	"github.com/KasumiMercury/primind-task-reminder/internal/testutil"
)

type backend struct {
	name  string
	setup func(t *testing.T) *testutil.TestDB
}

// backends returns SQLite always and Postgres unless running with -short.
func backends(t *testing.T) []backend {
	t.Helper()

	b := []backend{{name: "sqlite", setup: testutil.SetupSQLiteDB}}

	if !testing.Short() {
		b = append(b, backend{name: "postgres", setup: func(t *testing.T) *testutil.TestDB {
			tdb := testutil.SetupTestDB(t)
			t.Cleanup(func() { tdb.TeardownTestDB(t) })

			return tdb
		}})
	}

	return b
}

func createValidUserID(t *testing.T, name string) domain.UserID {
	t.Helper()

	id, err := domain.UserIDFromString(name)
	require.NoError(t, err)

	return id
}

func createTaskAt(t *testing.T, userID domain.UserID, status domain.Status, remindAt *time.Time, notified bool) *domain.Task {
	t.Helper()

	var ms *time.Time
	if remindAt != nil {
		at := remindAt.UTC()
		ms = &at
	}

	return domain.ReconstituteTask(
		domain.NewTaskID(),
		userID,
		"task",
		status,
		domain.PriorityMedium,
		"",
		"",
		ms,
		notified,
		time.Now().UTC().Truncate(time.Millisecond),
		time.Now().UTC().Truncate(time.Millisecond),
	)
}

func collect(t *testing.T, seq func(func(*domain.Task, error) bool)) []*domain.Task {
	t.Helper()

	var tasks []*domain.Task
	for task, err := range seq {
		require.NoError(t, err)
		tasks = append(tasks, task)
	}

	return tasks
}
