package app_test

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-task-reminder/internal/app"
	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/push"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/repository"
)

const linkBase = "https://app.example.com"

var (
	remindAt   = time.UnixMilli(1700000060000)
	sameMinute = time.UnixMilli(1700000090000)
	nextMinute = time.UnixMilli(1700000130000)
)

func okResult(tokens ...string) push.DispatchResult {
	r := push.DispatchResult{}
	for _, token := range tokens {
		r.SuccessCount++
		r.Responses = append(r.Responses, push.TokenResult{Token: token, Success: true})
	}

	return r
}

func newReminder(s stores, dispatcher push.Dispatcher, publisher pubsub.Publisher) app.ReminderUseCase {
	return app.NewReminderUseCase(s.tasks, s.users, dispatcher, publisher, app.ReminderConfig{
		LinkBaseURL: linkBase,
		Concurrency: 4,
	})
}

func TestTriggerTaskCheckSuccess(t *testing.T) {
	tests := []struct {
		name           string
		at             time.Time
		tokens         []string
		result         push.DispatchResult
		dispatchErr    error
		expectDispatch bool
		expectPublish  bool
		expected       app.TriggerTaskCheckOutput
		expectNotified bool
	}{
		{
			name:           "due in same minute is delivered",
			at:             sameMinute,
			tokens:         []string{"t1", "t2"},
			result:         okResult("t1", "t2"),
			expectDispatch: true,
			expectPublish:  true,
			expected:       app.TriggerTaskCheckOutput{Processed: 1, NotificationsSent: 2},
			expectNotified: true,
		},
		{
			name:     "window moved past the task",
			at:       nextMinute,
			tokens:   []string{"t1"},
			expected: app.TriggerTaskCheckOutput{},
		},
		{
			name:   "partial delivery keeps task notified",
			at:     sameMinute,
			tokens: []string{"t1", "t2"},
			result: push.DispatchResult{
				SuccessCount: 1,
				FailureCount: 1,
				Responses: []push.TokenResult{
					{Token: "t1", Success: true},
					{Token: "t2", Err: errors.New("quota exceeded")},
				},
			},
			expectDispatch: true,
			expectPublish:  true,
			expected:       app.TriggerTaskCheckOutput{Processed: 1, NotificationsSent: 1, Failures: 1},
			expectNotified: true,
		},
		{
			name:   "total delivery failure leaves task unnotified",
			at:     sameMinute,
			tokens: []string{"t1", "t2"},
			result: push.DispatchResult{
				FailureCount: 2,
				Responses: []push.TokenResult{
					{Token: "t1", Err: errors.New("invalid")},
					{Token: "t2", Err: errors.New("invalid")},
				},
			},
			expectDispatch: true,
			expected:       app.TriggerTaskCheckOutput{Processed: 1, Failures: 2},
			expectNotified: false,
		},
		{
			name:           "transport error leaves task unnotified",
			at:             sameMinute,
			tokens:         []string{"t1", "t2"},
			dispatchErr:    errors.New("connection reset"),
			expectDispatch: true,
			expected:       app.TriggerTaskCheckOutput{Processed: 1, Failures: 2},
			expectNotified: false,
		},
		{
			name:           "user without tokens is skipped",
			at:             sameMinute,
			expected:       app.TriggerTaskCheckOutput{Processed: 1, Skipped: 1},
			expectNotified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dispatcher := push.NewMockDispatcher(ctrl)
			publisher := pubsub.NewMockPublisher(ctrl)

			s := setupStores(t)
			user := createValidUserID(t, "owner")
			task := seedDueTask(t, s, user, remindAt, false)
			seedDevices(t, s, user, tt.tokens...)

			if tt.expectDispatch {
				dispatcher.EXPECT().
					Dispatch(gomock.Any(), gomock.InAnyOrder(tt.tokens), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ []string, n domain.Notification) (push.DispatchResult, error) {
						assert.Equal(t, domain.DueTaskNotificationTitle, n.Title)
						assert.Contains(t, n.Body, "Pay rent")
						assert.Equal(t, task.ID().String(), n.Data["taskId"])
						assert.Equal(t, "high", n.Data["priority"])
						assert.Equal(t, linkBase+"/tasks/"+task.ID().String(), n.Data["link"])

						return tt.result, tt.dispatchErr
					})
			}

			if tt.expectPublish {
				publisher.EXPECT().
					PublishTaskReminded(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e pubsub.TaskRemindedEvent) error {
						assert.Equal(t, task.ID().String(), e.TaskID)
						assert.Equal(t, "owner", e.UserID)

						return nil
					})
			}

			out, err := newReminder(s, dispatcher, publisher).
				TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: tt.at})
			require.NoError(t, err)

			assert.Equal(t, tt.expected.Processed, out.Processed)
			assert.Equal(t, tt.expected.NotificationsSent, out.NotificationsSent)
			assert.Equal(t, tt.expected.Failures, out.Failures)
			assert.Equal(t, tt.expected.Skipped, out.Skipped)
			assert.Zero(t, out.Errors)
			assert.Equal(t, tt.expectNotified, isNotified(t, s, task.ID()))
		})
	}
}

func TestTriggerTaskCheckEmptySuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := push.NewMockDispatcher(ctrl)
	registry := domain.NewMockDeviceRegistry(ctrl)

	s := setupStores(t)

	uc := app.NewReminderUseCase(s.tasks, registry, dispatcher, nil, app.ReminderConfig{LinkBaseURL: linkBase})

	out, err := uc.TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})
	require.NoError(t, err)

	assert.True(t, out.IsEmpty())
	assert.Equal(t, int64(1700000040000), out.WindowStart.UnixMilli())
	assert.Equal(t, int64(1700000100000), out.WindowEnd.UnixMilli())
}

func TestTriggerTaskCheckNoDuplicateSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := push.NewMockDispatcher(ctrl)

	s := setupStores(t)
	user := createValidUserID(t, "owner")
	seedDueTask(t, s, user, remindAt, false)
	already := seedDueTask(t, s, user, remindAt.Add(10*time.Second), true)
	seedDevices(t, s, user, "t1")

	dispatcher.EXPECT().Dispatch(gomock.Any(), []string{"t1"}, gomock.Any()).Return(okResult("t1"), nil).Times(1)

	uc := newReminder(s, dispatcher, nil)

	first, err := uc.TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Processed)
	assert.Equal(t, 1, first.NotificationsSent)
	assert.Equal(t, 1, first.Skipped)

	second, err := uc.TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute.Add(20 * time.Second)})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Processed)
	assert.Zero(t, second.NotificationsSent)
	assert.Equal(t, 2, second.Skipped)

	assert.True(t, isNotified(t, s, already.ID()))
}

func TestTriggerTaskCheckConcurrentRunsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := push.NewMockDispatcher(ctrl)

	s := setupStores(t)

	const taskCount = 5

	for i := 0; i < taskCount; i++ {
		user := createValidUserID(t, "user-"+string(rune('a'+i)))
		seedDueTask(t, s, user, remindAt.Add(time.Duration(i)*time.Second), false)
		seedDevices(t, s, user, "token-"+string(rune('a'+i)))
	}

	dispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tokens []string, _ domain.Notification) (push.DispatchResult, error) {
			time.Sleep(5 * time.Millisecond)

			return okResult(tokens...), nil
		}).
		Times(taskCount)

	// separate instances share the store but not the in-process dedupe
	runs := []app.ReminderUseCase{
		newReminder(s, dispatcher, nil),
		newReminder(s, dispatcher, nil),
		newReminder(s, dispatcher, nil),
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)

	for _, uc := range runs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			out, err := uc.TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})
			assert.NoError(t, err)

			mu.Lock()
			sent += out.NotificationsSent
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Equal(t, taskCount, sent)
}

func TestTriggerTaskCheckPrunesUnregisteredSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := push.NewMockDispatcher(ctrl)

	s := setupStores(t)
	user := createValidUserID(t, "owner")
	seedDueTask(t, s, user, remindAt, false)
	seedDevices(t, s, user, "live", "stale")

	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(push.DispatchResult{
		SuccessCount: 1,
		FailureCount: 1,
		Responses: []push.TokenResult{
			{Token: "live", Success: true},
			{Token: "stale", Unregistered: true, Err: errors.New("unregistered")},
		},
	}, nil)

	_, err := newReminder(s, dispatcher, nil).TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})
	require.NoError(t, err)

	devices, err := s.users.DevicesForUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, devices.Tokens())
}

func TestTriggerTaskCheckTaskIsolationSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := push.NewMockDispatcher(ctrl)

	s := setupStores(t)

	panicky := createValidUserID(t, "panicky")
	healthy := createValidUserID(t, "healthy")
	panicTask := seedDueTask(t, s, panicky, remindAt, false)
	okTask := seedDueTask(t, s, healthy, remindAt.Add(time.Second), false)
	seedDevices(t, s, panicky, "boom")
	seedDevices(t, s, healthy, "fine")

	dispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tokens []string, _ domain.Notification) (push.DispatchResult, error) {
			if tokens[0] == "boom" {
				panic("transport exploded")
			}

			return okResult(tokens...), nil
		}).
		Times(2)

	out, err := newReminder(s, dispatcher, nil).TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, 1, out.NotificationsSent)
	assert.Equal(t, 1, out.Errors)
	assert.False(t, isNotified(t, s, panicTask.ID()))
	assert.True(t, isNotified(t, s, okTask.ID()))
}

func TestTriggerTaskCheckRegistryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := push.NewMockDispatcher(ctrl)
	registry := domain.NewMockDeviceRegistry(ctrl)

	s := setupStores(t)
	task := seedDueTask(t, s, createValidUserID(t, "owner"), remindAt, false)

	registry.EXPECT().DevicesForUser(gomock.Any(), gomock.Any()).Return(nil, errors.New("registry down"))

	uc := app.NewReminderUseCase(s.tasks, registry, dispatcher, nil, app.ReminderConfig{LinkBaseURL: linkBase})

	out, err := uc.TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Processed)
	assert.Equal(t, 1, out.Errors)
	assert.False(t, isNotified(t, s, task.ID()))
}

func TestTriggerTaskCheckError(t *testing.T) {
	t.Run("missing index", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dispatcher := push.NewMockDispatcher(ctrl)

		s := setupStores(t)
		seedDueTask(t, s, createValidUserID(t, "owner"), remindAt, false)
		s.db.DropDueTaskIndex(t)

		_, err := newReminder(s, dispatcher, nil).TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})

		require.ErrorIs(t, err, app.ErrInternalError)

		var missing *domain.MissingIndexError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"status", "next_remind_at"}, missing.Fields)
	})

	t.Run("store fails mid-scan", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dispatcher := push.NewMockDispatcher(ctrl)

		s := setupStores(t)
		user := createValidUserID(t, "owner")
		seedDueTask(t, s, user, remindAt, false)
		seedDevices(t, s, user, "t1")

		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(okResult("t1"), nil)

		failing := &failingScanRepository{TaskRepository: s.tasks, err: errors.New("connection lost")}
		uc := app.NewReminderUseCase(failing, s.users, dispatcher, nil, app.ReminderConfig{LinkBaseURL: linkBase})

		out, err := uc.TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})

		require.ErrorIs(t, err, app.ErrInternalError)
		assert.Equal(t, 1, out.Processed)
		assert.Equal(t, 1, out.NotificationsSent)
	})
}

func TestTriggerTaskCheckCallerCancelledSuccess(t *testing.T) {
	s := setupStores(t)
	alice := createValidUserID(t, "alice")
	seedDevices(t, s, alice, "t1")

	for range 3 {
		seedDueTask(t, s, alice, remindAt, false)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := gomock.NewController(t)
	dispatcher := push.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().
		Dispatch(gomock.Any(), []string{"t1"}, gomock.Any()).
		DoAndReturn(func(context.Context, []string, domain.Notification) (push.DispatchResult, error) {
			cancel()

			return okResult("t1"), nil
		}).
		Times(3)

	tasks := repository.NewTaskRepository(s.db.DB, repository.WithDuePageSize(1))
	uc := app.NewReminderUseCase(tasks, s.users, dispatcher, nil, app.ReminderConfig{
		LinkBaseURL: linkBase,
		Concurrency: 1,
	})

	out, err := uc.TriggerTaskCheck(ctx, app.TriggerTaskCheckInput{At: sameMinute})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Processed)
	assert.Equal(t, 3, out.NotificationsSent)
	assert.Zero(t, out.Errors)
}

func TestTriggerTaskCheckMalformedTaskSuccess(t *testing.T) {
	s := setupStores(t)
	alice := createValidUserID(t, "alice")
	bob := createValidUserID(t, "bob")
	seedDevices(t, s, alice, "t1")
	seedDevices(t, s, bob, "t2")

	valid := seedDueTask(t, s, alice, remindAt, false)
	seedMalformedTask(t, s, bob, remindAt)

	ctrl := gomock.NewController(t)
	dispatcher := push.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().
		Dispatch(gomock.Any(), []string{"t1"}, gomock.Any()).
		Return(okResult("t1"), nil).
		Times(1)

	uc := newReminder(s, dispatcher, nil)

	out, err := uc.TriggerTaskCheck(context.Background(), app.TriggerTaskCheckInput{At: sameMinute})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, 1, out.NotificationsSent)
	assert.Equal(t, 1, out.Errors)
	assert.True(t, isNotified(t, s, valid.ID()))
}

// failingScanRepository yields the real due tasks and then a store error.
type failingScanRepository struct {
	domain.TaskRepository
	err error
}

func (r *failingScanRepository) FindDueTasks(ctx context.Context, w domain.DueWindow) (iter.Seq2[*domain.Task, error], error) {
	seq, err := r.TaskRepository.FindDueTasks(ctx, w)
	if err != nil {
		return nil, err
	}

	return func(yield func(*domain.Task, error) bool) {
		for task, err := range seq {
			if !yield(task, err) {
				return
			}
		}

		yield(nil, r.err)
	}, nil
}
