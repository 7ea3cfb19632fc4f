package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync/atomic"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

const defaultDuePageSize = 200

type taskRepositoryImpl struct {
	db       *gorm.DB
	pageSize int
	// indexVerified caches a positive index check; a missing index is
	// re-checked on every scan so it clears once an operator adds it.
	indexVerified *atomic.Bool
}

type TaskRepositoryOption func(*taskRepositoryImpl)

// WithDuePageSize sets how many due tasks are fetched per query while
// streaming a scan.
func WithDuePageSize(n int) TaskRepositoryOption {
	return func(r *taskRepositoryImpl) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

func NewTaskRepository(db *gorm.DB, opts ...TaskRepositoryOption) domain.TaskRepository {
	r := &taskRepositoryImpl{
		db:            db,
		pageSize:      defaultDuePageSize,
		indexVerified: &atomic.Bool{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *taskRepositoryImpl) Save(ctx context.Context, task *domain.Task) error {
	slog.Debug("saving task to database",
		"task_id", task.ID().String(),
	)

	m := FromTaskEntity(task)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		slog.Error("failed to save task to database",
			"task_id", task.ID().String(),
			"error", err,
		)

		return err
	}

	return nil
}

func (r *taskRepositoryImpl) FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	var m TaskModel

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}

		slog.Error("failed to find task by ID",
			"task_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	slog.Debug("updating task in database",
		"task_id", task.ID().String(),
	)

	m := FromTaskEntity(task)

	result := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ?", m.ID).
		Select("title", "status", "priority", "due_date", "due_time", "next_remind_at", "updated_at").
		Updates(m)
	if result.Error != nil {
		slog.Error("failed to update task in database",
			"task_id", task.ID().String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepositoryImpl) FindByUserID(ctx context.Context, userID domain.UserID) ([]*domain.Task, error) {
	var models []TaskModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		slog.Error("failed to find tasks by user",
			"user_id", userID.String(),
			"error", err,
		)

		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(models))

	for i := range models {
		task, err := models[i].ToEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: task %s: %w", domain.ErrMalformedTask, models[i].ID, err)
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

type dueCursor struct {
	nextRemindAt int64
	id           string
}

func (r *taskRepositoryImpl) FindDueTasks(ctx context.Context, w domain.DueWindow) (iter.Seq2[*domain.Task, error], error) {
	slog.Debug("finding due tasks",
		"window_start", w.Start(),
		"window_end", w.End(),
	)

	if err := r.ensureDueIndex(ctx); err != nil {
		return nil, err
	}

	first, err := r.fetchDuePage(ctx, w, nil)
	if err != nil {
		return nil, err
	}

	return func(yield func(*domain.Task, error) bool) {
		page := first

		for {
			for i := range page {
				task, err := page[i].ToEntity()
				if err != nil {
					slog.Error("failed to convert model to entity",
						"task_id", page[i].ID,
						"error", err,
					)

					if !yield(nil, fmt.Errorf("%w: task %s: %w", domain.ErrMalformedTask, page[i].ID, err)) {
						return
					}

					continue
				}

				if !yield(task, nil) {
					return
				}
			}

			if len(page) < r.pageSize {
				return
			}

			last := page[len(page)-1]

			page, err = r.fetchDuePage(ctx, w, &dueCursor{nextRemindAt: *last.NextRemindAt, id: last.ID})
			if err != nil {
				yield(nil, err)

				return
			}
		}
	}, nil
}

func (r *taskRepositoryImpl) fetchDuePage(ctx context.Context, w domain.DueWindow, after *dueCursor) ([]TaskModel, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusPending)).
		Where("next_remind_at >= ? AND next_remind_at < ?", w.StartMillis(), w.EndMillis())

	if after != nil {
		q = q.Where("(next_remind_at > ? OR (next_remind_at = ? AND id > ?))",
			after.nextRemindAt, after.nextRemindAt, after.id)
	}

	var models []TaskModel
	if err := q.Order("next_remind_at ASC, id ASC").Limit(r.pageSize).Find(&models).Error; err != nil {
		slog.Error("failed to query due tasks",
			"window_start", w.Start(),
			"window_end", w.End(),
			"error", err,
		)

		return nil, err
	}

	return models, nil
}

func (r *taskRepositoryImpl) ensureDueIndex(ctx context.Context) error {
	if r.indexVerified.Load() {
		return nil
	}

	// HasIndex reports false on any query error, so an unreachable store
	// must be ruled out first.
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		slog.Error("database unreachable while checking due task index",
			"error", err,
		)

		return err
	}

	if !r.db.WithContext(ctx).Migrator().HasIndex(&TaskModel{}, dueTaskIndexName) {
		return &domain.MissingIndexError{
			Index:  dueTaskIndexName,
			Table:  taskTableName,
			Fields: dueTaskIndexFields,
		}
	}

	r.indexVerified.Store(true)

	return nil
}

func (r *taskRepositoryImpl) ClaimNotification(ctx context.Context, id domain.TaskID) (bool, error) {
	return r.swapNotified(ctx, id, false, true)
}

func (r *taskRepositoryImpl) ReleaseNotification(ctx context.Context, id domain.TaskID) (bool, error) {
	return r.swapNotified(ctx, id, true, false)
}

func (r *taskRepositoryImpl) swapNotified(ctx context.Context, id domain.TaskID, from, to bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ? AND notified = ?", id.String(), from).
		Update("notified", to)
	if result.Error != nil {
		slog.Error("failed to update notified flag",
			"task_id", id.String(),
			"to", to,
			"error", result.Error,
		)

		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
