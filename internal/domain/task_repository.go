package domain

import (
	"context"
	"iter"
)

type TaskRepository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id TaskID) (*Task, error)
	FindByUserID(ctx context.Context, userID UserID) ([]*Task, error)
	// Update persists everything except the notified flag.
	Update(ctx context.Context, task *Task) error
	// FindDueTasks streams pending tasks of every user whose nextRemindAt
	// falls inside w. Errors detected before the first row are returned
	// directly; later failures are yielded. A row that cannot be read is
	// yielded as ErrMalformedTask and the sequence continues.
	FindDueTasks(ctx context.Context, w DueWindow) (iter.Seq2[*Task, error], error)
	// ClaimNotification sets notified=true only if it is currently false and
	// reports whether this call made the transition.
	ClaimNotification(ctx context.Context, id TaskID) (bool, error)
	// ReleaseNotification reverts a claim made by ClaimNotification.
	ReleaseNotification(ctx context.Context, id TaskID) (bool, error)
}
