package app

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

type DueTaskScanner struct {
	repo domain.TaskRepository
}

func NewDueTaskScanner(repo domain.TaskRepository) *DueTaskScanner {
	return &DueTaskScanner{repo: repo}
}

// Scan opens the due-task sequence for the minute containing at. Store
// configuration errors, such as a missing index, are returned here rather
// than from the sequence.
func (s *DueTaskScanner) Scan(ctx context.Context, at time.Time) (*DueTaskScan, error) {
	window := domain.NewDueWindow(at)

	seq, err := s.repo.FindDueTasks(ctx, window)
	if err != nil {
		return nil, err
	}

	return &DueTaskScan{window: window, source: seq}, nil
}

// DueTaskScan is a single-pass sequence of unnotified due tasks.
type DueTaskScan struct {
	window   domain.DueWindow
	source   iter.Seq2[*domain.Task, error]
	consumed atomic.Bool
	matched  atomic.Int64
	notified atomic.Int64
}

func (sc *DueTaskScan) Window() domain.DueWindow {
	return sc.window
}

// Tasks yields each matching task that is not yet notified. Already-notified
// records are counted and dropped. Malformed rows are counted as matched and
// yielded as errors. A second call yields ErrScanConsumed.
func (sc *DueTaskScan) Tasks() iter.Seq2[*domain.Task, error] {
	return func(yield func(*domain.Task, error) bool) {
		if !sc.consumed.CompareAndSwap(false, true) {
			yield(nil, ErrScanConsumed)

			return
		}

		for task, err := range sc.source {
			if err != nil {
				if errors.Is(err, domain.ErrMalformedTask) {
					sc.matched.Add(1)
				}

				if !yield(nil, err) {
					return
				}

				continue
			}

			sc.matched.Add(1)

			if task.IsNotified() {
				sc.notified.Add(1)

				slog.Debug("skipping already notified task",
					"task_id", task.ID().String(),
				)

				continue
			}

			if !yield(task, nil) {
				return
			}
		}
	}
}

// Matched is the number of records the store returned so far.
func (sc *DueTaskScan) Matched() int {
	return int(sc.matched.Load())
}

// AlreadyNotified is the number of matched records dropped because they were
// already notified.
func (sc *DueTaskScan) AlreadyNotified() int {
	return int(sc.notified.Load())
}
