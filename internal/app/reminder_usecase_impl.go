package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/push"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/metrics"
)

const (
	defaultReminderConcurrency = 8
	tracerName                 = "github.com/KasumiMercury/primind-task-reminder/internal/app"
)

type ReminderConfig struct {
	// LinkBaseURL is the web client origin used for click-through links.
	LinkBaseURL string
	// Concurrency bounds how many tasks are dispatched at once.
	Concurrency int
}

type ReminderOption func(*reminderUseCaseImpl)

func WithReminderMetrics(m *metrics.ReminderMetrics) ReminderOption {
	return func(uc *reminderUseCaseImpl) {
		uc.metrics = m
	}
}

func WithClock(now func() time.Time) ReminderOption {
	return func(uc *reminderUseCaseImpl) {
		uc.now = now
	}
}

type reminderUseCaseImpl struct {
	scanner    *DueTaskScanner
	tasks      domain.TaskRepository
	devices    domain.DeviceRegistry
	dispatcher push.Dispatcher
	publisher  pubsub.Publisher
	metrics    *metrics.ReminderMetrics
	tracer     trace.Tracer
	cfg        ReminderConfig
	now        func() time.Time
	inflight   singleflight.Group
}

func NewReminderUseCase(
	tasks domain.TaskRepository,
	devices domain.DeviceRegistry,
	dispatcher push.Dispatcher,
	publisher pubsub.Publisher,
	cfg ReminderConfig,
	opts ...ReminderOption,
) ReminderUseCase {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultReminderConcurrency
	}

	if publisher == nil {
		publisher = pubsub.NopPublisher{}
	}

	uc := &reminderUseCaseImpl{
		scanner:    NewDueTaskScanner(tasks),
		tasks:      tasks,
		devices:    devices,
		dispatcher: dispatcher,
		publisher:  publisher,
		tracer:     otel.Tracer(tracerName),
		cfg:        cfg,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

type taskOutcome struct {
	sent    int
	failed  int
	skipped bool
	errored bool
}

func (o *TriggerTaskCheckOutput) add(r taskOutcome) {
	o.NotificationsSent += r.sent
	o.Failures += r.failed

	if r.skipped {
		o.Skipped++
	}

	if r.errored {
		o.Errors++
	}
}

func (uc *reminderUseCaseImpl) TriggerTaskCheck(ctx context.Context, input TriggerTaskCheckInput) (TriggerTaskCheckOutput, error) {
	started := time.Now()

	at := input.At
	if at.IsZero() {
		at = uc.now()
	}

	ctx, span := uc.tracer.Start(ctx, "reminder.trigger_task_check")
	defer span.End()

	slog.DebugContext(ctx, "starting due task check",
		"reference", at,
	)

	// the scan and the per-task work outlive a cancelled caller
	workCtx := context.WithoutCancel(ctx)

	scan, err := uc.scanner.Scan(workCtx, at)
	if err != nil {
		return uc.failRun(ctx, span, started, TriggerTaskCheckOutput{}, err)
	}

	window := scan.Window()
	output := TriggerTaskCheckOutput{
		WindowStart: window.Start(),
		WindowEnd:   window.End(),
	}

	span.SetAttributes(
		attribute.Int64("reminder.window_start_ms", window.StartMillis()),
		attribute.Int64("reminder.window_end_ms", window.EndMillis()),
	)

	var (
		mu      sync.Mutex
		g       errgroup.Group
		scanErr error
	)

	g.SetLimit(uc.cfg.Concurrency)

	for task, err := range scan.Tasks() {
		if errors.Is(err, domain.ErrMalformedTask) {
			slog.ErrorContext(ctx, "skipping unreadable due task",
				"error", err,
			)

			mu.Lock()
			output.Errors++
			mu.Unlock()

			continue
		}

		if err != nil {
			scanErr = err

			break
		}

		g.Go(func() error {
			r := uc.handleTask(workCtx, task)

			mu.Lock()
			output.add(r)
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	output.Processed = scan.Matched()
	output.Skipped += scan.AlreadyNotified()

	if scanErr != nil {
		return uc.failRun(ctx, span, started, output, scanErr)
	}

	span.SetAttributes(
		attribute.Int("reminder.processed", output.Processed),
		attribute.Int("reminder.notifications_sent", output.NotificationsSent),
		attribute.Int("reminder.failures", output.Failures),
	)

	uc.metrics.RecordRun(ctx, metrics.RunStats{
		Processed:         output.Processed,
		NotificationsSent: output.NotificationsSent,
		Failures:          output.Failures,
		Skipped:           output.Skipped,
		Errors:            output.Errors,
		Duration:          time.Since(started),
	})

	slog.InfoContext(ctx, "due task check completed",
		"window_start", output.WindowStart,
		"window_end", output.WindowEnd,
		"processed", output.Processed,
		"notifications_sent", output.NotificationsSent,
		"failures", output.Failures,
		"skipped", output.Skipped,
		"errors", output.Errors,
	)

	return output, nil
}

func (uc *reminderUseCaseImpl) failRun(
	ctx context.Context,
	span trace.Span,
	started time.Time,
	output TriggerTaskCheckOutput,
	err error,
) (TriggerTaskCheckOutput, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	uc.metrics.RecordRun(ctx, metrics.RunStats{
		Processed:         output.Processed,
		NotificationsSent: output.NotificationsSent,
		Failures:          output.Failures,
		Skipped:           output.Skipped,
		Errors:            output.Errors,
		Duration:          time.Since(started),
		Failed:            true,
	})

	var missing *domain.MissingIndexError
	if errors.As(err, &missing) {
		slog.ErrorContext(ctx, "due task scan requires a composite index",
			"index", missing.Index,
			"table", missing.Table,
			"fields", missing.Fields,
			"remediation", missing.Remediation(),
		)
	} else {
		slog.ErrorContext(ctx, "due task scan failed",
			"error", err,
			"processed", output.Processed,
		)
	}

	return output, fmt.Errorf("%w: %w", ErrInternalError, err)
}

// handleTask collapses concurrent processing of the same task inside this
// process; only the caller that runs the work reports its outcome.
func (uc *reminderUseCaseImpl) handleTask(ctx context.Context, task *domain.Task) taskOutcome {
	leader := false

	v, _, _ := uc.inflight.Do(task.ID().String(), func() (any, error) {
		leader = true

		return uc.processTask(ctx, task), nil
	})

	if !leader {
		slog.DebugContext(ctx, "task already being processed in this process",
			"task_id", task.ID().String(),
		)

		return taskOutcome{skipped: true}
	}

	r, _ := v.(taskOutcome)

	return r
}

func (uc *reminderUseCaseImpl) processTask(ctx context.Context, task *domain.Task) (outcome taskOutcome) {
	taskID := task.ID().String()
	userID := task.UserID().String()

	ctx, span := uc.tracer.Start(ctx, "reminder.process_task", trace.WithAttributes(
		attribute.String("task.id", taskID),
		attribute.String("user.id", userID),
	))
	defer span.End()

	claimed := false

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "panic while processing due task",
				"task_id", taskID,
				"user_id", userID,
				"panic", rec,
			)
			span.SetStatus(codes.Error, fmt.Sprint(rec))

			if claimed {
				uc.release(ctx, task)
			}

			outcome = taskOutcome{errored: true}
		}
	}()

	devices, err := uc.devices.DevicesForUser(ctx, task.UserID())
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve device tokens",
			"task_id", taskID,
			"user_id", userID,
			"error", err,
		)
		span.RecordError(err)

		return taskOutcome{errored: true}
	}

	tokens := devices.Tokens()
	if len(tokens) == 0 {
		slog.WarnContext(ctx, "no device tokens, task left unnotified",
			"task_id", taskID,
			"user_id", userID,
		)

		return taskOutcome{skipped: true}
	}

	claimed, err = uc.tasks.ClaimNotification(ctx, task.ID())
	if err != nil {
		slog.ErrorContext(ctx, "failed to claim task for notification",
			"task_id", taskID,
			"error", err,
		)
		span.RecordError(err)

		return taskOutcome{errored: true}
	}

	if !claimed {
		slog.InfoContext(ctx, "task already claimed by another run",
			"task_id", taskID,
		)

		return taskOutcome{skipped: true}
	}

	notification := domain.NewDueTaskNotification(task, uc.cfg.LinkBaseURL)

	result, err := uc.dispatcher.Dispatch(ctx, tokens, notification)
	if err != nil {
		uc.release(ctx, task)

		slog.WarnContext(ctx, "push dispatch failed, task left unnotified",
			"task_id", taskID,
			"user_id", userID,
			"token_count", len(tokens),
			"error", err,
		)
		span.RecordError(err)

		return taskOutcome{failed: len(tokens)}
	}

	uc.pruneUnregistered(ctx, task.UserID(), result.UnregisteredTokens())

	span.SetAttributes(
		attribute.Int("push.success_count", result.SuccessCount),
		attribute.Int("push.failure_count", result.FailureCount),
	)

	if result.SuccessCount == 0 {
		uc.release(ctx, task)

		slog.WarnContext(ctx, "every delivery failed, task left unnotified",
			"task_id", taskID,
			"user_id", userID,
			"failure_count", result.FailureCount,
		)

		return taskOutcome{failed: result.FailureCount}
	}

	uc.publishReminded(ctx, task, result)

	slog.InfoContext(ctx, "task reminder delivered",
		"task_id", taskID,
		"user_id", userID,
		"success_count", result.SuccessCount,
		"failure_count", result.FailureCount,
	)

	return taskOutcome{sent: result.SuccessCount, failed: result.FailureCount}
}

func (uc *reminderUseCaseImpl) release(ctx context.Context, task *domain.Task) {
	released, err := uc.tasks.ReleaseNotification(ctx, task.ID())
	if err != nil {
		slog.ErrorContext(ctx, "failed to release notification claim",
			"task_id", task.ID().String(),
			"error", err,
		)

		return
	}

	if !released {
		slog.WarnContext(ctx, "notification claim was already released",
			"task_id", task.ID().String(),
		)
	}
}

func (uc *reminderUseCaseImpl) pruneUnregistered(ctx context.Context, userID domain.UserID, tokens []string) {
	if len(tokens) == 0 {
		return
	}

	removed, err := uc.devices.RemoveTokens(ctx, userID, tokens)
	if err != nil {
		slog.ErrorContext(ctx, "failed to prune unregistered tokens",
			"user_id", userID.String(),
			"token_count", len(tokens),
			"error", err,
		)

		return
	}

	slog.InfoContext(ctx, "pruned unregistered tokens",
		"user_id", userID.String(),
		"removed", removed,
	)
}

func (uc *reminderUseCaseImpl) publishReminded(ctx context.Context, task *domain.Task, result push.DispatchResult) {
	remindAt, _ := task.NextRemindAt()

	event := pubsub.TaskRemindedEvent{
		TaskID:       task.ID().String(),
		UserID:       task.UserID().String(),
		Priority:     string(task.Priority()),
		NextRemindAt: remindAt,
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
		RemindedAt:   uc.now().UTC(),
	}

	if err := uc.publisher.PublishTaskReminded(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish task reminded event",
			"task_id", event.TaskID,
			"error", err,
		)
	}
}
