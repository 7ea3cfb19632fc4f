package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-task-reminder/internal/app"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/logging"
)

// DefaultSpec fires at second zero of every minute.
const DefaultSpec = "0 * * * * *"

type Config struct {
	// Spec is a cron expression with a leading seconds field.
	Spec string
}

// Scheduler calls TriggerTaskCheck on a cron schedule. Overlapping runs are
// skipped; a run is never cut short, so a slow run only delays the next one.
type Scheduler struct {
	cron    *cron.Cron
	useCase app.ReminderUseCase
}

func New(useCase app.ReminderUseCase, cfg Config) (*Scheduler, error) {
	spec := cfg.Spec
	if spec == "" {
		spec = DefaultSpec
	}

	logger := cronLogger{}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.SkipIfStillRunning(logger), cron.Recover(logger)),
	)

	s := &Scheduler{
		cron:    c,
		useCase: useCase,
	}

	if _, err := c.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid scheduler spec %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	slog.Info("reminder scheduler started")
	s.cron.Start()
}

// Stop prevents new runs and waits for a running check to finish or ctx to
// expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		slog.Info("reminder scheduler stopped")

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run() {
	ctx := logging.WithModule(context.Background(), logging.ModuleScheduler)
	ctx = logging.WithRequestID(ctx, logging.NewRequestID())

	out, err := s.useCase.TriggerTaskCheck(ctx, app.TriggerTaskCheckInput{})
	if err != nil {
		slog.ErrorContext(ctx, "scheduled task check failed",
			"event", "job.fail",
			"error", err,
		)

		return
	}

	slog.DebugContext(ctx, "scheduled task check finished",
		"event", "job.finish",
		"processed", out.Processed,
		"notifications_sent", out.NotificationsSent,
	)
}

// cronLogger adapts cron's logr-style logger to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug(msg, append([]any{"module", string(logging.ModuleScheduler)}, keysAndValues...)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(msg, append([]any{"module", string(logging.ModuleScheduler), "error", err}, keysAndValues...)...)
}
