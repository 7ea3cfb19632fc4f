package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ReminderMetrics counts the outcome of due-task checks. A nil receiver
// records nothing.
type ReminderMetrics struct {
	runs        metric.Int64Counter
	tasks       metric.Int64Counter
	deliveries  metric.Int64Counter
	runDuration metric.Float64Histogram
}

type RunStats struct {
	Processed         int
	NotificationsSent int
	Failures          int
	Skipped           int
	Errors            int
	Duration          time.Duration
	Failed            bool
}

func NewReminderMetrics(meter metric.Meter) (*ReminderMetrics, error) {
	runs, err := meter.Int64Counter("reminder.runs",
		metric.WithDescription("Due-task checks started"),
	)
	if err != nil {
		return nil, err
	}

	tasks, err := meter.Int64Counter("reminder.tasks",
		metric.WithDescription("Due tasks handled, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter("reminder.deliveries",
		metric.WithDescription("Per-token push deliveries, by result"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram("reminder.run.duration",
		metric.WithDescription("Duration of a due-task check"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		runs:        runs,
		tasks:       tasks,
		deliveries:  deliveries,
		runDuration: runDuration,
	}, nil
}

func (m *ReminderMetrics) RecordRun(ctx context.Context, s RunStats) {
	if m == nil {
		return
	}

	result := "ok"
	if s.Failed {
		result = "error"
	}

	m.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	m.runDuration.Record(ctx, s.Duration.Seconds(), metric.WithAttributes(attribute.String("result", result)))

	m.addTasks(ctx, "processed", s.Processed)
	m.addTasks(ctx, "skipped", s.Skipped)
	m.addTasks(ctx, "error", s.Errors)

	if s.NotificationsSent > 0 {
		m.deliveries.Add(ctx, int64(s.NotificationsSent), metric.WithAttributes(attribute.String("result", "sent")))
	}

	if s.Failures > 0 {
		m.deliveries.Add(ctx, int64(s.Failures), metric.WithAttributes(attribute.String("result", "failed")))
	}
}

func (m *ReminderMetrics) addTasks(ctx context.Context, outcome string, n int) {
	if n == 0 {
		return
	}

	m.tasks.Add(ctx, int64(n), metric.WithAttributes(attribute.String("outcome", outcome)))
}
