package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/KasumiMercury/primind-task-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/tracing"
)

type Config struct {
	ServiceName     string
	ServiceVersion  string
	Environment     string
	LogLevel        slog.Level
	GCloudProjectID string
}

type Resources struct {
	Logger  *slog.Logger
	tracer  *tracing.Provider
	metrics *metrics.Provider
}

// Init installs the default logger and the global tracer, meter and
// propagator.
func Init(ctx context.Context, w io.Writer, cfg Config) (*Resources, error) {
	logger := logging.Init(w, logging.Config{
		ServiceName:     cfg.ServiceName,
		ServiceVersion:  cfg.ServiceVersion,
		Environment:     cfg.Environment,
		Level:           cfg.LogLevel,
		GCloudProjectID: cfg.GCloudProjectID,
	})

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	mp, err := metrics.NewProvider(ctx, metrics.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)

		return nil, fmt.Errorf("failed to create meter provider: %w", err)
	}

	otel.SetTracerProvider(tp.TracerProvider())
	otel.SetMeterProvider(mp.MeterProvider())
	otel.SetTextMapPropagator(tracing.NewPropagator())

	return &Resources{
		Logger:  logger,
		tracer:  tp,
		metrics: mp,
	}, nil
}

// Shutdown flushes pending spans and metrics.
func (r *Resources) Shutdown(ctx context.Context) error {
	return errors.Join(
		r.tracer.Shutdown(ctx),
		r.metrics.Shutdown(ctx),
	)
}
