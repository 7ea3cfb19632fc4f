package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KasumiMercury/primind-task-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/tracing"
)

type GinConfig struct {
	SkipPaths []string
	Module    logging.Module
	// ModuleResolver overrides Module per request.
	ModuleResolver func(*gin.Context) logging.Module
	// JobPaths are routes logged as jobs (start and finish) instead of
	// plain requests.
	JobPaths    map[string]string
	TracerName  string
	HTTPMetrics *metrics.HTTPMetrics
}

func Gin(cfg GinConfig) gin.HandlerFunc {
	skipSet := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skipSet[p] = struct{}{}
	}

	tracer := otel.Tracer(cfg.TracerName)

	return func(c *gin.Context) {
		if _, skip := skipSet[c.Request.URL.Path]; skip {
			c.Next()

			return
		}

		start := time.Now()

		requestID := logging.ValidateAndExtractRequestID(c.Request.Header.Get("x-request-id"))
		ctx := logging.WithRequestID(c.Request.Context(), requestID)

		module := cfg.Module
		if cfg.ModuleResolver != nil {
			module = cfg.ModuleResolver(c)
		}

		if module != "" {
			ctx = logging.WithModule(ctx, module)
		}

		ctx = tracing.ExtractFromHTTPRequest(ctx, c.Request)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", c.Request.Method, route))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Header("x-request-id", requestID)

		jobName, isJob := cfg.JobPaths[route]
		if isJob {
			slog.LogAttrs(ctx, slog.LevelInfo, "job started",
				slog.String("event", "job.start"),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("remote_addr", c.ClientIP()),
				slog.String("job.name", jobName),
				slog.String("job.id", requestID),
			)
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
		}

		cfg.HTTPMetrics.Record(ctx, c.Request.Method, route, status, duration)

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("remote_addr", c.ClientIP()),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		}

		if isJob {
			attrs = append(attrs,
				slog.String("event", "job.finish"),
				slog.String("job.name", jobName),
				slog.String("job.id", requestID),
			)
			slog.LogAttrs(ctx, slog.LevelInfo, "job finished", attrs...)

			return
		}

		attrs = append(attrs, slog.String("event", "http.request.finish"))
		slog.LogAttrs(ctx, slog.LevelInfo, "request completed", attrs...)
	}
}
