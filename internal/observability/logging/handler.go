package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Level          slog.Level
	// GCloudProjectID enables Cloud Logging trace correlation in gcloud builds.
	GCloudProjectID string
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler enriches every record with request-scoped attributes.
type contextHandler struct {
	slog.Handler
	projectID string
}

func NewHandler(w io.Writer, cfg Config) slog.Handler {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       cfg.Level,
		ReplaceAttr: replaceAttr,
	}).WithAttrs([]slog.Attr{
		slog.Group("service",
			slog.String("name", cfg.ServiceName),
			slog.String("version", cfg.ServiceVersion),
			slog.String("environment", cfg.Environment),
		),
	})

	return &contextHandler{Handler: base, projectID: cfg.GCloudProjectID}
}

// Init installs the context-aware JSON logger as the slog default.
func Init(w io.Writer, cfg Config) *slog.Logger {
	logger := slog.New(NewHandler(w, cfg))
	slog.SetDefault(logger)

	return logger
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}

	if module := ModuleFromContext(ctx); module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}

	r.AddAttrs(traceAttrs(ctx, h.projectID)...)

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), projectID: h.projectID}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), projectID: h.projectID}
}
