package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-task-reminder/internal/app"
	"github.com/KasumiMercury/primind-task-reminder/internal/config"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/handler"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/metrics"
)

var Version = "dev"

const meterName = "github.com/KasumiMercury/primind-task-reminder"

func main() {
	os.Exit(run())
}

func run() int {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	if err := cfg.PubSub.Validate(); err != nil {
		slog.Error("invalid pubsub configuration", "error", err)
		return 1
	}

	ctx := context.Background()

	obs, err := observability.Init(ctx, os.Stdout, observability.Config{
		ServiceName:     cfg.Service.Name,
		ServiceVersion:  Version,
		Environment:     cfg.Service.Environment,
		LogLevel:        logging.ParseLevel(cfg.Log.Level),
		GCloudProjectID: cfg.PubSub.GCloudProjectID,
	})
	if err != nil {
		slog.Error("failed to initialize observability", "error", err)
		return 1
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush telemetry", "error", err)
		}
	}()

	db, err := initDatabase(cfg.Database, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		slog.Error("failed to initialize database", "error", err, "driver", cfg.Database.Driver)
		return 1
	}

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			return 1
		}
	}

	dispatcher, err := initDispatcher(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize push dispatcher", "error", err)
		return 1
	}

	publisher, err := initPublisher(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize publisher", "error", err)
		return 1
	}

	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("failed to close publisher", "error", err)
			}
		}()
	}

	meter := otel.Meter(meterName)

	reminderMetrics, err := metrics.NewReminderMetrics(meter)
	if err != nil {
		slog.Error("failed to create reminder metrics", "error", err)
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics(meter)
	if err != nil {
		slog.Error("failed to create http metrics", "error", err)
		return 1
	}

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	reminderUseCase := app.NewReminderUseCase(
		taskRepo,
		userRepo,
		dispatcher,
		publisher,
		app.ReminderConfig{
			LinkBaseURL: cfg.Reminder.LinkBaseURL,
			Concurrency: cfg.Reminder.Concurrency,
		},
		app.WithReminderMetrics(reminderMetrics),
	)
	taskUseCase := app.NewTaskUseCase(taskRepo, userRepo, cfg.Reminder.DefaultTimezone)
	userUseCase := app.NewUserUseCase(userRepo, taskRepo, cfg.Reminder.DefaultTimezone)

	if !strings.HasPrefix(cfg.Reminder.LinkBaseURL, "https://") {
		slog.Warn("APP_BASE_URL is not https, web push notifications are sent without a click-through link",
			"app_base_url", cfg.Reminder.LinkBaseURL,
		)
	}

	if cfg.Reminder.CronSecret == "" {
		slog.Warn("CRON_SECRET not set, trigger endpoint is unauthenticated")
	}

	router := handler.NewRouter(handler.RouterConfig{
		Reminder:    handler.NewReminderHandler(reminderUseCase, cfg.Reminder.CronSecret),
		Task:        handler.NewTaskHandler(taskUseCase),
		User:        handler.NewUserHandler(userUseCase),
		HTTPMetrics: httpMetrics,
	})

	var sched *scheduler.Scheduler

	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(reminderUseCase, scheduler.Config{Spec: cfg.Scheduler.Spec})
		if err != nil {
			slog.Error("failed to create scheduler", "error", err, "spec", cfg.Scheduler.Spec)
			return 1
		}

		sched.Start()
		slog.Info("scheduler started", "spec", cfg.Scheduler.Spec)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		slog.Info("starting server",
			"address", cfg.Server.Address(),
			"version", Version,
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("failed to start server", "error", err)

		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			slog.Warn("scheduler did not stop cleanly", "error", err)
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)

		return 1
	}

	slog.Info("server exited properly")

	return exitCode
}

func initDatabase(cfg config.DatabaseConfig, level slog.Level) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormLogger(200*time.Millisecond, level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}
