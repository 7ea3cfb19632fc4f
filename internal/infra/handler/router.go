package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-task-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-task-reminder/internal/observability/middleware"
)

type RouterConfig struct {
	Reminder    *ReminderHandler
	Task        *TaskHandler
	User        *UserHandler
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.PanicRecoveryGin(),
		middleware.Gin(middleware.GinConfig{
			SkipPaths:      []string{"/ping"},
			ModuleResolver: moduleForRequest,
			JobPaths:       map[string]string{TriggerTaskCheckPath: "due-task-check"},
			TracerName:     "github.com/KasumiMercury/primind-task-reminder/internal/infra/handler",
			HTTPMetrics:    cfg.HTTPMetrics,
		}),
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if cfg.Reminder != nil {
		cfg.Reminder.RegisterRoutes(router)
	}

	v1 := router.Group("/api/v1")

	if cfg.Task != nil {
		cfg.Task.RegisterRoutes(v1)
	}

	if cfg.User != nil {
		cfg.User.RegisterRoutes(v1)
	}

	return router
}

func moduleForRequest(c *gin.Context) logging.Module {
	path := c.Request.URL.Path

	switch {
	case strings.HasPrefix(path, "/api/cron/"):
		return logging.ModuleReminder
	case strings.HasPrefix(path, "/api/v1/tasks"):
		return logging.ModuleTask
	case strings.HasPrefix(path, "/api/v1/users"):
		return logging.ModuleUser
	default:
		return ""
	}
}
