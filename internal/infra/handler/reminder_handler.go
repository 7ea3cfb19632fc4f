package handler

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-task-reminder/internal/app"
	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

const TriggerTaskCheckPath = "/api/cron/trigger"

type ReminderHandler struct {
	useCase    app.ReminderUseCase
	cronSecret string
}

// NewReminderHandler requires "Authorization: Bearer <cronSecret>" on the
// trigger route when cronSecret is not empty.
func NewReminderHandler(useCase app.ReminderUseCase, cronSecret string) *ReminderHandler {
	return &ReminderHandler{
		useCase:    useCase,
		cronSecret: cronSecret,
	}
}

func (h *ReminderHandler) TriggerTaskCheck(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.useCase.TriggerTaskCheck(ctx, app.TriggerTaskCheckInput{})
	if err != nil {
		var missing *domain.MissingIndexError
		if errors.As(err, &missing) {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "missing_index",
				Message: missing.Remediation(),
			})

			return
		}

		slog.ErrorContext(ctx, "task check failed",
			"error", err,
		)

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "task_check_failed",
			Message: "failed to check due tasks",
		})

		return
	}

	c.JSON(http.StatusOK, FromTriggerOutput(output))
}

func (h *ReminderHandler) authorize(c *gin.Context) {
	if h.cronSecret == "" {
		c.Next()

		return
	}

	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) != 1 {
		slog.WarnContext(c.Request.Context(), "unauthorized trigger request",
			"remote_addr", c.ClientIP(),
		)

		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "missing or invalid bearer token",
		})

		return
	}

	c.Next()
}

func (h *ReminderHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST(TriggerTaskCheckPath, h.authorize, h.TriggerTaskCheck)
}
