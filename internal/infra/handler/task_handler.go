package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-task-reminder/internal/app"
)

type TaskHandler struct {
	useCase app.TaskUseCase
}

func NewTaskHandler(useCase app.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		useCase: useCase,
	}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)

		return
	}

	output, err := h.useCase.CreateTask(c.Request.Context(), app.CreateTaskInput{
		UserID:   req.UserID,
		Title:    req.Title,
		Priority: req.Priority,
		DueDate:  req.DueDate,
		DueTime:  req.DueTime,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	slog.InfoContext(c.Request.Context(), "task created successfully",
		"task_id", output.ID,
	)
	c.JSON(http.StatusCreated, FromTaskOutput(output))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	output, err := h.useCase.GetTask(c.Request.Context(), app.GetTaskInput{ID: c.Param("id")})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromTaskOutput(output))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)

		return
	}

	output, err := h.useCase.UpdateTask(c.Request.Context(), app.UpdateTaskInput{
		ID:       c.Param("id"),
		Title:    req.Title,
		Status:   req.Status,
		Priority: req.Priority,
		DueDate:  req.DueDate,
		DueTime:  req.DueTime,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromTaskOutput(output))
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PATCH("/:id", h.UpdateTask)
	}
}
