package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-task-reminder/internal/app"
)

type UserHandler struct {
	useCase app.UserUseCase
}

func NewUserHandler(useCase app.UserUseCase) *UserHandler {
	return &UserHandler{
		useCase: useCase,
	}
}

func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)

		return
	}

	output, err := h.useCase.UpsertUser(c.Request.Context(), app.UpsertUserInput{
		UserID:   c.Param("id"),
		Timezone: req.Timezone,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromUserOutput(output))
}

func (h *UserHandler) RegisterDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)

		return
	}

	output, err := h.useCase.RegisterDevice(c.Request.Context(), app.RegisterDeviceInput{
		UserID:   c.Param("id"),
		DeviceID: req.DeviceID,
		FCMToken: req.FCMToken,
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDevicesOutput(output))
}

func (h *UserHandler) UnregisterDevice(c *gin.Context) {
	err := h.useCase.UnregisterDevice(c.Request.Context(), app.UnregisterDeviceInput{
		UserID:   c.Param("id"),
		DeviceID: c.Param("deviceId"),
	})
	if err != nil {
		handleError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.PUT("/:id", h.UpsertUser)
		users.POST("/:id/devices", h.RegisterDevice)
		users.DELETE("/:id/devices/:deviceId", h.UnregisterDevice)
	}
}
