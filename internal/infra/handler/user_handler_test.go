package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-task-reminder/internal/infra/handler"
)

func TestDeviceHandlerSuccess(t *testing.T) {
	router := setupAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/users/alice/devices", map[string]string{
		"device_id": "phone",
		"fcm_token": "tok-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/devices", map[string]string{
		"device_id": "laptop",
		"fcm_token": "tok-2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var devices handler.DevicesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &devices))
	assert.Equal(t, "alice", devices.UserID)
	assert.Len(t, devices.Devices, 2)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/users/alice/devices/phone", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/users/alice/devices/phone", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUserHandlerError(t *testing.T) {
	router := setupAPIRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/users/alice", map[string]string{"timezone": "Nowhere/Land"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "timezone", body.Field)

	w = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/devices", map[string]string{"device_id": "phone"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
