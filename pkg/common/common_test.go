package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewBadRequestError("invalid image", cause)

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "invalid image: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "no cause", NewNotFoundError("no cause", nil).Error())
	assert.Equal(t, http.StatusServiceUnavailable, NewServiceUnavailableError("x").Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, NewPayloadTooLargeError("x").Code)
}

func TestSuccessResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessResponse(c, gin.H{"score": 80.75})

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 80.75, data["score"])
	assert.Nil(t, response["error"])
}

func TestAppErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	AppErrorResponse(c, NewBadRequestError("no image provided", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseResponse(t, w)
	assert.False(t, response["success"].(bool))
	errorInfo := response["error"].(map[string]interface{})
	assert.Equal(t, float64(http.StatusBadRequest), errorInfo["code"])
	assert.Equal(t, "no image provided", errorInfo["message"])
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"app error", NewServiceUnavailableError("not configured"), http.StatusServiceUnavailable, "not configured"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleServiceError(c, tt.err, "request failed")

			assert.Equal(t, tt.wantCode, w.Code)
			errorInfo := parseResponse(t, w)["error"].(map[string]interface{})
			assert.Equal(t, tt.wantMsg, errorInfo["message"])
		})
	}
}

func TestHealthCheckWithDeps(t *testing.T) {
	info := HealthInfo{
		Service:  "kyc-api",
		Version:  "1.0.0",
		Services: map[string]string{"trustScoring": "Online"},
		Modes: map[string]ComponentMode{
			"rekognition": {Mode: "fallback", Status: "fallback_ready", Region: "us-east-1"},
		},
	}

	router := gin.New()
	router.GET("/ok", HealthCheckWithDeps(info, map[string]func() error{
		"redis": func() error { return nil },
	}))
	router.GET("/bad", HealthCheckWithDeps(info, map[string]func() error{
		"redis": func() error { return errors.New("connection refused") },
	}))
	router.GET("/plain", HealthCheck(info))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	assert.Equal(t, HealthOK, response["status"])
	assert.NotEmpty(t, response["timestamp"])
	modes := response["modes"].(map[string]interface{})
	rekognition := modes["rekognition"].(map[string]interface{})
	assert.Equal(t, "fallback", rekognition["mode"])
	assert.Equal(t, "us-east-1", rekognition["region"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	response = parseResponse(t, w)
	assert.Equal(t, HealthUnhealthy, response["status"])
	checks := response["checks"].(map[string]interface{})
	assert.Equal(t, "unhealthy: connection refused", checks["redis"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, parseResponse(t, w)["checks"])
}
