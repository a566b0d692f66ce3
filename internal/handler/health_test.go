package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/lvr-calculator/internal/config"
	"github.com/deppfellow/lvr-calculator/internal/server"
)

func newHealthHandler(redisClient *redis.Client) *HealthHandler {
	logger := zerolog.Nop()
	return NewHealthHandler(&server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Logger: &logger,
		Redis:  redisClient,
	})
}

func TestCheckHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, newHealthHandler(nil).CheckHealth(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestCheckHealth_IgnoresDependencies(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, newHealthHandler(client).CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatus_RedisDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

	require.NoError(t, newHealthHandler(client).Status(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "test", body.Environment)
	assert.Equal(t, "unhealthy", body.Checks["redis"].Status)
	assert.NotEmpty(t, body.Checks["redis"].Error)
}
