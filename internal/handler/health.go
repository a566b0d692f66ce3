package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lvr-calculator/internal/middleware"
	"github.com/deppfellow/lvr-calculator/internal/server"
)

// DependencyCheckTimeout bounds each dependency ping in Status.
const DependencyCheckTimeout = 5 * time.Second

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status string `json:"status"`
}

// CheckHealth handles GET /health. It answers as long as the process
// serves requests and never looks at dependencies.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Check is the result of one dependency probe.
type Check struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// StatusResponse is the readiness body.
type StatusResponse struct {
	Status      string           `json:"status"`
	Timestamp   time.Time        `json:"timestamp"`
	Environment string           `json:"environment"`
	Checks      map[string]Check `json:"checks"`
}

// Status handles GET /status. It pings Redis when configured and answers
// 503 if the ping fails.
func (h *HealthHandler) Status(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "status_check").
		Logger()

	response := StatusResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]Check),
	}

	if h.server.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), DependencyCheckTimeout)
		defer cancel()

		redisStart := time.Now()

		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			response.Checks["redis"] = Check{
				Status:       "unhealthy",
				ResponseTime: time.Since(redisStart).String(),
				Error:        err.Error(),
			}
			response.Status = "unhealthy"

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis status check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
					"check_type":       "redis",
					"operation":        "status_check",
					"error_type":       "redis_unhealthy",
					"response_time_ms": time.Since(redisStart).Milliseconds(),
					"error_message":    err.Error(),
				})
			}
		} else {
			response.Checks["redis"] = Check{
				Status:       "healthy",
				ResponseTime: time.Since(redisStart).String(),
			}
		}
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("status check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("status check passed")

	return c.JSON(http.StatusOK, response)
}
