package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lvr-calculator/internal/handler"
	"github.com/deppfellow/lvr-calculator/static"
)

// registerSystemRoutes registers the endpoints outside the API: liveness,
// readiness and documentation.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/health", h.Health.CheckHealth)
	r.GET("/status", h.Health.Status)

	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
