// Package router builds the Echo instance: global middleware, the error
// handler and every route.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lvr-calculator/internal/handler"
	"github.com/deppfellow/lvr-calculator/internal/middleware"
	"github.com/deppfellow/lvr-calculator/internal/server"
	"github.com/deppfellow/lvr-calculator/internal/service"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	if s.Config.RateLimit.Enabled {
		api.Use(middlewares.RateLimit.Limit())
	}
	registerLVRRoutes(api, h)

	return router
}

func registerLVRRoutes(api *echo.Group, h *handler.Handlers) {
	api.POST("/lvr", handler.Handle(h.LVR.Handler, h.LVR.CalculateLVR, http.StatusOK, h.LVR.NewRequest))
	api.POST("/validate", handler.Handle(h.LVR.Handler, h.LVR.ValidateLVR, http.StatusOK, h.LVR.NewRequest))
	api.GET("/example", h.LVR.GetExample)
}
