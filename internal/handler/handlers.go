package handler

import (
	"github.com/deppfellow/lvr-calculator/internal/server"
	"github.com/deppfellow/lvr-calculator/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	LVR     *LVRHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		LVR:     NewLVRHandler(s, services.LVR),
	}
}
