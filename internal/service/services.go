package service

import (
	"github.com/deppfellow/lvr-calculator/internal/server"
)

// Services groups every service so router setup can pass one value around.
type Services struct {
	LVR *LVRService
}

// NewServices constructs the service container.
func NewServices(s *server.Server) *Services {
	return &Services{
		LVR: NewLVRService(s),
	}
}
