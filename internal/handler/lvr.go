package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lvr-calculator/internal/errs"
	"github.com/deppfellow/lvr-calculator/internal/lvr"
	"github.com/deppfellow/lvr-calculator/internal/server"
	"github.com/deppfellow/lvr-calculator/internal/service"
)

// LVRHandler serves the calculator endpoints.
type LVRHandler struct {
	Handler
	lvrService *service.LVRService
}

func NewLVRHandler(s *server.Server, lvrService *service.LVRService) *LVRHandler {
	return &LVRHandler{
		Handler:    NewHandler(s),
		lvrService: lvrService,
	}
}

// LVRRequest is the body of POST /api/lvr and POST /api/validate.
// Validation goes through the service, which logs every rejection with
// the request logger.
type LVRRequest struct {
	lvr.Input

	ctx     context.Context
	service *service.LVRService
}

func (r *LVRRequest) Validate() error {
	return r.service.Validate(r.ctx, r.Input)
}

// NewRequest allocates an empty payload bound to the current request.
func (h *LVRHandler) NewRequest(c echo.Context) *LVRRequest {
	return &LVRRequest{
		ctx:     c.Request().Context(),
		service: h.lvrService,
	}
}

// CalculateLVR handles POST /api/lvr. The input is already validated, so
// only the calculation itself can still reject it.
func (h *LVRHandler) CalculateLVR(c echo.Context, req *LVRRequest) (*lvr.Result, error) {
	ratio, err := h.lvrService.Calculate(c.Request().Context(), req.Input)
	if err != nil {
		return nil, errs.ValidationError(err)
	}

	return &lvr.Result{LVR: ratio}, nil
}

// ValidateLVR handles POST /api/validate. The pipeline has already
// validated the body by the time it runs.
func (h *LVRHandler) ValidateLVR(c echo.Context, req *LVRRequest) (*lvr.ValidResult, error) {
	return &lvr.ValidResult{Valid: true}, nil
}

// GetExample handles GET /api/example.
func (h *LVRHandler) GetExample(c echo.Context) error {
	return c.JSON(http.StatusOK, h.lvrService.Example())
}
