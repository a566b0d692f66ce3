package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/deppfellow/lvr-calculator/internal/lvr"
	"github.com/deppfellow/lvr-calculator/internal/server"
)

// LVRService validates loan applications and computes their LVR.
// It holds no per-request state and is safe for concurrent use.
type LVRService struct {
	server *server.Server
}

func NewLVRService(s *server.Server) *LVRService {
	return &LVRService{server: s}
}

// Validate runs the validation rules against in.
func (s *LVRService) Validate(ctx context.Context, in lvr.Input) error {
	if err := lvr.Validate(in); err != nil {
		s.logRejection(ctx, err)
		return err
	}
	return nil
}

// Calculate returns the LVR of an input that already passed Validate.
// A physical valuation of zero passes validation and is rejected here.
func (s *LVRService) Calculate(ctx context.Context, in lvr.Input) (float64, error) {
	ratio, err := lvr.Calculate(in)
	if err != nil {
		s.logRejection(ctx, err)
		return 0, err
	}

	propertyValue, source := lvr.PropertyValue(in)
	s.logger(ctx).Debug().
		Float64("loan_amount", in.LoanAmount.Value).
		Float64("property_value", propertyValue).
		Str("property_value_source", source).
		Float64("lvr", ratio).
		Msg("lvr calculated")

	return ratio, nil
}

// Example returns the sample application.
func (s *LVRService) Example() lvr.Input {
	return lvr.Example()
}

func (s *LVRService) logRejection(ctx context.Context, err error) {
	event := s.logger(ctx).Debug().Err(err)

	var lvrErr *lvr.Error
	if errors.As(err, &lvrErr) {
		event = event.Str("field", lvrErr.Field).Str("kind", string(lvrErr.Kind))
	}

	event.Msg("loan application rejected")
}

// logger prefers the request-scoped logger stored in ctx by the
// ContextEnhancer middleware.
func (s *LVRService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	if s.server != nil && s.server.Logger != nil {
		return s.server.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
