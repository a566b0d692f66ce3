package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/lvr-calculator/internal/lvr"
)

func TestLVRService_Calculate(t *testing.T) {
	svc := NewLVRService(nil)

	ratio, err := svc.Calculate(context.Background(), lvr.Input{
		LoanAmount:             lvr.Num(500000),
		CashOutAmount:          lvr.Num(50000),
		EstimatedPropertyValue: lvr.Num(700000),
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.785714, ratio, 0.0001)
}

func TestLVRService_Validate_FailsFast(t *testing.T) {
	svc := NewLVRService(nil)

	err := svc.Validate(context.Background(), lvr.Input{
		LoanAmount:             lvr.Num(100000),
		EstimatedPropertyValue: lvr.Num(0),
		CashOutAmount:          lvr.Num(-1),
	})

	var lvrErr *lvr.Error
	require.ErrorAs(t, err, &lvrErr)
	assert.Equal(t, "estimatedPropertyValue", lvrErr.Field)
	assert.False(t, errors.Is(err, lvr.ErrZeroPropertyValue))
}

func TestLVRService_Calculate_ZeroPhysicalValuation(t *testing.T) {
	svc := NewLVRService(nil)
	in := lvr.Input{
		LoanAmount:                lvr.Num(100000),
		EstimatedPropertyValue:    lvr.Num(200000),
		PropertyValuationPhysical: lvr.Num(0),
	}

	require.NoError(t, svc.Validate(context.Background(), in))

	_, err := svc.Calculate(context.Background(), in)
	assert.True(t, errors.Is(err, lvr.ErrZeroPropertyValue))
}

func TestLVRService_LogsToRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := log.WithContext(context.Background())

	svc := NewLVRService(nil)
	_ = svc.Validate(ctx, lvr.Input{})

	assert.Contains(t, buf.String(), `"field":"loanAmount"`)
	assert.Contains(t, buf.String(), "loan application rejected")
}

func TestLVRService_Example(t *testing.T) {
	svc := NewLVRService(nil)

	ratio, err := svc.Calculate(context.Background(), svc.Example())
	require.NoError(t, err)
	assert.InDelta(t, 250000.0/380000.0, ratio, 1e-12)
}
