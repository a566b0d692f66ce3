// Package lvr holds the Loan-to-Value Ratio core.
//
// It validates the applicant-submitted numbers against the business
// ranges and computes the ratio of the borrowed amount to the property
// value. Everything here is a pure function of its input.
package lvr

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

const (
	MinLoanAmount = 80_000
	MaxLoanAmount = 2_000_000

	MinEstimatedPropertyValue = 100_000
	MaxEstimatedPropertyValue = 2_500_000

	// MaxCashOutRatio caps cashOutAmount relative to estimatedPropertyValue.
	MaxCashOutRatio = 0.5
)

// Number is a loosely typed JSON field.
//
// The request body is applicant input, so a field may be missing,
// null, a string or a number. Number remembers which one it got so the
// validator can tell "absent" apart from "present but not a number".
type Number struct {
	Value   float64
	Present bool
	Numeric bool

	// raw is the original text of a present, non-numeric, non-null value.
	raw json.RawMessage
}

// Num returns a present numeric field.
func Num(v float64) Number {
	return Number{Value: v, Present: true, Numeric: true}
}

// UnmarshalJSON records presence for any JSON value, including null.
// Numbers beyond the float64 range decode to an infinity so the range
// check rejects them.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{Present: true}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return err
		}

		v, parseErr := strconv.ParseFloat(string(data), 64)
		if !math.IsInf(v, 0) {
			if parseErr != nil {
				return parseErr
			}
			return err
		}

		n.Value = v
		n.Numeric = true
		return nil
	}

	if v, ok := raw.(float64); ok {
		n.Value = v
		n.Numeric = true
		return nil
	}

	n.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the value back out as it was received. A present
// null stays null.
func (n Number) MarshalJSON() ([]byte, error) {
	switch {
	case n.Numeric && math.IsInf(n.Value, 1):
		return []byte("1e400"), nil
	case n.Numeric && math.IsInf(n.Value, -1):
		return []byte("-1e400"), nil
	case n.Numeric:
		return json.Marshal(n.Value)
	case n.raw != nil:
		return n.raw, nil
	default:
		return []byte("null"), nil
	}
}

// IsZero reports an absent field, which omitzero leaves out of the
// encoded object.
func (n Number) IsZero() bool {
	return !n.Present
}

// Input is a single loan application as received from the form.
type Input struct {
	LoanAmount                Number `json:"loanAmount,omitzero"`
	CashOutAmount             Number `json:"cashOutAmount,omitzero"`
	EstimatedPropertyValue    Number `json:"estimatedPropertyValue,omitzero"`
	PropertyValuationPhysical Number `json:"propertyValuationPhysical,omitzero"`
}

// Result is the response body of a successful calculation.
type Result struct {
	LVR float64 `json:"lvr"`
}

// ValidResult is the response body of a successful validation.
type ValidResult struct {
	Valid bool `json:"valid"`
}

// Example returns the static sample application served by the API.
func Example() Input {
	return Input{
		LoanAmount:                Num(200_000),
		CashOutAmount:             Num(50_000),
		EstimatedPropertyValue:    Num(400_000),
		PropertyValuationPhysical: Num(380_000),
	}
}
