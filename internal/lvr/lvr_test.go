package lvr

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) Input {
	t.Helper()

	var in Input
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	in := decode(t, `{"loanAmount": 500000, "cashOutAmount": null, "estimatedPropertyValue": "700000"}`)

	assert.Equal(t, Num(500000), in.LoanAmount)
	assert.Equal(t, Number{Present: true}, in.CashOutAmount)
	assert.Equal(t, Number{Present: true, raw: json.RawMessage(`"700000"`)}, in.EstimatedPropertyValue)
	assert.Equal(t, Number{}, in.PropertyValuationPhysical)
}

func TestNumber_UnmarshalJSON_Overflow(t *testing.T) {
	in := decode(t, `{"loanAmount": 1e400, "estimatedPropertyValue": -1e400}`)

	assert.True(t, in.LoanAmount.Numeric)
	assert.True(t, math.IsInf(in.LoanAmount.Value, 1))
	assert.True(t, in.EstimatedPropertyValue.Numeric)
	assert.True(t, math.IsInf(in.EstimatedPropertyValue.Value, -1))

	var lvrErr *Error
	require.ErrorAs(t, Validate(in), &lvrErr)
	assert.Equal(t, "loanAmount", lvrErr.Field)
	assert.Equal(t, KindOutOfRange, lvrErr.Kind)
}

func TestNumber_MarshalJSON_Overflow(t *testing.T) {
	in := decode(t, `{"loanAmount": 1e400, "estimatedPropertyValue": -1e400}`)

	body, err := json.Marshal(in)
	require.NoError(t, err)

	assert.Equal(t, `{"loanAmount":1e400,"estimatedPropertyValue":-1e400}`, string(body))
	assert.Equal(t, in, decode(t, string(body)))
}

func TestNumber_UnmarshalJSON_Malformed(t *testing.T) {
	var n Number
	assert.Error(t, n.UnmarshalJSON([]byte(`{"a":`)))
}

func TestInput_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{
			name: "optional fields omitted",
			in:   Input{LoanAmount: Num(80000), EstimatedPropertyValue: Num(100000)},
			want: `{"loanAmount": 80000, "estimatedPropertyValue": 100000}`,
		},
		{
			name: "empty input",
			in:   Input{},
			want: `{}`,
		},
		{
			name: "zero is kept",
			in:   Input{LoanAmount: Num(80000), CashOutAmount: Num(0), EstimatedPropertyValue: Num(100000)},
			want: `{"loanAmount": 80000, "cashOutAmount": 0, "estimatedPropertyValue": 100000}`,
		},
		{
			name: "received values are written back unchanged",
			in:   decode(t, `{"loanAmount": "700000", "cashOutAmount": null, "estimatedPropertyValue": true}`),
			want: `{"loanAmount": "700000", "cashOutAmount": null, "estimatedPropertyValue": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.in)
			require.NoError(t, err)

			assert.JSONEq(t, tt.want, string(body))
			assert.Equal(t, tt.in, decode(t, string(body)))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		kind  Kind
	}{
		{
			name: "all fields valid",
			body: `{"loanAmount": 100000, "cashOutAmount": 10000, "estimatedPropertyValue": 200000, "propertyValuationPhysical": 210000}`,
		},
		{
			name: "optional fields missing",
			body: `{"loanAmount": 100000, "estimatedPropertyValue": 200000}`,
		},
		{
			name: "lower bounds",
			body: `{"loanAmount": 80000, "cashOutAmount": 0, "estimatedPropertyValue": 100000}`,
		},
		{
			name: "upper bounds",
			body: `{"loanAmount": 2000000, "cashOutAmount": 1250000, "estimatedPropertyValue": 2500000}`,
		},
		{
			name: "physical valuation of zero passes validation",
			body: `{"loanAmount": 100000, "estimatedPropertyValue": 200000, "propertyValuationPhysical": 0}`,
		},
		{
			name:  "loanAmount below minimum",
			body:  `{"loanAmount": 1000, "cashOutAmount": 0, "estimatedPropertyValue": 700000}`,
			field: "loanAmount",
			kind:  KindOutOfRange,
		},
		{
			name:  "loanAmount above maximum",
			body:  `{"loanAmount": 2000001, "estimatedPropertyValue": 700000}`,
			field: "loanAmount",
			kind:  KindOutOfRange,
		},
		{
			name:  "loanAmount is a string",
			body:  `{"loanAmount": "notanumber", "cashOutAmount": 0, "estimatedPropertyValue": 200000}`,
			field: "loanAmount",
			kind:  KindInvalidType,
		},
		{
			name:  "loanAmount missing",
			body:  `{"estimatedPropertyValue": 200000}`,
			field: "loanAmount",
			kind:  KindInvalidType,
		},
		{
			name:  "estimatedPropertyValue missing",
			body:  `{"loanAmount": 100000, "cashOutAmount": 0}`,
			field: "estimatedPropertyValue",
			kind:  KindInvalidType,
		},
		{
			name:  "estimatedPropertyValue zero",
			body:  `{"loanAmount": 100000, "cashOutAmount": 0, "estimatedPropertyValue": 0}`,
			field: "estimatedPropertyValue",
			kind:  KindOutOfRange,
		},
		{
			name:  "cashOutAmount above half the property value",
			body:  `{"loanAmount": 100000, "cashOutAmount": 200000, "estimatedPropertyValue": 200000}`,
			field: "cashOutAmount",
			kind:  KindOutOfRange,
		},
		{
			name:  "cashOutAmount negative",
			body:  `{"loanAmount": 100000, "cashOutAmount": -1, "estimatedPropertyValue": 200000}`,
			field: "cashOutAmount",
			kind:  KindOutOfRange,
		},
		{
			name:  "cashOutAmount null",
			body:  `{"loanAmount": 100000, "cashOutAmount": null, "estimatedPropertyValue": 200000}`,
			field: "cashOutAmount",
			kind:  KindInvalidType,
		},
		{
			name:  "propertyValuationPhysical is a string",
			body:  `{"loanAmount": 100000, "cashOutAmount": 0, "estimatedPropertyValue": 200000, "propertyValuationPhysical": "notanumber"}`,
			field: "propertyValuationPhysical",
			kind:  KindInvalidType,
		},
		{
			name:  "first failing field wins",
			body:  `{"loanAmount": "x", "cashOutAmount": -5, "estimatedPropertyValue": "y"}`,
			field: "loanAmount",
			kind:  KindInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(decode(t, tt.body))

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var lvrErr *Error
			require.ErrorAs(t, err, &lvrErr)
			assert.Equal(t, tt.field, lvrErr.Field)
			assert.Equal(t, tt.kind, lvrErr.Kind)
			assert.Contains(t, lvrErr.Error(), tt.field)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	err := Validate(Input{LoanAmount: Num(1000), EstimatedPropertyValue: Num(700000)})
	assert.EqualError(t, err, "loanAmount must be a number between 80,000 and 2,000,000.")

	err = Validate(Input{LoanAmount: Num(100000), EstimatedPropertyValue: Num(5)})
	assert.EqualError(t, err, "estimatedPropertyValue must be a number between 100,000 and 2,500,000.")

	err = Validate(Input{LoanAmount: Num(100000), EstimatedPropertyValue: Num(700000), CashOutAmount: Num(400000)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "350,000")
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want float64
	}{
		{
			name: "estimated property value",
			in:   Input{LoanAmount: Num(500000), CashOutAmount: Num(50000), EstimatedPropertyValue: Num(700000)},
			want: 0.785714,
		},
		{
			name: "physical valuation takes precedence",
			in: Input{
				LoanAmount:                Num(500000),
				CashOutAmount:             Num(50000),
				EstimatedPropertyValue:    Num(700000),
				PropertyValuationPhysical: Num(650000),
			},
			want: 0.846153,
		},
		{
			name: "minimum values",
			in:   Input{LoanAmount: Num(80000), CashOutAmount: Num(0), EstimatedPropertyValue: Num(100000)},
			want: 0.8,
		},
		{
			name: "maximum values",
			in:   Input{LoanAmount: Num(2000000), EstimatedPropertyValue: Num(2500000)},
			want: 0.8,
		},
		{
			name: "cash out defaults to zero",
			in:   Input{LoanAmount: Num(100000), EstimatedPropertyValue: Num(200000)},
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestCalculate_IsExactRatio(t *testing.T) {
	in := Input{
		LoanAmount:                Num(123457),
		CashOutAmount:             Num(4321),
		EstimatedPropertyValue:    Num(987654),
		PropertyValuationPhysical: Num(876543),
	}

	got, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, (123457.0+4321.0)/876543.0, got)
}

func TestCalculate_ZeroPropertyValue(t *testing.T) {
	in := Input{
		LoanAmount:                Num(100000),
		EstimatedPropertyValue:    Num(200000),
		PropertyValuationPhysical: Num(0),
	}

	require.NoError(t, Validate(in))

	_, err := Calculate(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrZeroPropertyValue))
	assert.EqualError(t, err, "Property value cannot be zero.")

	var lvrErr *Error
	require.ErrorAs(t, err, &lvrErr)
	assert.Equal(t, "propertyValuationPhysical", lvrErr.Field)
	assert.Equal(t, "ZERO_PROPERTY_VALUE", lvrErr.Code())
}

func TestExample(t *testing.T) {
	body, err := json.Marshal(Example())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"loanAmount": 200000,
		"cashOutAmount": 50000,
		"estimatedPropertyValue": 400000,
		"propertyValuationPhysical": 380000
	}`, string(body))
}
