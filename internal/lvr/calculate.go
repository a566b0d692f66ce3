package lvr

// Calculate returns (loanAmount + cashOutAmount) / propertyValue.
//
// propertyValue is propertyValuationPhysical when it is a number,
// otherwise estimatedPropertyValue. A missing cashOutAmount counts as 0.
// The ratio is not rounded. Calculate expects input that already passed
// Validate; the only failure it reports itself is a zero property value.
func Calculate(in Input) (float64, error) {
	cashOut := 0.0
	if in.CashOutAmount.Numeric {
		cashOut = in.CashOutAmount.Value
	}
	borrowingAmount := in.LoanAmount.Value + cashOut

	propertyValue, field := PropertyValue(in)
	if propertyValue == 0 {
		return 0, &Error{
			Kind:    KindZeroPropertyValue,
			Field:   field,
			Message: ErrZeroPropertyValue.Message,
		}
	}

	return borrowingAmount / propertyValue, nil
}

// PropertyValue selects the value the ratio is computed against and
// names the field it came from.
func PropertyValue(in Input) (float64, string) {
	if in.PropertyValuationPhysical.Numeric {
		return in.PropertyValuationPhysical.Value, "propertyValuationPhysical"
	}
	return in.EstimatedPropertyValue.Value, "estimatedPropertyValue"
}
