package lvr

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	loanAmountMessage = fmt.Sprintf("loanAmount must be a number between %s and %s.",
		formatAmount(MinLoanAmount), formatAmount(MaxLoanAmount))

	estimatedPropertyValueMessage = fmt.Sprintf("estimatedPropertyValue must be a number between %s and %s.",
		formatAmount(MinEstimatedPropertyValue), formatAmount(MaxEstimatedPropertyValue))

	propertyValuationPhysicalMessage = "propertyValuationPhysical (if provided) must be a number."
)

// formatAmount renders v with English digit grouping, e.g. 2000000 -> "2,000,000".
func formatAmount(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// Validate checks an application in a fixed order and reports the first
// violation:
//
//  1. loanAmount in [80,000, 2,000,000]
//  2. estimatedPropertyValue in [100,000, 2,500,000]
//  3. cashOutAmount, when present, in [0, 0.5 * estimatedPropertyValue]
//  4. propertyValuationPhysical, when present, is a number
//
// propertyValuationPhysical has no lower bound, so a physical valuation of
// zero passes here and is rejected later by Calculate.
func Validate(in Input) error {
	if err := checkRange("loanAmount", in.LoanAmount, MinLoanAmount, MaxLoanAmount, loanAmountMessage); err != nil {
		return err
	}

	if err := checkRange("estimatedPropertyValue", in.EstimatedPropertyValue,
		MinEstimatedPropertyValue, MaxEstimatedPropertyValue, estimatedPropertyValueMessage); err != nil {
		return err
	}

	if in.CashOutAmount.Present {
		maxCashOut := MaxCashOutRatio * in.EstimatedPropertyValue.Value
		msg := fmt.Sprintf("cashOutAmount (if provided) must be a number between 0 and %s (0.5 * estimatedPropertyValue).",
			formatAmount(maxCashOut))

		if err := checkRange("cashOutAmount", in.CashOutAmount, 0, maxCashOut, msg); err != nil {
			return err
		}
	}

	if in.PropertyValuationPhysical.Present && !in.PropertyValuationPhysical.Numeric {
		return &Error{
			Kind:    KindInvalidType,
			Field:   "propertyValuationPhysical",
			Message: propertyValuationPhysicalMessage,
		}
	}

	return nil
}

func checkRange(field string, n Number, lo, hi float64, msg string) error {
	if !n.Numeric {
		return &Error{Kind: KindInvalidType, Field: field, Message: msg}
	}
	if n.Value < lo || n.Value > hi {
		return &Error{Kind: KindOutOfRange, Field: field, Message: msg}
	}
	return nil
}
