// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/datetime"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatJSON {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatJSON, format)
	}
	return nil
}

// ValidateCalculator checks that name is one of the supported calculators.
func ValidateCalculator(name string) error {
	switch name {
	case constants.CalculatorCompound, constants.CalculatorSavings, constants.CalculatorBalance:
		return nil
	}
	return fmt.Errorf("expected calculator of %s, %s or %s, got %q",
		constants.CalculatorCompound, constants.CalculatorSavings, constants.CalculatorBalance, name)
}

// ValidateStartDate accepts an empty string or a "2006-01" month.
func ValidateStartDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := datetime.ParseMonth(date); err != nil {
		return fmt.Errorf("start date %q must use the %s layout", date, datetime.DateTimeLayout)
	}
	return nil
}
