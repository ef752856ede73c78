// Package format renders money and rate values for human-readable output.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	formatted := groupThousands(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a percentage with the given number of decimals, e.g. "7.25%".
func Percent(percent float64, places int32) string {
	return decimal.NewFromFloat(percent).StringFixed(places) + "%"
}

func groupThousands(fixed string) string {
	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
