// Package currencyutils parses the amounts printed on bank statements.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// groupSeparators are dropped from amounts. Statements group thousands with
// plain, no-break or narrow no-break spaces, sometimes apostrophes.
var groupSeparators = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "'", "")

// StandardizeAmount rewrites an amount such as "2 500,00" or "1.234,56" so
// decimal.NewFromString accepts it.
func StandardizeAmount(amountStr string) string {
	amountStr = groupSeparators.Replace(strings.TrimSpace(amountStr))

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
		return amountStr
	}
	return strings.ReplaceAll(amountStr, ",", ".")
}

// ParseAmount parses an unsigned statement amount.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// ParseSignedAmount parses an amount whose sign is printed in its own
// column: "+" for money in, "-" for money out.
func ParseSignedAmount(sign, amountStr string) (decimal.Decimal, error) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.Zero, err
	}

	switch sign {
	case "+":
		return amount, nil
	case "-":
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown amount sign %q", sign)
	}
}
