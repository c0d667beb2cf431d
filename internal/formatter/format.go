package formatter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"influencerdash/pkg/utils"
)

// Undefined is how an undefined ratio is written.
const Undefined = "n/a"

var numbers = utils.NewNumberHelper()

// Money formats an amount with two decimals, grouped thousands and the currency symbol.
func Money(symbol string, d decimal.Decimal) string {
	s := numbers.Group(d.StringFixed(2))
	if strings.HasPrefix(s, "-") {
		return "-" + symbol + s[1:]
	}

	return symbol + s
}

// Ratio formats a ratio with two decimals, or n/a when undefined.
func Ratio(d decimal.NullDecimal) string {
	if !d.Valid {
		return Undefined
	}

	return d.Decimal.StringFixed(2)
}

// Percent formats a signed percentage, or n/a when undefined.
func Percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return Undefined
	}

	s := d.Decimal.StringFixed(2) + "%"
	if d.Decimal.IsPositive() {
		return "+" + s
	}

	return s
}

// Count formats a whole number with grouped thousands.
func Count(n int64) string {
	return numbers.Group(strconv.FormatInt(n, 10))
}

// cell makes text safe to place inside a table cell.
func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}

	return strings.NewReplacer("|", "/", "\n", " ", "\r", "").Replace(s)
}
