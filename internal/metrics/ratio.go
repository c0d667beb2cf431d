// Package metrics derives campaign performance figures from a normalized dataset.
//
// Every ratio is a decimal.NullDecimal: Valid=false is the "undefined" result
// of a zero or missing denominator and must be shown distinctly from zero.
package metrics

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Ratio divides num by den. A zero denominator yields undefined.
func Ratio(num, den decimal.Decimal) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(num.Div(den))
}

// ROAS is revenue / payout.
func ROAS(revenue, payout decimal.Decimal) decimal.NullDecimal {
	return Ratio(revenue, payout)
}

// ROI is (revenue - payout) / payout.
func ROI(revenue, payout decimal.Decimal) decimal.NullDecimal {
	return Ratio(revenue.Sub(payout), payout)
}

// IROAS is (revenue - baseline) / payout, where baseline is the revenue
// expected without the campaign. The baseline is supplied by the caller.
func IROAS(revenue, baseline, payout decimal.Decimal) decimal.NullDecimal {
	return Ratio(revenue.Sub(baseline), payout)
}

// PercentChange is (current - base) / base × 100. Undefined when base is
// zero or either side is undefined.
func PercentChange(base, current decimal.NullDecimal) decimal.NullDecimal {
	if !base.Valid || !current.Valid {
		return decimal.NullDecimal{}
	}

	pct := Ratio(current.Decimal.Sub(base.Decimal), base.Decimal)
	if !pct.Valid {
		return pct
	}

	return decimal.NewNullDecimal(pct.Decimal.Mul(hundred))
}

// Difference is current - base, undefined when either side is undefined.
func Difference(base, current decimal.NullDecimal) decimal.NullDecimal {
	if !base.Valid || !current.Valid {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(current.Decimal.Sub(base.Decimal))
}

func defined(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}
