package metrics

import (
	"github.com/shopspring/decimal"
)

// Delta compares one figure between the unfiltered and the filtered view.
type Delta struct {
	Baseline decimal.NullDecimal `json:"baseline"`
	Filtered decimal.NullDecimal `json:"filtered"`
	Change   decimal.NullDecimal `json:"change"`
	Percent  decimal.NullDecimal `json:"percent"`
}

// NewDelta derives the absolute and percentage change from base to current.
func NewDelta(base, current decimal.NullDecimal) Delta {
	return Delta{
		Baseline: base,
		Filtered: current,
		Change:   Difference(base, current),
		Percent:  PercentChange(base, current),
	}
}

// FilterImpact summarizes how far the current filter moves the headline away
// from the view with every dimension set to all.
type FilterImpact struct {
	Revenue Delta `json:"revenue"`
	Orders  Delta `json:"orders"`
	ROAS    Delta `json:"roas"`
}

// Impact compares an unfiltered headline with a filtered one.
func Impact(baseline, filtered Headline) FilterImpact {
	return FilterImpact{
		Revenue: NewDelta(defined(baseline.TotalRevenue), defined(filtered.TotalRevenue)),
		Orders: NewDelta(
			defined(decimal.NewFromInt(baseline.TotalOrders)),
			defined(decimal.NewFromInt(filtered.TotalOrders)),
		),
		ROAS: NewDelta(baseline.ROAS, filtered.ROAS),
	}
}
