package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influencerdash/internal/models"
)

func TestCompute_ExampleScenario(t *testing.T) {
	ds := models.NewDataset(
		[]models.Influencer{{ID: "a", Name: "Solo", FollowerCount: i64(50000), Platform: "Instagram"}},
		nil,
		[]models.TrackingRecord{
			{InfluencerID: "a", Orders: i64(2), Revenue: money("200")},
			{InfluencerID: "a", Orders: i64(3), Revenue: money("300")},
		},
		[]models.Payout{{InfluencerID: "a", Basis: models.BasisOrder, Rate: money("10"), Orders: i64(5), TotalPayout: money("50")}},
	)

	res := Compute(ds, Filter{}, DefaultOptions())

	require.True(t, res.Headline.ROAS.Valid)
	require.True(t, res.Headline.ROI.Valid)
	assert.True(t, res.Headline.ROAS.Decimal.Equal(dec("10")), "ROAS = %s", res.Headline.ROAS.Decimal)
	assert.True(t, res.Headline.ROI.Decimal.Equal(dec("9")), "ROI = %s", res.Headline.ROI.Decimal)
	assert.True(t, res.Headline.TotalRevenue.Equal(dec("500")))
	assert.True(t, res.Headline.TotalPayout.Equal(dec("50")))
	assert.Equal(t, int64(5), res.Headline.TotalOrders)

	require.Len(t, res.Influencers, 1)
	assert.True(t, res.Influencers[0].ROAS.Decimal.Equal(dec("10")))
	assert.True(t, res.Influencers[0].RevenuePerOrder.Decimal.Equal(dec("100")))
	assert.Equal(t, string(models.BasisOrder), res.Influencers[0].Basis)
}

func TestCompute_NoPayoutIsUndefined(t *testing.T) {
	ds := models.NewDataset(
		[]models.Influencer{{ID: "a", FollowerCount: i64(50000)}},
		nil,
		[]models.TrackingRecord{{InfluencerID: "a", Orders: i64(5), Revenue: money("500")}},
		nil,
	)

	res := Compute(ds, Filter{}, DefaultOptions())

	assert.True(t, res.Headline.TotalPayout.IsZero())
	assert.False(t, res.Headline.ROAS.Valid, "ROAS must be undefined, not zero")
	assert.False(t, res.Headline.ROI.Valid, "ROI must be undefined, not zero")
	assert.False(t, res.Headline.IROAS.Valid)

	require.Len(t, res.Influencers, 1)
	assert.False(t, res.Influencers[0].ROAS.Valid)
	assert.Empty(t, res.Insights.Top)
}

func TestCompute_NoMatchingPlatform(t *testing.T) {
	res := Compute(sampleDataset(), Filter{Platforms: Selection{"TikTok"}}, DefaultOptions())
	h := res.Headline

	assert.True(t, h.TotalRevenue.IsZero())
	assert.True(t, h.TotalPayout.IsZero())
	assert.Zero(t, h.TotalOrders)
	assert.Zero(t, h.Influencers)
	assert.Zero(t, h.Records)
	assert.False(t, h.ROAS.Valid)
	assert.False(t, h.ROI.Valid)
	assert.False(t, h.IROAS.Valid)
	assert.False(t, h.RevenuePerInfluencer.Valid)
	assert.False(t, h.AverageROAS.Valid)
	assert.Empty(t, res.Influencers)
	assert.Empty(t, res.Campaigns)

	assert.True(t, res.Impact.Revenue.Change.Decimal.Equal(dec("-1590")))
	assert.True(t, res.Impact.Revenue.Percent.Decimal.Equal(dec("-100")))
	assert.False(t, res.Impact.ROAS.Change.Valid, "ROAS delta is undefined when the filtered ROAS is")
}

func TestCompute_Unfiltered(t *testing.T) {
	res := Compute(sampleDataset(), Filter{}, DefaultOptions())
	h := res.Headline

	assert.True(t, h.TotalRevenue.Equal(dec("1590")), "revenue = %s", h.TotalRevenue)
	assert.Equal(t, int64(11), h.TotalOrders)
	assert.True(t, h.TotalPayout.Equal(dec("450")))
	assert.Equal(t, "3.53", h.ROAS.Decimal.StringFixed(2))
	assert.Equal(t, 4, h.Influencers)
	assert.Equal(t, 2, h.Campaigns)
	assert.Equal(t, 5, h.Records)
	assert.Equal(t, 2, h.Posts)
	assert.True(t, h.RevenuePerInfluencer.Decimal.Equal(dec("397.5")))

	// mean of 10 and 2.625; influencer 3 has no payout and is left out
	assert.True(t, h.AverageROAS.Decimal.Equal(dec("6.3125")), "average = %s", h.AverageROAS.Decimal)

	ids := make([]string, 0, len(res.Influencers))
	for _, m := range res.Influencers {
		ids = append(ids, m.ID)
	}

	assert.Equal(t, []string{"2", "1", "3"}, ids, "idle influencer 4 is omitted, rows ordered by revenue")

	assert.True(t, res.Impact.Revenue.Change.Decimal.IsZero())
	assert.True(t, res.Impact.Revenue.Percent.Decimal.IsZero())
	assert.True(t, res.Impact.ROAS.Change.Decimal.IsZero())
}

func TestCompute_AllFiltersReproduceBaseline(t *testing.T) {
	ds := sampleDataset()

	explicit := Filter{
		Platforms:  Selection{},
		Products:   nil,
		Campaigns:  Selection{},
		Categories: nil,
		Genders:    Selection{},
	}

	a := Compute(ds, Filter{}, DefaultOptions())
	b := Compute(ds, explicit, DefaultOptions())

	assert.True(t, a.Headline.TotalRevenue.Equal(b.Headline.TotalRevenue))
	assert.True(t, a.Headline.TotalPayout.Equal(b.Headline.TotalPayout))
	assert.Equal(t, a.Headline.TotalOrders, b.Headline.TotalOrders)
	assert.True(t, a.Headline.ROAS.Decimal.Equal(b.Headline.ROAS.Decimal))
	assert.True(t, b.Impact.Revenue.Baseline.Decimal.Equal(b.Impact.Revenue.Filtered.Decimal))
}

func TestCompute_PlatformFilter(t *testing.T) {
	opts := DefaultOptions()
	opts.BaselineRevenue = dec("40")

	res := Compute(sampleDataset(), Filter{Platforms: Selection{" instagram "}}, opts)
	h := res.Headline

	assert.True(t, h.TotalRevenue.Equal(dec("540")))
	assert.Equal(t, int64(6), h.TotalOrders)
	assert.True(t, h.TotalPayout.Equal(dec("50")))
	assert.True(t, h.ROAS.Decimal.Equal(dec("10.8")))
	assert.True(t, h.IROAS.Decimal.Equal(dec("10")), "iROAS = %s", h.IROAS.Decimal)
	assert.Equal(t, 2, h.Influencers)
	assert.Equal(t, 1, h.Posts)

	assert.True(t, res.Impact.Revenue.Baseline.Decimal.Equal(dec("1590")))
	assert.True(t, res.Impact.Revenue.Change.Decimal.Equal(dec("-1050")))
	assert.Equal(t, "-66.04", res.Impact.Revenue.Percent.Decimal.StringFixed(2))
	assert.True(t, res.Impact.Orders.Change.Decimal.Equal(dec("-5")))
	assert.Equal(t, "7.27", res.Impact.ROAS.Change.Decimal.StringFixed(2))
}

func TestCompute_FollowerRangeExcludesNullCounts(t *testing.T) {
	res := Compute(sampleDataset(), Filter{Followers: &FollowerRange{Min: 0, Max: 100000}}, DefaultOptions())

	ids := make([]string, 0)
	for _, m := range res.Influencers {
		ids = append(ids, m.ID)
	}

	// 3 has no follower count; 4 is in range but idle
	assert.Equal(t, []string{"1"}, ids)
	assert.Equal(t, 2, res.Headline.Influencers)
}

func TestCompute_DateRange(t *testing.T) {
	f := Filter{Dates: &DateRange{Start: *day("2025-06-01"), End: *day("2025-06-05")}}
	res := Compute(sampleDataset(), f, DefaultOptions())

	assert.True(t, res.Headline.TotalRevenue.Equal(dec("1300")), "undated rows are dropped, bounds are inclusive")
	assert.Equal(t, 2, res.Headline.Posts)
	assert.Equal(t, 1, res.Unattributed.Records)
	assert.Equal(t, 1, res.Unattributed.Posts)
}

func TestCompute_Unattributed(t *testing.T) {
	res := Compute(sampleDataset(), Filter{}, DefaultOptions())
	u := res.Unattributed

	assert.Equal(t, 1, u.Records)
	assert.Equal(t, 1, u.Posts)
	assert.Equal(t, 1, u.Payouts)
	assert.True(t, u.Revenue.Equal(dec("700")))
	assert.True(t, u.Payout.Equal(dec("100")))
	assert.Equal(t, int64(7), u.Orders)
	assert.False(t, u.Empty())

	for _, m := range res.Influencers {
		assert.NotEqual(t, "99", m.ID)
		assert.NotEqual(t, "77", m.ID)
	}
}

func TestCompute_WorkingSetIsSubset(t *testing.T) {
	ds := sampleDataset()
	full := Select(ds, Filter{})

	inFull := make(map[any]bool)
	for _, r := range full.Tracking {
		inFull[r] = true
	}

	for _, p := range full.Posts {
		inFull[p] = true
	}

	for _, p := range full.Payouts {
		inFull[p] = true
	}

	for name, f := range filterCases() {
		t.Run(name, func(t *testing.T) {
			ws := Select(ds, f)

			assert.LessOrEqual(t, len(ws.Tracking), len(full.Tracking))
			assert.LessOrEqual(t, len(ws.Influencers), len(full.Influencers))

			for _, r := range ws.Tracking {
				assert.True(t, inFull[r], "tracking row %+v not in the unfiltered set", r)
			}

			for _, p := range ws.Posts {
				assert.True(t, inFull[p])
			}

			for _, p := range ws.Payouts {
				assert.True(t, inFull[p])
			}
		})
	}
}

func TestCompute_InfluencerRevenueSumsToTotal(t *testing.T) {
	ds := sampleDataset()

	for name, f := range filterCases() {
		t.Run(name, func(t *testing.T) {
			res := Compute(ds, f, DefaultOptions())

			revenue := decimal.Zero
			var orders int64

			for _, m := range res.Influencers {
				revenue = revenue.Add(m.Revenue)
				orders += m.Orders
			}

			assert.True(t, revenue.Equal(res.Headline.TotalRevenue), "sum %s != total %s", revenue, res.Headline.TotalRevenue)
			assert.Equal(t, res.Headline.TotalOrders, orders)

			campaignRevenue := decimal.Zero
			for _, c := range res.Campaigns {
				campaignRevenue = campaignRevenue.Add(c.Revenue)
			}

			assert.True(t, campaignRevenue.Equal(res.Headline.TotalRevenue))
		})
	}
}

func TestCompute_Breakdowns(t *testing.T) {
	res := Compute(sampleDataset(), Filter{}, DefaultOptions())

	require.Len(t, res.Campaigns, 2)
	assert.Equal(t, "Summer", res.Campaigns[0].Campaign)
	assert.True(t, res.Campaigns[0].Revenue.Equal(dec("1500")))
	assert.Equal(t, 3, res.Campaigns[0].Records)
	assert.Equal(t, 2, res.Campaigns[0].Influencers)
	assert.Equal(t, "Winter", res.Campaigns[1].Campaign)

	ravi := res.Influencers[0]
	assert.Equal(t, "Ravi", ravi.DisplayName())
	assert.Equal(t, 1, ravi.PostCount)
	assert.Equal(t, int64(5000), ravi.Reach)
	assert.True(t, ravi.EngagementRate.Decimal.Equal(dec("0.1")))
	assert.Equal(t, "2.625", ravi.ROAS.Decimal.String())
	assert.Equal(t, "post", ravi.Basis)

	meera := res.Influencers[2]
	assert.False(t, meera.ROAS.Valid)
	assert.False(t, meera.EngagementRate.Valid, "no posts means no reach")
	assert.Equal(t, "", meera.Basis)
}

func TestCompute_ZeroTopNFallsBack(t *testing.T) {
	res := Compute(sampleDataset(), Filter{}, Options{})

	assert.Len(t, res.Insights.Top, 2)
}
