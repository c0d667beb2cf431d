package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"influencerdash/internal/models"
)

func i64(n int64) *int64 { return &n }

func day(s string) *time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return &d
}

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sampleDataset has four influencers (one idle), two campaigns and one
// unresolved reference in each of tracking, posts and payouts.
func sampleDataset() *models.Dataset {
	influencers := []models.Influencer{
		{ID: "1", Name: "Asha", Category: "Fitness", Gender: "Female", FollowerCount: i64(50000), Platform: "Instagram"},
		{ID: "2", Name: "Ravi", Category: "Nutrition", Gender: "Male", FollowerCount: i64(120000), Platform: "YouTube"},
		{ID: "3", Name: "Meera", Category: "fitness", Gender: "Female", Platform: "Instagram"},
		{ID: "4", Name: "Kabir", Category: "Lifestyle", Gender: "Male", FollowerCount: i64(8000), Platform: "Twitter"},
	}

	tracking := []models.TrackingRecord{
		{InfluencerID: "1", Campaign: "Summer", Product: "Whey", Date: day("2025-06-01"), Orders: i64(3), Revenue: money("300")},
		{InfluencerID: "1", Campaign: "Summer", Product: "Bar", Date: day("2025-06-10"), Orders: i64(2), Revenue: money("200")},
		{InfluencerID: "2", Campaign: "Summer", Product: "Whey", Date: day("2025-06-05"), Orders: i64(4), Revenue: money("1000")},
		{InfluencerID: "2", Campaign: "Winter", Product: "Multivitamin", Date: day("2025-12-01"), Orders: i64(1), Revenue: money("50")},
		{InfluencerID: "3", Campaign: "Winter", Product: "Bar", Orders: i64(1), Revenue: money("40")},
		{InfluencerID: "99", Campaign: "Summer", Product: "Whey", Date: day("2025-06-02"), Orders: i64(7), Revenue: money("700")},
	}

	posts := []models.Post{
		{InfluencerID: "1", Platform: "Instagram", Date: day("2025-06-01"), Reach: i64(1000), Likes: i64(80), Comments: i64(20)},
		{InfluencerID: "2", Platform: "YouTube", Date: day("2025-06-04"), Reach: i64(5000), Likes: i64(300), Comments: i64(200)},
		{InfluencerID: "99", Platform: "Instagram", Date: day("2025-06-03"), Reach: i64(10)},
	}

	payouts := []models.Payout{
		{InfluencerID: "1", Basis: models.BasisOrder, Rate: money("10"), Orders: i64(5), TotalPayout: money("50")},
		{InfluencerID: "2", Basis: models.BasisPost, Rate: money("400"), TotalPayout: money("400")},
		{InfluencerID: "77", Basis: models.BasisPost, Rate: money("100"), TotalPayout: money("100")},
	}

	return models.NewDataset(influencers, posts, tracking, payouts)
}

// filterCases cover every dimension at least once.
func filterCases() map[string]Filter {
	return map[string]Filter{
		"all":        {},
		"platform":   {Platforms: Selection{"Instagram"}},
		"campaign":   {Campaigns: Selection{"winter"}},
		"product":    {Products: Selection{"Whey", "Bar"}},
		"category":   {Categories: Selection{"Fitness"}},
		"gender":     {Genders: Selection{"Male"}},
		"followers":  {Followers: &FollowerRange{Min: 10000, Max: 100000}},
		"dates":      {Dates: &DateRange{Start: *day("2025-06-01"), End: *day("2025-06-05")}},
		"no match":   {Platforms: Selection{"TikTok"}},
		"combined":   {Platforms: Selection{"Instagram", "YouTube"}, Campaigns: Selection{"Summer"}, Genders: Selection{"female"}},
		"open range": {Followers: AtLeast(100000)},
	}
}
