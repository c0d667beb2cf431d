package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"influencerdash/internal/models"
)

// Options are the engine parameters that do not come from the data.
type Options struct {
	// BaselineRevenue is the revenue expected without influencer activity.
	// It is an input and is never derived from the dataset.
	BaselineRevenue decimal.Decimal `json:"baselineRevenue"`
	// PoorROASThreshold flags influencers whose ROAS falls below it.
	PoorROASThreshold decimal.Decimal `json:"poorRoasThreshold"`
	// TopN bounds the ranked insight lists.
	TopN int `json:"topN"`
}

// DefaultOptions returns a zero baseline, a break-even threshold and a top 5.
func DefaultOptions() Options {
	return Options{
		BaselineRevenue:   decimal.Zero,
		PoorROASThreshold: decimal.NewFromInt(1),
		TopN:              5,
	}
}

// Headline is the aggregate view of one working set.
type Headline struct {
	TotalRevenue         decimal.Decimal     `json:"totalRevenue"`
	TotalPayout          decimal.Decimal     `json:"totalPayout"`
	BaselineRevenue      decimal.Decimal     `json:"baselineRevenue"`
	ROAS                 decimal.NullDecimal `json:"roas"`
	ROI                  decimal.NullDecimal `json:"roi"`
	IROAS                decimal.NullDecimal `json:"iroas"`
	AverageROAS          decimal.NullDecimal `json:"averageRoas"`
	RevenuePerInfluencer decimal.NullDecimal `json:"revenuePerInfluencer"`
	TotalOrders          int64               `json:"totalOrders"`
	Influencers          int                 `json:"influencers"`
	Campaigns            int                 `json:"campaigns"`
	Records              int                 `json:"records"`
	Posts                int                 `json:"posts"`
}

// Result bundles everything computed for one filter.
type Result struct {
	GeneratedAt  time.Time           `json:"generatedAt"`
	Filter       Filter              `json:"filter"`
	Headline     Headline            `json:"headline"`
	Impact       FilterImpact        `json:"impact"`
	Insights     Insights            `json:"insights"`
	Unattributed Unattributed        `json:"unattributed"`
	Influencers  []InfluencerMetrics `json:"influencers"`
	Campaigns    []CampaignMetrics   `json:"campaigns"`
}

// Compute runs the whole engine over ds. It reads ds only and keeps no state,
// so concurrent calls over the same dataset are safe.
func Compute(ds *models.Dataset, f Filter, opts Options) *Result {
	if opts.TopN < 1 {
		opts.TopN = DefaultOptions().TopN
	}

	ws := Select(ds, f)
	influencers := BreakdownByInfluencer(ws)
	campaigns := BreakdownByCampaign(ws)

	headline := headlineOf(ws, opts.BaselineRevenue)
	headline.Campaigns = len(campaigns)
	headline.AverageROAS = averageROAS(influencers)

	var baseline Headline
	if f.IsAll() {
		baseline = headline
	} else {
		baseline = headlineOf(Select(ds, Filter{}), opts.BaselineRevenue)
	}

	return &Result{
		GeneratedAt:  time.Now().UTC(),
		Filter:       f,
		Headline:     headline,
		Impact:       Impact(baseline, headline),
		Insights:     BuildInsights(influencers, opts),
		Unattributed: ws.Unattributed,
		Influencers:  influencers,
		Campaigns:    campaigns,
	}
}

func headlineOf(ws *WorkingSet, baselineRevenue decimal.Decimal) Headline {
	t := ws.totals()

	return Headline{
		TotalRevenue:         t.revenue,
		TotalPayout:          t.payout,
		BaselineRevenue:      baselineRevenue,
		ROAS:                 ROAS(t.revenue, t.payout),
		ROI:                  ROI(t.revenue, t.payout),
		IROAS:                IROAS(t.revenue, baselineRevenue, t.payout),
		RevenuePerInfluencer: Ratio(t.revenue, decimal.NewFromInt(int64(len(ws.Influencers)))),
		TotalOrders:          t.orders,
		Influencers:          len(ws.Influencers),
		Records:              len(ws.Tracking),
		Posts:                len(ws.Posts),
	}
}

// averageROAS is the mean of the defined per-influencer ROAS values.
func averageROAS(rows []InfluencerMetrics) decimal.NullDecimal {
	var (
		sum decimal.Decimal
		n   int64
	)

	for _, r := range rows {
		if r.ROAS.Valid {
			sum = sum.Add(r.ROAS.Decimal)
			n++
		}
	}

	return Ratio(sum, decimal.NewFromInt(n))
}
