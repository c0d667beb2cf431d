package metrics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"influencerdash/internal/models"
)

// MixedBasis marks an influencer paid under more than one basis.
const MixedBasis = "mixed"

// InfluencerMetrics is the headline computation scoped to one influencer.
type InfluencerMetrics struct {
	Revenue         decimal.Decimal     `json:"revenue"`
	Payout          decimal.Decimal     `json:"payout"`
	ROAS            decimal.NullDecimal `json:"roas"`
	ROI             decimal.NullDecimal `json:"roi"`
	RevenuePerOrder decimal.NullDecimal `json:"revenuePerOrder"`
	EngagementRate  decimal.NullDecimal `json:"engagementRate"`
	FollowerCount   *int64              `json:"followerCount"`
	Orders          int64               `json:"orders"`
	Reach           int64               `json:"reach"`
	Likes           int64               `json:"likes"`
	Comments        int64               `json:"comments"`
	Records         int                 `json:"records"`
	PostCount       int                 `json:"posts"`
	PayoutRows      int                 `json:"payoutRows"`
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	Gender          string              `json:"gender"`
	Platform        string              `json:"platform"`
	Basis           string              `json:"basis"`
}

// DisplayName falls back to the id when the roster has no name.
func (m InfluencerMetrics) DisplayName() string {
	if strings.TrimSpace(m.Name) == "" {
		return m.ID
	}

	return m.Name
}

// BreakdownByInfluencer computes one row per filtered influencer with any
// tracking record, post or payout in the working set, ordered by revenue
// descending and then by id.
func BreakdownByInfluencer(ws *WorkingSet) []InfluencerMetrics {
	rows := make(map[string]*InfluencerMetrics)
	bases := make(map[string]map[models.PayoutBasis]bool)

	row := func(id string) *InfluencerMetrics {
		if m, ok := rows[id]; ok {
			return m
		}

		m := &InfluencerMetrics{ID: id}
		rows[id] = m

		return m
	}

	for _, rec := range ws.Tracking {
		m := row(rec.InfluencerID)
		m.Revenue = m.Revenue.Add(models.Amount(rec.Revenue))
		m.Orders += models.Int64(rec.Orders)
		m.Records++
	}

	for _, p := range ws.Posts {
		m := row(p.InfluencerID)
		m.PostCount++
		m.Reach += models.Int64(p.Reach)
		m.Likes += models.Int64(p.Likes)
		m.Comments += models.Int64(p.Comments)
	}

	for _, p := range ws.Payouts {
		m := row(p.InfluencerID)
		m.Payout = m.Payout.Add(models.Amount(p.TotalPayout))
		m.PayoutRows++

		if bases[p.InfluencerID] == nil {
			bases[p.InfluencerID] = make(map[models.PayoutBasis]bool)
		}

		bases[p.InfluencerID][p.Basis] = true
	}

	out := make([]InfluencerMetrics, 0, len(rows))

	for _, inf := range ws.Influencers {
		m, ok := rows[inf.ID]
		if !ok {
			continue
		}

		m.Name = inf.Name
		m.Category = inf.Category
		m.Gender = inf.Gender
		m.Platform = inf.Platform
		m.FollowerCount = inf.FollowerCount
		m.Basis = basisLabel(bases[inf.ID])

		m.ROAS = ROAS(m.Revenue, m.Payout)
		m.ROI = ROI(m.Revenue, m.Payout)
		m.RevenuePerOrder = Ratio(m.Revenue, decimal.NewFromInt(m.Orders))
		m.EngagementRate = Ratio(decimal.NewFromInt(m.Likes+m.Comments), decimal.NewFromInt(m.Reach))

		out = append(out, *m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}

		return out[i].ID < out[j].ID
	})

	return out
}

func basisLabel(seen map[models.PayoutBasis]bool) string {
	switch len(seen) {
	case 0:
		return ""
	case 1:
		for b := range seen {
			return string(b)
		}
	}

	return MixedBasis
}

// CampaignMetrics aggregates the working set per campaign.
type CampaignMetrics struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Orders      int64           `json:"orders"`
	Records     int             `json:"records"`
	Influencers int             `json:"influencers"`
	Campaign    string          `json:"campaign"`
}

// BreakdownByCampaign groups tracking records by campaign name, ordered by
// revenue descending and then by name. A blank campaign is its own group.
func BreakdownByCampaign(ws *WorkingSet) []CampaignMetrics {
	groups := make(map[string]*CampaignMetrics)
	members := make(map[string]map[string]bool)

	for _, rec := range ws.Tracking {
		g, ok := groups[rec.Campaign]
		if !ok {
			g = &CampaignMetrics{Campaign: rec.Campaign}
			groups[rec.Campaign] = g
			members[rec.Campaign] = make(map[string]bool)
		}

		g.Revenue = g.Revenue.Add(models.Amount(rec.Revenue))
		g.Orders += models.Int64(rec.Orders)
		g.Records++
		members[rec.Campaign][rec.InfluencerID] = true
	}

	out := make([]CampaignMetrics, 0, len(groups))
	for name, g := range groups {
		g.Influencers = len(members[name])
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}

		return out[i].Campaign < out[j].Campaign
	})

	return out
}
