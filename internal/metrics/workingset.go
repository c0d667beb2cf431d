package metrics

import (
	"github.com/shopspring/decimal"

	"influencerdash/internal/models"
)

// Unattributed counts rows whose influencer id does not resolve against the
// roster. They are kept out of every figure and reported on their own.
// Record-level dimensions (campaign, product, dates) still apply to them;
// influencer-attribute dimensions cannot be evaluated and are ignored.
type Unattributed struct {
	Revenue decimal.Decimal `json:"revenue"`
	Payout  decimal.Decimal `json:"payout"`
	Orders  int64           `json:"orders"`
	Records int             `json:"records"`
	Posts   int             `json:"posts"`
	Payouts int             `json:"payouts"`
}

// Empty reports whether nothing was left unattributed.
func (u Unattributed) Empty() bool {
	return u.Records == 0 && u.Posts == 0 && u.Payouts == 0
}

// WorkingSet is the subset of a dataset remaining after a filter is applied.
// Its slices point into the dataset and must not be modified.
type WorkingSet struct {
	Influencers  []*models.Influencer
	Tracking     []*models.TrackingRecord
	Posts        []*models.Post
	Payouts      []*models.Payout
	Unattributed Unattributed

	members map[string]bool
}

// Contains reports whether id is in the filtered influencer set.
func (w *WorkingSet) Contains(id string) bool {
	return w.members[id]
}

// Select applies f to ds. Filters only ever remove rows.
func Select(ds *models.Dataset, f Filter) *WorkingSet {
	ws := &WorkingSet{members: make(map[string]bool)}
	if ds == nil {
		return ws
	}

	seen := make(map[string]bool, len(ds.Influencers))

	for i := range ds.Influencers {
		inf := &ds.Influencers[i]
		if inf.ID == "" || seen[inf.ID] {
			continue
		}

		seen[inf.ID] = true

		if f.MatchesInfluencer(inf) {
			ws.Influencers = append(ws.Influencers, inf)
			ws.members[inf.ID] = true
		}
	}

	for i := range ds.Tracking {
		rec := &ds.Tracking[i]
		if !f.MatchesRecord(rec) {
			continue
		}

		switch {
		case !ds.Resolves(rec.InfluencerID):
			ws.Unattributed.Records++
			ws.Unattributed.Revenue = ws.Unattributed.Revenue.Add(models.Amount(rec.Revenue))
			ws.Unattributed.Orders += models.Int64(rec.Orders)
		case ws.members[rec.InfluencerID]:
			ws.Tracking = append(ws.Tracking, rec)
		}
	}

	for i := range ds.Posts {
		p := &ds.Posts[i]
		if !f.MatchesPost(p) {
			continue
		}

		switch {
		case !ds.Resolves(p.InfluencerID):
			ws.Unattributed.Posts++
		case ws.members[p.InfluencerID]:
			ws.Posts = append(ws.Posts, p)
		}
	}

	for i := range ds.Payouts {
		p := &ds.Payouts[i]

		switch {
		case !ds.Resolves(p.InfluencerID):
			ws.Unattributed.Payouts++
			ws.Unattributed.Payout = ws.Unattributed.Payout.Add(models.Amount(p.TotalPayout))
		case ws.members[p.InfluencerID]:
			ws.Payouts = append(ws.Payouts, p)
		}
	}

	return ws
}

// totals are the additive figures of a working set.
type totals struct {
	revenue decimal.Decimal
	payout  decimal.Decimal
	orders  int64
}

func (w *WorkingSet) totals() totals {
	var t totals

	for _, rec := range w.Tracking {
		t.revenue = t.revenue.Add(models.Amount(rec.Revenue))
		t.orders += models.Int64(rec.Orders)
	}

	for _, p := range w.Payouts {
		t.payout = t.payout.Add(models.Amount(p.TotalPayout))
	}

	return t
}
