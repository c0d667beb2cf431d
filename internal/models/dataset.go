package models

import (
	"fmt"
	"time"
)

// Dataset holds the four normalized tables of one dashboard session.
// It is built once by the normalizer and treated as read-only afterwards.
type Dataset struct {
	LoadedAt    time.Time        `json:"loadedAt"`
	byID        map[string]int
	Influencers []Influencer     `json:"influencers"`
	Posts       []Post           `json:"posts"`
	Tracking    []TrackingRecord `json:"tracking"`
	Payouts     []Payout         `json:"payouts"`
}

// NewDataset indexes the roster by id. When an id repeats, the first row wins.
func NewDataset(influencers []Influencer, posts []Post, tracking []TrackingRecord, payouts []Payout) *Dataset {
	ds := &Dataset{
		LoadedAt:    time.Now().UTC(),
		byID:        make(map[string]int, len(influencers)),
		Influencers: influencers,
		Posts:       posts,
		Tracking:    tracking,
		Payouts:     payouts,
	}

	for i, inf := range influencers {
		if inf.ID == "" {
			continue
		}

		if _, exists := ds.byID[inf.ID]; !exists {
			ds.byID[inf.ID] = i
		}
	}

	return ds
}

// Influencer resolves an influencer id against the roster.
func (d *Dataset) Influencer(id string) (*Influencer, bool) {
	if d == nil || id == "" {
		return nil, false
	}

	idx, ok := d.byID[id]
	if !ok {
		return nil, false
	}

	return &d.Influencers[idx], true
}

// Resolves reports whether id refers to a known influencer.
func (d *Dataset) Resolves(id string) bool {
	_, ok := d.Influencer(id)
	return ok
}

// String returns a short summary of the table sizes.
func (d *Dataset) String() string {
	return fmt.Sprintf(
		"Dataset{Influencers: %d, Posts: %d, Tracking: %d, Payouts: %d}",
		len(d.Influencers),
		len(d.Posts),
		len(d.Tracking),
		len(d.Payouts),
	)
}
