// Package models defines the canonical entities the normalizer produces and the metrics engine consumes.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Influencer is one row of the influencer roster.
type Influencer struct {
	FollowerCount *int64 `json:"followerCount"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Gender        string `json:"gender"`
	Platform      string `json:"platform"`
}

// Post is a single social post published by an influencer.
type Post struct {
	Date         *time.Time `json:"date"`
	Reach        *int64     `json:"reach"`
	Likes        *int64     `json:"likes"`
	Comments     *int64     `json:"comments"`
	InfluencerID string     `json:"influencerId"`
	Platform     string     `json:"platform"`
	URL          string     `json:"url"`
	Caption      string     `json:"caption"`
}

// TrackingRecord is an attributed order event or an aggregate of them.
type TrackingRecord struct {
	Date         *time.Time          `json:"date"`
	Orders       *int64              `json:"orders"`
	Revenue      decimal.NullDecimal `json:"revenue"`
	Source       string              `json:"source"`
	Campaign     string              `json:"campaign"`
	InfluencerID string              `json:"influencerId"`
	UserID       string              `json:"userId"`
	Product      string              `json:"product"`
}

// PayoutBasis is what an influencer is paid per.
type PayoutBasis string

// Payout bases.
const (
	BasisPost    PayoutBasis = "post"
	BasisOrder   PayoutBasis = "order"
	BasisUnknown PayoutBasis = ""
)

// ParsePayoutBasis maps the spellings seen in payout files onto a basis.
func ParsePayoutBasis(raw string) PayoutBasis {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.TrimPrefix(s, "per ")

	switch s {
	case "post", "posts":
		return BasisPost
	case "order", "orders":
		return BasisOrder
	default:
		return BasisUnknown
	}
}

// Payout describes the payment terms agreed with an influencer.
type Payout struct {
	Orders       *int64              `json:"orders"`
	Rate         decimal.NullDecimal `json:"rate"`
	TotalPayout  decimal.NullDecimal `json:"totalPayout"`
	InfluencerID string              `json:"influencerId"`
	Basis        PayoutBasis         `json:"basis"`
	RawBasis     string              `json:"rawBasis,omitempty"`
}

// Int64 returns the value of p, or zero when p is nil.
func Int64(p *int64) int64 {
	if p == nil {
		return 0
	}

	return *p
}

// Amount returns the decimal value of d, or zero when d is null.
func Amount(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}

	return d.Decimal
}
