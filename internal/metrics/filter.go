package metrics

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"influencerdash/internal/models"
)

// Filter validation errors.
var (
	ErrFollowerRange = errors.New("follower range minimum exceeds maximum")
	ErrNegativeRange = errors.New("follower range cannot be negative")
	ErrDateRange     = errors.New("date range start is after end")
)

// Selection is a set of accepted values. Empty means all values.
type Selection []string

// All reports whether the selection accepts every value.
func (s Selection) All() bool {
	return len(s) == 0
}

// Contains matches case-insensitively after trimming.
func (s Selection) Contains(v string) bool {
	if s.All() {
		return true
	}

	v = strings.TrimSpace(v)
	for _, want := range s {
		if strings.EqualFold(strings.TrimSpace(want), v) {
			return true
		}
	}

	return false
}

// FollowerRange is an inclusive follower count range.
type FollowerRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// AtLeast returns an open-ended range starting at min.
func AtLeast(minFollowers int64) *FollowerRange {
	return &FollowerRange{Min: minFollowers, Max: math.MaxInt64}
}

// Contains reports whether n lies in the range. A nil count never matches.
func (r *FollowerRange) Contains(n *int64) bool {
	if r == nil {
		return true
	}

	if n == nil {
		return false
	}

	return *n >= r.Min && *n <= r.Max
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls on or between the range's dates. A nil
// date never matches. Zero Start or End leaves that side open.
func (r *DateRange) Contains(d *time.Time) bool {
	if r == nil {
		return true
	}

	if d == nil {
		return false
	}

	day := calendarDay(*d)

	if !r.Start.IsZero() && day.Before(calendarDay(r.Start)) {
		return false
	}

	if !r.End.IsZero() && day.After(calendarDay(r.End)) {
		return false
	}

	return true
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Filter restricts the working set. Zero value means no filtering at all.
// Dimensions compose with AND.
type Filter struct {
	Followers  *FollowerRange `json:"followerRange,omitempty"`
	Dates      *DateRange     `json:"dateRange,omitempty"`
	Platforms  Selection      `json:"platform,omitempty"`
	Products   Selection      `json:"product,omitempty"`
	Campaigns  Selection      `json:"campaign,omitempty"`
	Categories Selection      `json:"influencerCategory,omitempty"`
	Genders    Selection      `json:"gender,omitempty"`
}

// IsAll reports whether every dimension is set to all.
func (f Filter) IsAll() bool {
	return f.Platforms.All() && f.Products.All() && f.Campaigns.All() &&
		f.Categories.All() && f.Genders.All() && f.Followers == nil && f.Dates == nil
}

// Validate rejects ranges that could never match anything by construction.
func (f Filter) Validate() error {
	if f.Followers != nil {
		if f.Followers.Min < 0 || f.Followers.Max < 0 {
			return ErrNegativeRange
		}

		if f.Followers.Min > f.Followers.Max {
			return fmt.Errorf("%w: %d > %d", ErrFollowerRange, f.Followers.Min, f.Followers.Max)
		}
	}

	if f.Dates != nil && !f.Dates.Start.IsZero() && !f.Dates.End.IsZero() && f.Dates.Start.After(f.Dates.End) {
		return fmt.Errorf("%w: %s > %s", ErrDateRange, f.Dates.Start.Format(time.DateOnly), f.Dates.End.Format(time.DateOnly))
	}

	return nil
}

// MatchesInfluencer applies the influencer-attribute dimensions.
func (f Filter) MatchesInfluencer(inf *models.Influencer) bool {
	return f.Platforms.Contains(inf.Platform) &&
		f.Categories.Contains(inf.Category) &&
		f.Genders.Contains(inf.Gender) &&
		f.Followers.Contains(inf.FollowerCount)
}

// MatchesRecord applies the record-level dimensions of a tracking row.
func (f Filter) MatchesRecord(rec *models.TrackingRecord) bool {
	return f.Campaigns.Contains(rec.Campaign) &&
		f.Products.Contains(rec.Product) &&
		f.Dates.Contains(rec.Date)
}

// MatchesPost applies the record-level dimensions of a post.
func (f Filter) MatchesPost(p *models.Post) bool {
	return f.Dates.Contains(p.Date)
}

// Describe lists the active dimensions in a stable order, for summaries.
func (f Filter) Describe() []string {
	var out []string

	add := func(label string, s Selection) {
		if !s.All() {
			out = append(out, fmt.Sprintf("%s: %s", label, strings.Join(s, ", ")))
		}
	}

	add("Platforms", f.Platforms)
	add("Campaigns", f.Campaigns)
	add("Products", f.Products)
	add("Categories", f.Categories)
	add("Genders", f.Genders)

	if f.Followers != nil {
		if f.Followers.Max == math.MaxInt64 {
			out = append(out, fmt.Sprintf("Followers: %d+", f.Followers.Min))
		} else {
			out = append(out, fmt.Sprintf("Followers: %d - %d", f.Followers.Min, f.Followers.Max))
		}
	}

	if f.Dates != nil {
		out = append(out, fmt.Sprintf("Dates: %s - %s", formatBound(f.Dates.Start), formatBound(f.Dates.End)))
	}

	return out
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}

	return t.Format(time.DateOnly)
}
